package services

import (
	"context"

	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ReadMarkStore is the persistence port for per-account read marks. Add is
// an upsert: an existing unread mark for the pair is flipped to read.
type ReadMarkStore interface {
	ReadPostIDs(ctx context.Context, accountID uint, postIDs []uint) ([]uint, error)
	Add(ctx context.Context, mark *models.ReadMark) error
}

// PostIDChecker filters post IDs down to the ones that exist.
type PostIDChecker interface {
	ExistingIDs(ctx context.Context, ids []uint) ([]uint, error)
}

// MarkResult splits a batch mark-read request into its three outcomes. The
// buckets are authoritative; the HTTP layer derives the overall status from
// them. Marks created for the succeeding IDs are never rolled back when
// other IDs in the batch fail.
type MarkResult struct {
	Marked      []uint `json:"marked"`
	AlreadyRead []uint `json:"already_read"`
	NotFound    []uint `json:"not_found"`
}

// ReadStateService tracks which posts each account has marked read.
type ReadStateService struct {
	logger zerolog.Logger
	marks  ReadMarkStore
	posts  PostIDChecker
}

func NewReadStateService(marks ReadMarkStore, posts PostIDChecker) *ReadStateService {
	return &ReadStateService{
		logger: log.With().Str("service", "readstate").Logger(),
		marks:  marks,
		posts:  posts,
	}
}

// MarkRead marks the given posts read for the account. Each requested ID
// lands in exactly one result bucket: marked, already read, or not found.
// An empty input is an invalid argument.
func (s *ReadStateService) MarkRead(ctx context.Context, accountID uint, postIDs []uint) (*MarkResult, error) {
	if len(postIDs) == 0 {
		return nil, errs.NewInvalidArgumentError("post_ids must not be empty")
	}

	postIDs = dedupe(postIDs)

	existing, err := s.posts.ExistingIDs(ctx, postIDs)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "posts", err)
	}
	exists := toSet(existing)

	alreadyRead, err := s.marks.ReadPostIDs(ctx, accountID, postIDs)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "read marks", err)
	}
	read := toSet(alreadyRead)

	result := &MarkResult{}
	for _, id := range postIDs {
		switch {
		case !exists[id]:
			result.NotFound = append(result.NotFound, id)
		case read[id]:
			result.AlreadyRead = append(result.AlreadyRead, id)
		default:
			// Add upserts, so an unread mark left by fan-out flips to
			// read here instead of blocking the user forever.
			mark := models.ReadMark{AccountID: accountID, PostID: id, Read: true}
			if err := s.marks.Add(ctx, &mark); err != nil {
				return nil, errs.NewDatabaseError("create", "read mark", err)
			}
			result.Marked = append(result.Marked, id)
		}
	}

	s.logger.Info().
		Uint("accountID", accountID).
		Int("marked", len(result.Marked)).
		Int("alreadyRead", len(result.AlreadyRead)).
		Int("notFound", len(result.NotFound)).
		Msg("Marked posts as read")

	return result, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func toSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
