package services

import (
	"context"

	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// FeedWindowSize caps the candidate posts considered for a feed, trading
	// unbounded history for a bounded query.
	FeedWindowSize = 500
	// FeedPageSize is the fixed number of posts per feed page.
	FeedPageSize = 10
)

// PostWindowStore supplies the recent-post window for a set of blogs.
type PostWindowStore interface {
	FeedWindow(ctx context.Context, blogIDs []uint, limit int) ([]models.Post, error)
}

// SubscribedBlogLister resolves the blogs an account follows.
type SubscribedBlogLister interface {
	BlogIDsForAccount(ctx context.Context, accountID uint) ([]uint, error)
}

// FeedPage is a single page of the news feed, shaped like the page-number
// paginator envelope the clients already consume.
type FeedPage struct {
	Count    int           `json:"count"`
	Next     *int          `json:"next"`
	Previous *int          `json:"previous"`
	Results  []models.Post `json:"results"`
}

// FeedService assembles the paginated, time-ordered news feed from the
// subscription index and the post store.
type FeedService struct {
	logger zerolog.Logger
	subs   SubscribedBlogLister
	posts  PostWindowStore
}

func NewFeedService(subs SubscribedBlogLister, posts PostWindowStore) *FeedService {
	return &FeedService{
		logger: log.With().Str("service", "feed").Logger(),
		subs:   subs,
		posts:  posts,
	}
}

// GetFeed returns the requested page of the account's feed. An account with
// no subscriptions gets a not-found empty state, distinct from an account
// whose subscribed blogs simply have no posts yet (an empty page). Pages
// past the end return an empty page, not an error.
func (s *FeedService) GetFeed(ctx context.Context, accountID uint, page int) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}
	// Any page past the window is identically empty; clamping here also
	// keeps the start offset below from overflowing for absurd page
	// numbers.
	if maxPage := FeedWindowSize/FeedPageSize + 1; page > maxPage {
		page = maxPage
	}

	blogIDs, err := s.subs.BlogIDsForAccount(ctx, accountID)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "subscriptions", err)
	}
	if len(blogIDs) == 0 {
		return nil, errs.NewNotFoundError("you are not subscribed to any blog")
	}

	window, err := s.posts.FeedWindow(ctx, blogIDs, FeedWindowSize)
	if err != nil {
		return nil, errs.NewDatabaseError("query", "news feed", err)
	}

	feedPage := &FeedPage{
		Count:   len(window),
		Results: []models.Post{},
	}

	start := (page - 1) * FeedPageSize
	if start < len(window) {
		end := start + FeedPageSize
		if end > len(window) {
			end = len(window)
		}
		feedPage.Results = window[start:end]
		if end < len(window) {
			next := page + 1
			feedPage.Next = &next
		}
	}
	if page > 1 {
		previous := page - 1
		feedPage.Previous = &previous
	}

	s.logger.Debug().
		Uint("accountID", accountID).
		Int("page", page).
		Int("count", feedPage.Count).
		Int("results", len(feedPage.Results)).
		Msg("Assembled feed page")

	return feedPage, nil
}
