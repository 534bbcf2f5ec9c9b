package fanout_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nekidaem/microblog/models"
)

type markKey struct {
	accountID uint
	postID    uint
}

// memStore is an in-memory fanout.Store: a pending task queue plus the
// subscription graph and read marks the policies touch. All methods are
// safe for concurrent use, the worker runs tasks on a pool.
type memStore struct {
	mu sync.Mutex

	tasks     []models.FeedTask
	completed []uuid.UUID
	released  []uuid.UUID

	posts       map[uint]uint   // post ID -> blog ID
	subscribers map[uint][]uint // blog ID -> account IDs

	marks map[markKey]bool // (account, post) -> read flag

	applyErr error // when set, AddReadMarks fails with it
}

func newMemStore() *memStore {
	return &memStore{
		posts:       make(map[uint]uint),
		subscribers: make(map[uint][]uint),
		marks:       make(map[markKey]bool),
	}
}

func (s *memStore) enqueue(task models.FeedTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

func (s *memStore) ClaimTasks(_ context.Context, limit int, _ time.Duration) ([]models.FeedTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit > len(s.tasks) {
		limit = len(s.tasks)
	}
	claimed := s.tasks[:limit]
	s.tasks = s.tasks[limit:]
	return claimed, nil
}

func (s *memStore) CompleteTask(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = append(s.completed, id)
	return nil
}

func (s *memStore) ReleaseTask(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = append(s.released, id)
	return nil
}

func (s *memStore) PostExists(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.posts[id]
	return ok, nil
}

func (s *memStore) SubscriberIDs(_ context.Context, blogID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribers[blogID], nil
}

func (s *memStore) SubscribedBlogIDs(_ context.Context, accountID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blogIDs := []uint{}
	for blogID, accounts := range s.subscribers {
		for _, id := range accounts {
			if id == accountID {
				blogIDs = append(blogIDs, blogID)
				break
			}
		}
	}
	return blogIDs, nil
}

func (s *memStore) PostIDsForBlogs(_ context.Context, blogIDs []uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[uint]bool, len(blogIDs))
	for _, id := range blogIDs {
		want[id] = true
	}
	postIDs := []uint{}
	for postID, blogID := range s.posts {
		if want[blogID] {
			postIDs = append(postIDs, postID)
		}
	}
	return postIDs, nil
}

func (s *memStore) AddReadMarks(_ context.Context, accountID uint, postIDs []uint, read bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applyErr != nil {
		return s.applyErr
	}
	for _, postID := range postIDs {
		key := markKey{accountID, postID}
		// Existing marks win, matching the insert-or-ignore upsert.
		if _, ok := s.marks[key]; !ok {
			s.marks[key] = read
		}
	}
	return nil
}

func (s *memStore) markFor(accountID, postID uint) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	read, ok := s.marks[markKey{accountID, postID}]
	return read, ok
}
