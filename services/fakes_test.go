package services_test

import (
	"context"
	"errors"

	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/models"
)

// In-memory fakes for the persistence ports. Each fake keeps just enough
// state for the behavior under test and can be primed with an error to
// simulate storage failures.

type fakeBlogs struct {
	blogs map[uint]*models.Blog
	err   error
}

func (f *fakeBlogs) FindByID(_ context.Context, id uint) (*models.Blog, error) {
	if f.err != nil {
		return nil, f.err
	}
	blog, ok := f.blogs[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return blog, nil
}

type pair struct {
	accountID uint
	blogID    uint
}

type fakeSubscriptions struct {
	pairs  map[pair]bool
	addErr error
}

func newFakeSubscriptions(pairs ...pair) *fakeSubscriptions {
	f := &fakeSubscriptions{pairs: make(map[pair]bool)}
	for _, p := range pairs {
		f.pairs[p] = true
	}
	return f
}

func (f *fakeSubscriptions) Add(_ context.Context, accountID, blogID uint) (bool, error) {
	if f.addErr != nil {
		return false, f.addErr
	}
	p := pair{accountID, blogID}
	if f.pairs[p] {
		return false, nil
	}
	f.pairs[p] = true
	return true, nil
}

func (f *fakeSubscriptions) DeleteByPair(_ context.Context, accountID, blogID uint) error {
	p := pair{accountID, blogID}
	if !f.pairs[p] {
		return errs.ErrNotFound
	}
	delete(f.pairs, p)
	return nil
}

func (f *fakeSubscriptions) BlogIDsForAccount(_ context.Context, accountID uint) ([]uint, error) {
	ids := []uint{}
	for p := range f.pairs {
		if p.accountID == accountID {
			ids = append(ids, p.blogID)
		}
	}
	return ids, nil
}

type fakePostWindow struct {
	// posts ordered newest first, the way the repo returns them
	posts []models.Post
}

func (f *fakePostWindow) FeedWindow(_ context.Context, blogIDs []uint, limit int) ([]models.Post, error) {
	want := make(map[uint]bool, len(blogIDs))
	for _, id := range blogIDs {
		want[id] = true
	}
	out := []models.Post{}
	for _, post := range f.posts {
		if !want[post.BlogID] {
			continue
		}
		out = append(out, post)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakePostStore struct {
	posts  map[uint]*models.Post
	nextID uint

	added   []uint
	deleted []uint
}

func newFakePostStore(posts ...*models.Post) *fakePostStore {
	f := &fakePostStore{posts: make(map[uint]*models.Post), nextID: 1}
	for _, p := range posts {
		f.posts[p.ID] = p
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
	}
	return f
}

func (f *fakePostStore) AddWithTask(_ context.Context, post *models.Post) error {
	post.ID = f.nextID
	f.nextID++
	f.posts[post.ID] = post
	f.added = append(f.added, post.ID)
	return nil
}

func (f *fakePostStore) DeleteWithTask(_ context.Context, post *models.Post) error {
	if _, ok := f.posts[post.ID]; !ok {
		return errs.ErrNotFound
	}
	delete(f.posts, post.ID)
	f.deleted = append(f.deleted, post.ID)
	return nil
}

func (f *fakePostStore) FindByID(_ context.Context, id uint) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return post, nil
}

func (f *fakePostStore) ExistingIDs(_ context.Context, ids []uint) ([]uint, error) {
	out := []uint{}
	for _, id := range ids {
		if _, ok := f.posts[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// fakeReadMarks maps (account, post) pairs to the mark's read flag; a
// present key with a false value models an unread fan-out mark.
type fakeReadMarks struct {
	read   map[pair]bool
	addErr error
}

func newFakeReadMarks() *fakeReadMarks {
	return &fakeReadMarks{read: make(map[pair]bool)}
}

func (f *fakeReadMarks) ReadPostIDs(_ context.Context, accountID uint, postIDs []uint) ([]uint, error) {
	out := []uint{}
	for _, id := range postIDs {
		if f.read[pair{accountID, id}] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeReadMarks) Add(_ context.Context, mark *models.ReadMark) error {
	if f.addErr != nil {
		return f.addErr
	}
	// Upsert: a conflicting pair is flipped to read.
	f.read[pair{mark.AccountID, mark.PostID}] = true
	return nil
}

type fakeAccounts struct {
	accounts []models.Account
}

func (f *fakeAccounts) FindAll(_ context.Context) ([]models.Account, error) {
	return f.accounts, nil
}

var errStorage = errors.New("storage down")
