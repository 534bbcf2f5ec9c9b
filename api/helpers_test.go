package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/models"
)

// asAccount injects the account ID the way the auth middleware would,
// letting handler tests skip token plumbing.
func asAccount(accountID uint) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ctxWithAccountID(r.Context(), accountID)))
		})
	}
}

func testRouter(accountID uint, register func(chi.Router)) *chi.Mux {
	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(asAccount(accountID))
		register(r)
	})
	return router
}

// In-memory fakes for the service ports the handlers sit on.

type stubBlogs struct {
	blogs map[uint]*models.Blog
}

func (f *stubBlogs) FindByID(_ context.Context, id uint) (*models.Blog, error) {
	blog, ok := f.blogs[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return blog, nil
}

func (f *stubBlogs) Add(_ context.Context, blog *models.Blog) error {
	for _, existing := range f.blogs {
		if existing.AccountID == blog.AccountID {
			return errs.ErrAlreadyExists
		}
	}
	blog.ID = uint(len(f.blogs) + 1)
	f.blogs[blog.ID] = blog
	return nil
}

func (f *stubBlogs) FindByAccountID(_ context.Context, accountID uint) (*models.Blog, error) {
	for _, blog := range f.blogs {
		if blog.AccountID == accountID {
			return blog, nil
		}
	}
	return nil, errs.ErrNotFound
}

type subPair struct {
	accountID uint
	blogID    uint
}

type stubSubscriptions struct {
	pairs map[subPair]bool
}

func newStubSubscriptions(pairs ...subPair) *stubSubscriptions {
	f := &stubSubscriptions{pairs: make(map[subPair]bool)}
	for _, p := range pairs {
		f.pairs[p] = true
	}
	return f
}

func (f *stubSubscriptions) Add(_ context.Context, accountID, blogID uint) (bool, error) {
	p := subPair{accountID, blogID}
	if f.pairs[p] {
		return false, nil
	}
	f.pairs[p] = true
	return true, nil
}

func (f *stubSubscriptions) DeleteByPair(_ context.Context, accountID, blogID uint) error {
	p := subPair{accountID, blogID}
	if !f.pairs[p] {
		return errs.ErrNotFound
	}
	delete(f.pairs, p)
	return nil
}

func (f *stubSubscriptions) BlogIDsForAccount(_ context.Context, accountID uint) ([]uint, error) {
	ids := []uint{}
	for p := range f.pairs {
		if p.accountID == accountID {
			ids = append(ids, p.blogID)
		}
	}
	return ids, nil
}

type stubPosts struct {
	posts map[uint]*models.Post
	// window is returned newest first for any subscribed blog filter
	window []models.Post
}

func newStubPosts(posts ...*models.Post) *stubPosts {
	f := &stubPosts{posts: make(map[uint]*models.Post)}
	for _, p := range posts {
		f.posts[p.ID] = p
		f.window = append(f.window, *p)
	}
	return f
}

func (f *stubPosts) FeedWindow(_ context.Context, blogIDs []uint, limit int) ([]models.Post, error) {
	want := make(map[uint]bool, len(blogIDs))
	for _, id := range blogIDs {
		want[id] = true
	}
	out := []models.Post{}
	for _, post := range f.window {
		if want[post.BlogID] && len(out) < limit {
			out = append(out, post)
		}
	}
	return out, nil
}

func (f *stubPosts) ExistingIDs(_ context.Context, ids []uint) ([]uint, error) {
	out := []uint{}
	for _, id := range ids {
		if _, ok := f.posts[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *stubPosts) AddWithTask(_ context.Context, post *models.Post) error {
	post.ID = uint(len(f.posts) + 1)
	f.posts[post.ID] = post
	return nil
}

func (f *stubPosts) DeleteWithTask(_ context.Context, post *models.Post) error {
	if _, ok := f.posts[post.ID]; !ok {
		return errs.ErrNotFound
	}
	delete(f.posts, post.ID)
	return nil
}

func (f *stubPosts) FindByID(_ context.Context, id uint) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return post, nil
}

type stubReadMarks struct {
	read map[subPair]bool
}

func newStubReadMarks() *stubReadMarks {
	return &stubReadMarks{read: make(map[subPair]bool)}
}

func (f *stubReadMarks) ReadPostIDs(_ context.Context, accountID uint, postIDs []uint) ([]uint, error) {
	out := []uint{}
	for _, id := range postIDs {
		if f.read[subPair{accountID, id}] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *stubReadMarks) Add(_ context.Context, mark *models.ReadMark) error {
	// Upsert: a conflicting pair is flipped to read.
	f.read[subPair{mark.AccountID, mark.PostID}] = true
	return nil
}
