package services_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/models"
	"github.com/nekidaem/microblog/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	tests := []struct {
		name       string
		accountID  uint
		blogID     uint
		title      string
		content    string
		wantStatus int
	}{
		{
			name:      "owner posts to own blog",
			accountID: 1,
			blogID:    10,
			title:     "hello",
			content:   "first post",
		},
		{
			name:      "title at the limit",
			accountID: 1,
			blogID:    10,
			title:     strings.Repeat("a", models.MaxTitleLength),
		},
		{
			name:      "content at the limit",
			accountID: 1,
			blogID:    10,
			title:     "hello",
			content:   strings.Repeat("b", models.MaxContentLength),
		},
		{
			name:       "unknown blog",
			accountID:  1,
			blogID:     99,
			title:      "hello",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "someone else's blog",
			accountID:  2,
			blogID:     10,
			title:      "hello",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty title",
			accountID:  1,
			blogID:     10,
			title:      "   ",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "title too long",
			accountID:  1,
			blogID:     10,
			title:      strings.Repeat("a", models.MaxTitleLength+1),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "content too long",
			accountID:  1,
			blogID:     10,
			title:      "hello",
			content:    strings.Repeat("b", models.MaxContentLength+1),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blogs := &fakeBlogs{blogs: map[uint]*models.Blog{10: {ID: 10, AccountID: 1}}}
			posts := newFakePostStore()
			svc := services.NewPostService(posts, blogs)

			post, err := svc.CreatePost(context.Background(), tt.accountID, tt.blogID, tt.title, tt.content)

			if tt.wantStatus != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, errs.StatusCode(err))
				assert.Empty(t, posts.added)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, post.ID)
			assert.Equal(t, tt.blogID, post.BlogID)
			assert.Equal(t, []uint{post.ID}, posts.added)
		})
	}
}

func TestCreatePostCountsRunesNotBytes(t *testing.T) {
	blogs := &fakeBlogs{blogs: map[uint]*models.Blog{10: {ID: 10, AccountID: 1}}}
	svc := services.NewPostService(newFakePostStore(), blogs)

	// 140 multibyte runes are within the limit even though the byte count
	// is far beyond it.
	content := strings.Repeat("Ж", models.MaxContentLength)
	_, err := svc.CreatePost(context.Background(), 1, 10, "заголовок", content)
	require.NoError(t, err)
}

func TestDeletePost(t *testing.T) {
	tests := []struct {
		name       string
		accountID  uint
		postID     uint
		wantStatus int
	}{
		{
			name:      "owner deletes own post",
			accountID: 1,
			postID:    5,
		},
		{
			name:       "unknown post",
			accountID:  1,
			postID:     99,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "someone else's post looks missing",
			accountID:  2,
			postID:     5,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blogs := &fakeBlogs{blogs: map[uint]*models.Blog{10: {ID: 10, AccountID: 1}}}
			posts := newFakePostStore(&models.Post{ID: 5, BlogID: 10, Title: "hello"})
			svc := services.NewPostService(posts, blogs)

			err := svc.DeletePost(context.Background(), tt.accountID, tt.postID)

			if tt.wantStatus != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, errs.StatusCode(err))
				assert.Empty(t, posts.deleted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []uint{tt.postID}, posts.deleted)
		})
	}
}
