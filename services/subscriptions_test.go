package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/models"
	"github.com/nekidaem/microblog/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe(t *testing.T) {
	tests := []struct {
		name        string
		accountID   uint
		blogID      uint
		existing    []pair
		addErr      error
		wantCreated bool
		wantStatus  int // 0 means no error expected
	}{
		{
			name:        "first subscription is created",
			accountID:   1,
			blogID:      20,
			wantCreated: true,
		},
		{
			name:        "duplicate subscription succeeds without creating",
			accountID:   1,
			blogID:      20,
			existing:    []pair{{1, 20}},
			wantCreated: false,
		},
		{
			name:       "unknown blog",
			accountID:  1,
			blogID:     99,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "own blog",
			accountID:  1,
			blogID:     10,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:        "lost constraint race still succeeds",
			accountID:   1,
			blogID:      20,
			addErr:      errs.ErrAlreadyExists,
			wantCreated: false,
		},
		{
			name:       "storage failure",
			accountID:  1,
			blogID:     20,
			addErr:     errStorage,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blogs := &fakeBlogs{blogs: map[uint]*models.Blog{
				10: {ID: 10, AccountID: 1},
				20: {ID: 20, AccountID: 2},
			}}
			subs := newFakeSubscriptions(tt.existing...)
			subs.addErr = tt.addErr
			svc := services.NewSubscriptionService(subs, blogs)

			created, err := svc.Subscribe(context.Background(), tt.accountID, tt.blogID)

			if tt.wantStatus != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, errs.StatusCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)
		})
	}
}

func TestUnsubscribe(t *testing.T) {
	tests := []struct {
		name       string
		accountID  uint
		blogID     uint
		existing   []pair
		wantStatus int
	}{
		{
			name:      "removes an existing subscription",
			accountID: 1,
			blogID:    20,
			existing:  []pair{{1, 20}},
		},
		{
			name:       "unknown blog",
			accountID:  1,
			blogID:     99,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "not subscribed",
			accountID:  1,
			blogID:     20,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blogs := &fakeBlogs{blogs: map[uint]*models.Blog{
				20: {ID: 20, AccountID: 2},
			}}
			subs := newFakeSubscriptions(tt.existing...)
			svc := services.NewSubscriptionService(subs, blogs)

			err := svc.Unsubscribe(context.Background(), tt.accountID, tt.blogID)

			if tt.wantStatus != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, errs.StatusCode(err))
				return
			}
			require.NoError(t, err)
			assert.Empty(t, subs.pairs)
		})
	}
}

func TestUnsubscribeThenResubscribeCreates(t *testing.T) {
	blogs := &fakeBlogs{blogs: map[uint]*models.Blog{20: {ID: 20, AccountID: 2}}}
	subs := newFakeSubscriptions(pair{1, 20})
	svc := services.NewSubscriptionService(subs, blogs)

	require.NoError(t, svc.Unsubscribe(context.Background(), 1, 20))

	created, err := svc.Subscribe(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.True(t, created)
}
