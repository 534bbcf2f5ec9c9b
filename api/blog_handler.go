package api

import (
	"context"
	"net/http"

	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BlogStore is the persistence port the blog handler needs.
type BlogStore interface {
	Add(ctx context.Context, blog *models.Blog) error
	FindByAccountID(ctx context.Context, accountID uint) (*models.Blog, error)
}

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogs     BlogStore
}

func newBlogHandler(blogs BlogStore) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogs:     blogs,
	}
}

// createBlog creates the caller's blog. Each account owns at most one.
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := ctxAccountID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		blog := models.Blog{AccountID: accountID}
		if err := h.blogs.Add(r.Context(), &blog); err != nil {
			if errs.IsAlreadyExists(err) {
				h.responder.WriteError(w, errs.NewBadRequestError("account already has a blog"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("create", "blog", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, blog)
	}
}

// getOwnBlog returns the caller's blog
func (h blogHandler) getOwnBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := ctxAccountID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		blog, err := h.blogs.FindByAccountID(r.Context(), accountID)
		if err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, errs.NewNotFoundError("blog"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "blog", err))
			return
		}

		h.responder.WriteJSON(w, blog)
	}
}
