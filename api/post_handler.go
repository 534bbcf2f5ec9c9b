package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     *services.PostService
}

func newPostHandler(posts *services.PostService) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// addPostToBlog creates a post in the caller's own blog
func (h postHandler) addPostToBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := ctxAccountID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		blogID, err := parseUintParam(r, "blogID")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogID"))
			return
		}

		var req createPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("add-post-to-blog payload"))
			return
		}

		post, err := h.posts.CreatePost(r.Context(), accountID, blogID, req.Title, req.Content)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// deletePostFromBlog deletes one of the caller's own posts
func (h postHandler) deletePostFromBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := ctxAccountID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		postID, err := parseUintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		if err := h.posts.DeletePost(r.Context(), accountID, postID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"message": fmt.Sprintf("post %d deleted", postID),
		})
	}
}
