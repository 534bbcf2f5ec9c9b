package api

import (
	"encoding/json"
	"net/http"

	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type readMarkHandler struct {
	responder Responder
	logger    zerolog.Logger
	readState *services.ReadStateService
}

func newReadMarkHandler(readState *services.ReadStateService) readMarkHandler {
	logger := log.With().Str("handlerName", "readMarkHandler").Logger()

	return readMarkHandler{
		responder: NewResponder(logger),
		logger:    logger,
		readState: readState,
	}
}

type markPostsRequest struct {
	PostIDs []uint `json:"post_ids"`
}

// markPostsResponse carries the three outcome buckets alongside the overall
// message, whatever the status code ends up being.
type markPostsResponse struct {
	Message string `json:"message"`
	services.MarkResult
}

// markPostsAsRead marks a batch of posts read for the caller. The overall
// status reflects the worst bucket: unknown IDs make the whole call a 404
// and already-read IDs a 400, even though marks created for the other IDs
// stay in place.
func (h readMarkHandler) markPostsAsRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := ctxAccountID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req markPostsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("mark-post-as-read payload"))
			return
		}

		result, err := h.readState.MarkRead(r.Context(), accountID, req.PostIDs)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		response := markPostsResponse{MarkResult: *result}
		switch {
		case len(result.NotFound) > 0:
			response.Message = "some posts were not found"
			w.WriteHeader(http.StatusNotFound)
		case len(result.AlreadyRead) > 0:
			response.Message = "some posts are already marked as read"
			w.WriteHeader(http.StatusBadRequest)
		default:
			response.Message = "all posts marked as read"
		}
		h.responder.WriteJSON(w, response)
	}
}
