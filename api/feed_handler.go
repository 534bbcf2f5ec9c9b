package api

import (
	"net/http"
	"strconv"

	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type feedHandler struct {
	responder Responder
	logger    zerolog.Logger
	feed      *services.FeedService
}

func newFeedHandler(feed *services.FeedService) feedHandler {
	logger := log.With().Str("handlerName", "feedHandler").Logger()

	return feedHandler{
		responder: NewResponder(logger),
		logger:    logger,
		feed:      feed,
	}
}

// newsFeed returns the caller's paginated feed of posts from subscribed
// blogs, newest first. The page query parameter defaults to 1; a page past
// the end yields an empty results array.
func (h feedHandler) newsFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := ctxAccountID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		page := 1
		if raw := r.URL.Query().Get("page"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid page"))
				return
			}
			page = parsed
		}

		feedPage, err := h.feed.GetFeed(r.Context(), accountID, page)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, feedPage)
	}
}
