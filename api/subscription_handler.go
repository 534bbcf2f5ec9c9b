package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type subscriptionHandler struct {
	responder     Responder
	logger        zerolog.Logger
	subscriptions *services.SubscriptionService
}

func newSubscriptionHandler(subscriptions *services.SubscriptionService) subscriptionHandler {
	logger := log.With().Str("handlerName", "subscriptionHandler").Logger()

	return subscriptionHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		subscriptions: subscriptions,
	}
}

// subscribeResponse reports the outcome of a subscribe call; created is
// false when the caller was already subscribed, which is still a success.
type subscribeResponse struct {
	Message string `json:"message"`
	Created bool   `json:"created"`
}

// subscribe subscribes the caller to the blog in the path
func (h subscriptionHandler) subscribe() http.HandlerFunc {
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

		created, err := h.subscriptions.Subscribe(r.Context(), accountID, blogID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message := fmt.Sprintf("subscribed to blog %d", blogID)
		if !created {
			message = fmt.Sprintf("already subscribed to blog %d", blogID)
		}
		h.responder.WriteJSON(w, subscribeResponse{Message: message, Created: created})
	}
}

// unsubscribe removes the caller's subscription to the blog in the path
func (h subscriptionHandler) unsubscribe() http.HandlerFunc {
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

		if err := h.subscriptions.Unsubscribe(r.Context(), accountID, blogID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"message": fmt.Sprintf("unsubscribed from blog %d", blogID),
		})
	}
}

// parseUintParam reads a positive integer path parameter
func parseUintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
