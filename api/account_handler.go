package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// AccountStore is the persistence port the account handler needs.
type AccountStore interface {
	Add(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id uint) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
}

type accountHandler struct {
	responder Responder
	logger    zerolog.Logger
	accounts  AccountStore
}

func newAccountHandler(accounts AccountStore) accountHandler {
	logger := log.With().Str("handlerName", "accountHandler").Logger()

	return accountHandler{
		responder: NewResponder(logger),
		logger:    logger,
		accounts:  accounts,
	}
}

type createAccountRequest struct {
	Username    string          `json:"username"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Surname     string          `json:"surname"`
	DateOfBirth *datatypes.Date `json:"date_of_birth"`
}

// createAccount registers a new account. Usernames are unique and immutable.
func (h accountHandler) createAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("account payload"))
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" {
			h.responder.WriteError(w, errs.NewInvalidArgumentError("username must not be empty"))
			return
		}

		account := models.Account{
			Username:    req.Username,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Surname:     req.Surname,
			DateOfBirth: req.DateOfBirth,
		}
		if err := h.accounts.Add(r.Context(), &account); err != nil {
			if errs.IsAlreadyExists(err) {
				h.responder.WriteError(w, errs.NewBadRequestError("an account with this username already exists"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("create", "account", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, account)
	}
}

// getAccount returns an account by its ID
func (h accountHandler) getAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := parseUintParam(r, "accountID")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid accountID"))
			return
		}

		account, err := h.accounts.FindByID(r.Context(), accountID)
		if err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, errs.NewNotFoundError("account"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "account", err))
			return
		}

		h.responder.WriteJSON(w, account)
	}
}

// getAccountByUsername returns an account by its unique username
func (h accountHandler) getAccountByUsername() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		if username == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing username"))
			return
		}

		account, err := h.accounts.FindByUsername(r.Context(), username)
		if err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, errs.NewNotFoundError("account"))
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "account", err))
			return
		}

		h.responder.WriteJSON(w, account)
	}
}
