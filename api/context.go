package api

import (
	"context"
	"errors"
)

type keyType string

const accountIDKey keyType = "accountID"

// ctxWithAccountID adds the caller's account ID to the context
func ctxWithAccountID(ctx context.Context, accountID uint) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// ctxAccountID retrieves the caller's account ID from the context
func ctxAccountID(ctx context.Context) (uint, error) {
	value := ctx.Value(accountIDKey)
	if value == nil {
		return 0, errors.New("account ID not found in context")
	}
	accountID, ok := value.(uint)
	if !ok {
		return 0, errors.New("account ID is not of type `uint`")
	}
	return accountID, nil
}
