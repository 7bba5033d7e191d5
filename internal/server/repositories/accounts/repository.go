// Package accounts is the Account Store: persistence for accounts with
// atomic email uniqueness.
//
// Implementations return common.ErrAlreadyExists when the email is taken and
// common.ErrorNotFound when a lookup misses. Any other error is an
// infrastructure failure. Emails are compared exactly; callers normalize.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type Repository interface {
	// Create inserts the account and fills in ID and CreatedAt.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
}
