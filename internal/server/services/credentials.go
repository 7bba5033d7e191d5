// Package services contains server-side business logic. This file implements
// CredentialService, which registers accounts, verifies credentials and
// issues access tokens.
package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/events"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/accounts"
)

// TokenIssuer signs access tokens for an account.
type TokenIssuer interface {
	Issue(subject int64, email string) (string, error)
}

// AuthResult is what signup and signin hand back to the caller.
type AuthResult struct {
	Account     models.AccountView `json:"account"`
	AccessToken string             `json:"accessToken"`
}

// Profile carries optional display metadata supplied at signup.
type Profile struct {
	FirstName *string
	LastName  *string
}

type CredentialService struct {
	accounts  accounts.Repository
	hasher    cryptox.PasswordHasher
	issuer    TokenIssuer
	publisher events.Publisher
	logger    logging.Logger

	// verified for unknown emails so signin costs the same either way
	dummyHash string
}

// NewCredentialService wires the service. A nil publisher disables events.
func NewCredentialService(
	repo accounts.Repository,
	hasher cryptox.PasswordHasher,
	issuer TokenIssuer,
	publisher events.Publisher,
	logger logging.Logger,
) (*CredentialService, error) {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = logging.Nop{}
	}

	dummy, err := hasher.Hash(hex.EncodeToString(common.GenerateRandByteArray(16)))
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy hash: %w", err)
	}

	return &CredentialService{
		accounts:  repo,
		hasher:    hasher,
		issuer:    issuer,
		publisher: publisher,
		logger:    logger.With("module", "credentials"),
		dummyHash: dummy,
	}, nil
}

// Signup stores a new account and returns its projection with a fresh token.
// A taken email yields common.ErrDuplicateAccount.
func (s *CredentialService) Signup(ctx context.Context, email, password string, profile Profile) (*AuthResult, error) {
	email = common.NormalizeEmail(email)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, cryptox.ErrEmptyPassword) {
			return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account, err := s.accounts.Create(ctx, &models.Account{
		Email:        email,
		PasswordHash: hash,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	result, err := s.authResult(account)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "account created", "account_id", account.ID)

	ev := events.AccountCreatedEvent{AccountID: account.ID, Email: account.Email}
	if err := s.publisher.Publish(ctx, events.AccountCreated, ev); err != nil {
		s.logger.Warn(ctx, "publish account.created failed", "account_id", account.ID, "error", err)
	}

	return result, nil
}

// Signin checks the password for the given email. Unknown email and wrong
// password are indistinguishable to the caller: both yield
// common.ErrInvalidCredentials.
func (s *CredentialService) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	email = common.NormalizeEmail(email)

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = s.hasher.Verify(password, s.dummyHash)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading account: %w", err)
	}

	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	return s.authResult(account)
}

// Me returns the projection of the account identified by a verified token.
func (s *CredentialService) Me(ctx context.Context, accountID int64) (*models.AccountView, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading account: %w", err)
	}
	view := account.View()
	return &view, nil
}

func (s *CredentialService) authResult(account *models.Account) (*AuthResult, error) {
	token, err := s.issuer.Issue(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return &AuthResult{Account: account.View(), AccessToken: token}, nil
}
