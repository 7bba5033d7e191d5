package client

import (
	"context"
)

type Account struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type AuthResponse struct {
	Account     Account `json:"account"`
	AccessToken string  `json:"accessToken"`
}

type Client interface {
	Signup(ctx context.Context, email string, password []byte, firstName, lastName string) (*AuthResponse, error)
	Signin(ctx context.Context, email string, password []byte) (*AuthResponse, error)
	Me(ctx context.Context) (*Account, error)
	Ping(ctx context.Context) error
	Logout()
}
