// Package models holds the server-side persistence types.
package models

import "time"

// Account is a stored user identity. PasswordHash never leaves the
// store/service boundary: handlers only ever receive an AccountView.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	CreatedAt    time.Time
}

// AccountView is the public projection of an Account. It deliberately has
// no hash field.
type AccountView struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// View builds the public projection.
func (a *Account) View() AccountView {
	return AccountView{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}
