package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for email, password and optional names, then creates the
// account. On success the user is signed in with the returned token.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	firstName, err := getSimpleText(a.reader, "First name (optional)", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name (optional)", a.out)
	if err != nil {
		return err
	}

	resp, err := a.client.Signup(ctx, email, password, firstName, lastName)
	if err != nil {
		a.report("Signup failed", err)
		return err
	}

	a.userName = resp.Account.Email
	fmt.Fprintf(a.out, "Account %d created for %s\n", resp.Account.ID, resp.Account.Email)
	return nil
}

// Signin prompts for credentials and authenticates.
func (a *App) Signin(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.client.Signin(ctx, email, password)
	if err != nil {
		a.report("Signin failed", err)
		return err
	}

	a.userName = resp.Account.Email
	fmt.Fprintln(a.out, "Signed in")
	return nil
}

// Me prints the signed-in account as returned by the server.
func (a *App) Me(ctx context.Context) error {
	acc, err := a.client.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			// token expired or revoked: drop local session
			a.userName = ""
			a.client.Logout()
		}
		a.report("Request failed", err)
		return err
	}

	name := strings.TrimSpace(deref(acc.FirstName) + " " + deref(acc.LastName))
	if name == "" {
		name = "-"
	}
	fmt.Fprintf(a.out, "id: %d\nemail: %s\nname: %s\n", acc.ID, acc.Email, name)
	return nil
}

// Logout forgets the session locally.
func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.userName = ""
	return nil
}

func (a *App) report(prefix string, err error) {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		fmt.Fprintf(a.out, "%s: server unavailable\n", prefix)
	default:
		fmt.Fprintf(a.out, "%s: %v\n", prefix, err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
