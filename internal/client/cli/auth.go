package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/benchauth/internal/accounts"
	"github.com/dmitrijs2005/benchauth/internal/common"
	"github.com/dustin/go-humanize"
)

// DefaultAvatar is offered when the user does not pick one.
const DefaultAvatar = "https://api.dicebear.com/7.x/avataaars/svg?seed=User&backgroundColor=b6e3f4"

var (
	errTermsNotAccepted = errors.New("terms not accepted")
	errPasswordMismatch = errors.New("passwords do not match")
	errNotLoggedIn      = errors.New("not logged in")
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register walks the user through the registration form: names, email,
// password with confirmation, avatar and terms agreement. The terms and the
// confirmation are checked here, everything else by the account core.
//
// On success the user is logged in. Both password buffers are wiped before
// returning.
func (a *App) Register(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	strength := accounts.MeasureStrength(string(password))
	printlnFn("Password strength: " + strength.String())
	if !strength.Acceptable() {
		a.notify(levelWarning, "Password is weak: use 8+ characters with upper and lower case letters and a number")
	}

	confirm, err := getPassword(a.out, "Confirm password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	avatar, err := getSimpleText(a.reader, "Avatar URL (empty for default)", a.out)
	if err != nil {
		return err
	}
	if avatar == "" {
		avatar = DefaultAvatar
	}

	agreed, err := getSimpleText(a.reader, "Do you agree to the terms and conditions? (y/n)", a.out)
	if err != nil {
		return err
	}

	if !isYes(agreed) {
		a.notify(levelWarning, "You must agree to the terms and conditions")
		return errTermsNotAccepted
	}
	if !bytes.Equal(password, confirm) {
		a.notify(levelDanger, "Passwords do not match")
		return errPasswordMismatch
	}

	_, err = a.accounts.Register(ctx, accounts.RegisterInput{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(password),
		AvatarRef: avatar,
	})
	if err != nil {
		a.log.Debug(ctx, "registration rejected", "kind", accounts.KindOf(err).String())
		a.notify(levelDanger, err.Error())
		return err
	}

	a.notify(levelSuccess, "Registration successful! Welcome!")
	return nil
}

// Login prompts for credentials and starts a session. A failed attempt
// leaves any existing session in place.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.accounts.Login(ctx, email, string(password)); err != nil {
		a.log.Debug(ctx, "login rejected", "kind", accounts.KindOf(err).String())
		a.notify(levelDanger, err.Error())
		return err
	}

	a.notify(levelSuccess, "Login successful!")
	return nil
}

// Logout ends the session. It always succeeds.
func (a *App) Logout(ctx context.Context) error {
	a.accounts.Logout(ctx)
	a.notify(levelSuccess, "Logged out successfully")
	return nil
}

// Whoami prints the session record.
func (a *App) Whoami(_ context.Context) error {
	u, ok := a.accounts.CurrentUser()
	if !ok {
		a.notify(levelInfo, "Not logged in")
		return errNotLoggedIn
	}

	printlnFn("Signed in as " + u.FullName())
	printlnFn("  email:        " + u.Email)
	printlnFn("  avatar:       " + u.AvatarRef)
	printlnFn("  member since: " + u.CreatedAt.Format("2006-01-02"))
	printlnFn("  last login:   " + humanize.Time(u.LastLoginAt))
	return nil
}

// Users lists the registered accounts without their credentials.
func (a *App) Users(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.notify(levelInfo, "Log in to see registered users")
		return errNotLoggedIn
	}

	users := a.accounts.Users(ctx)
	if len(users) == 0 {
		printlnFn("No users registered")
		return nil
	}

	current, _ := a.accounts.CurrentUser()
	for _, u := range users {
		marker := " "
		if u.ID == current.ID {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%s %-30s %-30s last login %s",
			marker, u.FullName(), u.Email, humanize.Time(u.LastLoginAt)))
	}
	return nil
}
