package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/hiai-demo-qms/qmshub/internal/common"
)

// Login prompts for credentials and establishes a session. On success the
// user lands on the surface matching their role, like the web client's
// post-login navigation.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	if user.IsAdmin() {
		printlnFn("Welcome,", user.FullName, "- admin console unlocked (try: users)")
	} else {
		printlnFn("Welcome,", user.FullName)
	}
	return nil
}

// Register prompts for the new account fields and signs the user in on
// success, following the same navigation contract as Login.
func (a *App) Register(ctx context.Context) error {
	fullname, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Register(ctx, fullname, email, string(password))
	if err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Account created. Welcome,", user.FullName)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	printlnFn("Signed out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not signed in.")
		return nil
	}
	user := a.session.CurrentUser()
	printlnFn(fmt.Sprintf("%s <%s> role=%s", user.FullName, user.Email, user.Role))
	return nil
}

// Users lists all accounts; the backend only honors this for admin tokens.
func (a *App) Users(ctx context.Context) error {
	users, err := a.apiClient.ListUsers(ctx)
	if err != nil {
		printlnFn("Cannot list users:", err.Error())
		return err
	}
	for _, u := range users {
		printlnFn(fmt.Sprintf("%-36s  %-24s  %s", u.ID, u.Email, u.Role))
	}
	return nil
}
