package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// UserCreate registers a new account and its empty watchlist.
func (r *Runner) UserCreate(ctx context.Context, cmd *cli.Command) error {
	lib, cleanup, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer cleanup()

	user, err := lib.CreateUser(cmd.String("name"), cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}

	r.writePlain("✓ account created for %s (%s)\n", user.Name(), user.Email())
	return nil
}

// UserLogin verifies credentials and reports the session confirmation.
func (r *Runner) UserLogin(ctx context.Context, cmd *cli.Command) error {
	lib, cleanup, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer cleanup()

	message, err := lib.Login(cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}

	r.writePlain("✓ %s\n", message)
	return nil
}
