// Command promote-admin grants the admin role to an existing user.
//
//	promote-admin <user-id>
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fjod/storefront/internal/auth"
	"github.com/fjod/storefront/internal/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 1 || args[0] == "" {
		return errors.New("usage: promote-admin <user-id>")
	}
	userID := args[0]

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	url := os.Getenv("AUTH_DATABASE_URL")
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return errors.New("AUTH_DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := auth.ConnectPG(ctx, url)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := promote(ctx, auth.NewPGDirectory(pool), userID); err != nil {
		return err
	}
	fmt.Printf("user %s is now an admin\n", userID)
	return nil
}

type adminSetter interface {
	SetAdmin(ctx context.Context, id string, admin bool) error
}

func promote(ctx context.Context, dir adminSetter, userID string) error {
	err := dir.SetAdmin(ctx, userID, true)
	if errors.Is(err, auth.ErrUserNotFound) {
		return fmt.Errorf("no user with id %s", userID)
	}
	if err != nil {
		return fmt.Errorf("failed to promote user: %w", err)
	}
	return nil
}
