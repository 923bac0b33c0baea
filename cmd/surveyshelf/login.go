package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unisurveyal/surveyshelf/internal/api"
	"github.com/unisurveyal/surveyshelf/internal/session"
	"github.com/unisurveyal/surveyshelf/pkg/types"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and start a session",
	Long: `Login exchanges username and password for a bearer token and stores the
session locally. Any previous session, including its screen snapshots, is
replaced.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().String("username", "", "account username")
	loginCmd.Flags().String("password", "", "account password (or SURVEYSHELF_PASSWORD)")

	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv("SURVEYSHELF_PASSWORD")
	}
	if username == "" || password == "" {
		return fmt.Errorf("provide --username and --password (or SURVEYSHELF_PASSWORD)")
	}

	cfg := loadConfig()
	auth := api.NewAuthClient(cfg.Services)

	creds, err := auth.Login(context.Background(), username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	return beginSession(cfg, creds)
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE:  runRegister,
}

func init() {
	registerCmd.Flags().String("username", "", "account username")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password (or SURVEYSHELF_PASSWORD)")
	registerCmd.Flags().String("nickname", "", "display name")
	registerCmd.Flags().String("interests", "", "interest fields (comma-separated, e.g. \"Computer Vision,NLP\")")

	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv("SURVEYSHELF_PASSWORD")
	}
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("provide --username, --email, and --password")
	}
	nickname, _ := cmd.Flags().GetString("nickname")
	interests, _ := cmd.Flags().GetString("interests")

	cfg := loadConfig()
	auth := api.NewAuthClient(cfg.Services)

	creds, err := auth.Register(context.Background(), api.RegisterRequest{
		Username:       username,
		Email:          email,
		Password:       password,
		Nickname:       nickname,
		InterestFields: splitInterests(interests),
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	return beginSession(cfg, creds)
}

func splitInterests(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// beginSession persists the credentials and wipes stale snapshots so the new
// session starts from a clean slate.
func beginSession(cfg types.ClientConfig, creds api.Credentials) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Begin(session.Session{Token: creds.AccessToken, User: creds.User}); err != nil {
		return err
	}

	snaps, err := snapshotStore(store)
	if err != nil {
		return err
	}
	if err := snaps.Reset(); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", creds.User.Username)
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and clear local state",
	Long: `Logout invalidates the token with the Auth Service, deletes the local
session, and discards all screen snapshots. Running it without an active
session is fine.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if sess, err := store.Current(); err == nil {
		// Best effort: the local teardown happens either way.
		if err := api.NewAuthClient(cfg.Services).Logout(context.Background(), sess.Token); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: server-side logout failed: %v\n", err)
		}
	}

	if err := store.End(); err != nil {
		return err
	}

	snaps, err := snapshotStore(store)
	if err != nil {
		return err
	}
	if err := snaps.Reset(); err != nil {
		return err
	}

	fmt.Println("Logged out")
	return nil
}
