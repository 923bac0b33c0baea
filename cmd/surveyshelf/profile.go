package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unisurveyal/surveyshelf/internal/api"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	Long: `Profile prints the logged-in identity. With --nickname or --interests it
updates the profile instead; the interest fields drive the interest filter
and initial recommendations.`,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().String("nickname", "", "new display name")
	profileCmd.Flags().String("interests", "", "new interest fields (comma-separated)")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, sess, err := requireSession(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	nickname, _ := cmd.Flags().GetString("nickname")
	interests, _ := cmd.Flags().GetString("interests")
	auth := api.NewAuthClient(cfg.Services)

	if nickname != "" || interests != "" {
		user, err := auth.UpdateProfile(context.Background(), sess.Token, nickname, splitInterests(interests))
		if err != nil {
			return fmt.Errorf("updating profile: %w", err)
		}
		if err := store.UpdateUser(user); err != nil {
			return err
		}
		sess.User = user
		fmt.Println("Profile updated")
	} else {
		// Refresh the identity from the Auth Service so a stale token is
		// caught here rather than mid-browse.
		user, err := auth.Me(context.Background(), sess.Token)
		if err != nil {
			return fmt.Errorf("fetching profile: %w", err)
		}
		if err := store.UpdateUser(user); err != nil {
			return err
		}
		sess.User = user
	}

	fmt.Printf("Username:  %s\n", sess.User.Username)
	fmt.Printf("Email:     %s\n", sess.User.Email)
	if sess.User.Nickname != "" {
		fmt.Printf("Nickname:  %s\n", sess.User.Nickname)
	}
	if fields := sess.Interests(); len(fields) > 0 {
		fmt.Printf("Interests: %s\n", strings.Join(fields, ", "))
	}
	return nil
}
