// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the surveyshelf CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unisurveyal/surveyshelf/internal/api"
	"github.com/unisurveyal/surveyshelf/internal/session"
	"github.com/unisurveyal/surveyshelf/internal/snapshot"
	"github.com/unisurveyal/surveyshelf/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the surveyshelf CLI.
var rootCmd = &cobra.Command{
	Use:   "surveyshelf",
	Short: "Browse, collect, and track AI/ML survey papers",
	Long: `surveyshelf is a client for the survey paper services: search the catalog,
get recommendations, keep a personal library with reading statuses and stars,
and track daily reading activity.

Log in once with 'surveyshelf login'; the session persists across invocations
until 'surveyshelf logout'.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./surveyshelf.yaml or ~/.config/surveyshelf/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("surveyshelf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "surveyshelf"))
		}
	}

	viper.SetEnvPrefix("SURVEYSHELF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the client configuration from viper with defaults for
// every key, so a bare invocation against a local service stack works.
func loadConfig() types.ClientConfig {
	viper.SetDefault("services.timeout", 30*time.Second)
	viper.SetDefault("services.user_agent", "surveyshelf/"+version)
	viper.SetDefault("services.auth_url", "http://localhost:8000/api/auth")
	viper.SetDefault("services.survey_url", "http://localhost:8000/api")
	viper.SetDefault("search.max_results", 500)
	viper.SetDefault("recommend.top_n", 500)
	viper.SetDefault("recommend.min_completed", 5)
	viper.SetDefault("state.dir", defaultStateDir())

	return types.ClientConfig{
		Services: types.ServiceConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("services.timeout"),
				UserAgent: viper.GetString("services.user_agent"),
			},
			AuthURL:   viper.GetString("services.auth_url"),
			SurveyURL: viper.GetString("services.survey_url"),
		},
		Search: types.SearchConfig{
			MaxResults: viper.GetInt("search.max_results"),
		},
		Recommend: types.RecommendConfig{
			TopN:         viper.GetInt("recommend.top_n"),
			MinCompleted: viper.GetInt("recommend.min_completed"),
		},
		State: types.StateConfig{
			Dir: viper.GetString("state.dir"),
		},
	}
}

func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".surveyshelf"
	}
	return filepath.Join(base, "surveyshelf")
}

// openStore opens the durable session store under the state directory.
func openStore(cfg types.ClientConfig) (*session.Store, error) {
	return session.NewStore(cfg.State.Dir)
}

// requireSession opens the store and loads the active session. Commands that
// need auth call this and fail with ErrNoSession's login hint otherwise.
func requireSession(cfg types.ClientConfig) (*session.Store, *session.Session, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	sess, err := store.Current()
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, sess, nil
}

// surveyClient builds the Survey Service client for the active session.
func surveyClient(cfg types.ClientConfig, sess *session.Session) *api.Client {
	return api.NewClient(cfg.Services, sess.Token)
}

// snapshotStore opens the session-scoped snapshot store next to the session
// database.
func snapshotStore(store *session.Store) (snapshot.Store, error) {
	return snapshot.NewFileStore(store.SnapshotDir())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
