package types

import "time"

// HTTPConfig holds shared HTTP settings used by the service clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "surveyshelf/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ServiceConfig holds the endpoints and HTTP settings for the remote
// collaborators.
type ServiceConfig struct {
	HTTPConfig `yaml:",inline"`

	// AuthURL is the base URL of the Auth Service.
	AuthURL string `json:"auth_url" yaml:"auth_url"`

	// SurveyURL is the base URL of the Survey Service.
	SurveyURL string `json:"survey_url" yaml:"survey_url"`
}

// SearchConfig holds settings for the search screen.
type SearchConfig struct {
	// MaxResults is the number of records requested per search (default 500).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// RecommendConfig holds settings for the recommendation screens.
type RecommendConfig struct {
	// TopN is the number of recommendations requested (default 500).
	TopN int `json:"top_n" yaml:"top_n"`

	// MinCompleted is how many completed papers unlock personalized
	// recommendations (default 5; the service enforces the same floor).
	MinCompleted int `json:"min_completed" yaml:"min_completed"`
}

// StateConfig holds local persistence settings.
type StateConfig struct {
	// Dir is the directory for the durable session database and the
	// session-scoped snapshot files (default: os.UserConfigDir()/surveyshelf).
	Dir string `json:"dir" yaml:"dir"`
}

// ClientConfig groups all configuration for the surveyshelf client.
type ClientConfig struct {
	Services  ServiceConfig   `json:"services" yaml:"services"`
	Search    SearchConfig    `json:"search" yaml:"search"`
	Recommend RecommendConfig `json:"recommend" yaml:"recommend"`
	State     StateConfig     `json:"state" yaml:"state"`
}
