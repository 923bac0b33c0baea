// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the surveyshelf client:
// survey records returned by the Survey Service, the user's library
// associations, activity series, and per-stage configuration.
package types

import "time"

// SurveyStatus tracks a paper's place in the reading workflow.
type SurveyStatus string

const (
	StatusSaved       SurveyStatus = "saved"
	StatusRecommended SurveyStatus = "recommended"
	StatusReading     SurveyStatus = "reading"
	StatusCompleted   SurveyStatus = "completed"
)

// SurveyRecord is one paper's metadata as returned by the Survey Service.
// Records are immutable: a new fetch replaces the working set wholesale.
type SurveyRecord struct {
	// ID is the Survey Service's numeric identifier for the paper.
	ID int `json:"id" yaml:"id"`

	// ArxivID is the source identifier (e.g. "2301.07041").
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Keywords is a comma-joined tag string extracted by the service.
	Keywords string `json:"keywords" yaml:"keywords"`

	// Authors is the comma-joined author list in source order.
	Authors string `json:"authors" yaml:"authors"`

	// PublishedDate is the publication date in "2006-01-02" form. Kept as a
	// string because the service may return values that do not parse; sorting
	// treats those as the oldest possible date.
	PublishedDate string `json:"published_date" yaml:"published_date"`

	// PDFURL points at the paper's PDF on arXiv.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Categories is a comma-joined arXiv category string (e.g. "cs.LG, cs.AI").
	Categories string `json:"categories" yaml:"categories"`

	// ViewCount is how many times the paper has been opened, service-wide.
	ViewCount int `json:"view_count" yaml:"view_count"`

	// SimilarityScore is present only on personalized recommendation results.
	SimilarityScore *float64 `json:"similarity_score,omitempty" yaml:"similarity_score,omitempty"`

	// OriginalIndex is the rank assigned at fetch time, reflecting the order
	// the service returned. Relevance sort reproduces this order exactly.
	OriginalIndex int `json:"original_index" yaml:"original_index"`
}

// PublishedTime parses PublishedDate. ok is false when the value is missing
// or malformed.
func (r SurveyRecord) PublishedTime() (t time.Time, ok bool) {
	if r.PublishedDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", r.PublishedDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// UserSurveyAssociation is the relationship between the user and one paper in
// their library. The remote library is the source of truth; local copies are
// a cache reconciled optimistically.
type UserSurveyAssociation struct {
	// ID is the association's own identifier, distinct from the survey ID.
	ID int `json:"id" yaml:"id"`

	// SurveyID identifies the paper this association refers to.
	SurveyID int `json:"survey_id" yaml:"survey_id"`

	// Status is the reading-workflow state.
	Status SurveyStatus `json:"status" yaml:"status"`

	// IsStarred marks the paper as a favorite.
	IsStarred bool `json:"is_starred" yaml:"is_starred"`

	// AddedAt is when the paper entered the library.
	AddedAt time.Time `json:"added_at" yaml:"added_at"`

	// CompletedAt is set when the status reaches completed.
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`

	// Survey embeds the paper's record when the service returns it inline.
	Survey *SurveyRecord `json:"survey,omitempty" yaml:"survey,omitempty"`
}

// UserStats holds the library counts the dashboard and the recommendation
// gate read.
type UserStats struct {
	SavedSurveys       int  `json:"saved_surveys"`
	CompletedSurveys   int  `json:"completed_surveys"`
	RecommendedSurveys int  `json:"recommended_surveys"`
	CanUsePersonalized bool `json:"can_use_personalized"`
}

// User is the identity the Auth Service returns at login.
type User struct {
	ID             int    `json:"id" yaml:"id"`
	Username       string `json:"username" yaml:"username"`
	Email          string `json:"email" yaml:"email"`
	Nickname       string `json:"nickname" yaml:"nickname"`
	InterestFields string `json:"interest_fields" yaml:"interest_fields"`
}
