// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api implements HTTP clients for the Survey Service and the Auth
// Service. Both are thin pass-throughs: request building, bearer-token
// injection, and translation of the services' status codes into the sentinel
// errors in errors.go.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/unisurveyal/surveyshelf/internal/httputil"
	"github.com/unisurveyal/surveyshelf/pkg/types"
)

// Client talks to the Survey Service. Every call carries the bearer token
// obtained at login.
type Client struct {
	BaseURL   string
	Token     string
	UserAgent string
	HTTP      *http.Client
}

// NewClient builds a Survey Service client from config and a session token.
func NewClient(cfg types.ServiceConfig, token string) *Client {
	return &Client{
		BaseURL:   cfg.SurveyURL,
		Token:     token,
		UserAgent: cfg.UserAgent,
		HTTP:      &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqURL := c.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return fmt.Errorf("survey service request: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body)
		return err
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing survey service response: %w", err)
	}
	return nil
}

// statusError maps the service's status codes onto the error taxonomy.
func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusBadRequest:
		return ErrDuplicate
	default:
		return fmt.Errorf("survey service returned HTTP %d", code)
	}
}

// Search queries the service for survey papers matching q. OriginalIndex is
// assigned from the response order so relevance sort can reproduce it.
func (c *Client) Search(ctx context.Context, q string, maxResults int) ([]types.SurveyRecord, error) {
	if maxResults <= 0 {
		maxResults = 500
	}
	params := url.Values{
		"q":           {q},
		"max_results": {fmt.Sprintf("%d", maxResults)},
	}

	var records []types.SurveyRecord
	if err := c.do(ctx, http.MethodGet, "/search", params, nil, &records); err != nil {
		return nil, err
	}
	for i := range records {
		records[i].OriginalIndex = i
	}
	return records, nil
}

// recommendation is the service's {survey, similarity_score} pair.
type recommendation struct {
	Survey          types.SurveyRecord `json:"survey"`
	SimilarityScore *float64           `json:"similarity_score"`
}

// RecommendPersonalized returns TF-IDF similarity-ranked recommendations.
// The service rejects the call until enough papers are completed; that
// rejection surfaces as ErrPersonalizedUnavailable.
func (c *Client) RecommendPersonalized(ctx context.Context, topN int) ([]types.SurveyRecord, error) {
	if topN <= 0 {
		topN = 500
	}
	params := url.Values{"top_n": {fmt.Sprintf("%d", topN)}}

	var recs []recommendation
	err := c.do(ctx, http.MethodPost, "/recommend/personalized", params, struct{}{}, &recs)
	if err != nil {
		// A 400 here is the completed-papers floor, not a duplicate.
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrPersonalizedUnavailable
		}
		return nil, err
	}

	records := make([]types.SurveyRecord, len(recs))
	for i, rec := range recs {
		records[i] = rec.Survey
		records[i].SimilarityScore = rec.SimilarityScore
		records[i].OriginalIndex = i
	}
	return records, nil
}

// RecommendInitial returns interest-field-based recommendations for users
// below the personalized floor.
func (c *Client) RecommendInitial(ctx context.Context, fields []string) ([]types.SurveyRecord, error) {
	body := struct {
		Fields []string `json:"fields"`
	}{Fields: fields}

	var records []types.SurveyRecord
	if err := c.do(ctx, http.MethodPost, "/recommend/initial", nil, body, &records); err != nil {
		return nil, err
	}
	for i := range records {
		records[i].OriginalIndex = i
	}
	return records, nil
}

// ListLibrary returns the user's library, each association embedding its
// survey record.
func (c *Client) ListLibrary(ctx context.Context) ([]types.UserSurveyAssociation, error) {
	var assocs []types.UserSurveyAssociation
	if err := c.do(ctx, http.MethodGet, "/surveys/user", nil, nil, &assocs); err != nil {
		return nil, err
	}
	return assocs, nil
}

// GetSurvey fetches one record plus the user's association when present.
func (c *Client) GetSurvey(ctx context.Context, surveyID int) (*types.SurveyRecord, *types.UserSurveyAssociation, error) {
	var out struct {
		Survey     *types.SurveyRecord          `json:"survey"`
		UserSurvey *types.UserSurveyAssociation `json:"user_survey"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/surveys/%d", surveyID), nil, nil, &out); err != nil {
		return nil, nil, err
	}
	return out.Survey, out.UserSurvey, nil
}

// AddToLibrary saves a paper with the given workflow status. A paper already
// in the library comes back as ErrDuplicate.
func (c *Client) AddToLibrary(ctx context.Context, surveyID int, status types.SurveyStatus) (*types.UserSurveyAssociation, error) {
	body := struct {
		SurveyID int                `json:"survey_id"`
		Status   types.SurveyStatus `json:"status"`
	}{SurveyID: surveyID, Status: status}

	var assoc types.UserSurveyAssociation
	if err := c.do(ctx, http.MethodPost, "/surveys/add", nil, body, &assoc); err != nil {
		return nil, err
	}
	return &assoc, nil
}

// RemoveFromLibrary deletes the user's association for a survey. The service
// resolves the association from the survey id; a paper already gone comes
// back as ErrNotFound.
func (c *Client) RemoveFromLibrary(ctx context.Context, surveyID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/surveys/%d", surveyID), nil, nil, nil)
}

// ToggleStar flips the starred flag on an association.
func (c *Client) ToggleStar(ctx context.Context, associationID int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/surveys/%d/star", associationID), nil, struct{}{}, nil)
}

// SetStatus moves an association to a new workflow status.
func (c *Client) SetStatus(ctx context.Context, associationID int, status types.SurveyStatus) error {
	params := url.Values{"new_status": {string(status)}}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/surveys/%d/status", associationID), params, struct{}{}, nil)
}

// GetStats returns the library counts.
func (c *Client) GetStats(ctx context.Context) (types.UserStats, error) {
	var stats types.UserStats
	if err := c.do(ctx, http.MethodGet, "/user/stats", nil, nil, &stats); err != nil {
		return types.UserStats{}, err
	}
	return stats, nil
}

// GetActivityStreak returns the 365-day activity series and total active days.
func (c *Client) GetActivityStreak(ctx context.Context) (types.ActivityStreak, error) {
	var s types.ActivityStreak
	if err := c.do(ctx, http.MethodGet, "/activity/streak", nil, nil, &s); err != nil {
		return types.ActivityStreak{}, err
	}
	return s, nil
}

// RecordActivity pings the service that the user opened a paper. Failures are
// swallowed: the ping is fire-and-forget and never blocks the screen.
func (c *Client) RecordActivity(ctx context.Context) {
	_ = c.do(ctx, http.MethodPost, "/activity/record", nil, struct{}{}, nil)
}
