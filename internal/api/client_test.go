// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unisurveyal/surveyshelf/pkg/types"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		BaseURL:   srv.URL,
		Token:     "tok-test",
		UserAgent: "surveyshelf/test",
		HTTP:      srv.Client(),
	}
}

func TestSearchAssignsOriginalIndex(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode([]types.SurveyRecord{
			{ID: 11, Title: "First"},
			{ID: 22, Title: "Second"},
			{ID: 33, Title: "Third"},
		})
	}))
	defer srv.Close()

	records, err := newTestClient(srv).Search(context.Background(), "transformers", 100)
	require.NoError(t, err)

	assert.Equal(t, "/search", gotPath)
	assert.Equal(t, "Bearer tok-test", gotAuth)
	assert.Equal(t, []string{"transformers"}, gotQuery["q"])
	assert.Equal(t, []string{"100"}, gotQuery["max_results"])

	require.Len(t, records, 3)
	for i, r := range records {
		assert.Equal(t, i, r.OriginalIndex)
	}
}

func TestStatusErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"duplicate", http.StatusBadRequest, ErrDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer srv.Close()

			_, err := newTestClient(srv).ListLibrary(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), "q", 10)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrDuplicate)
}

func TestRecommendPersonalizedFlattens(t *testing.T) {
	score := 0.92
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/recommend/personalized", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("top_n"))
		json.NewEncoder(w).Encode([]recommendation{
			{Survey: types.SurveyRecord{ID: 5, Title: "Best Match"}, SimilarityScore: &score},
			{Survey: types.SurveyRecord{ID: 6, Title: "Second Match"}},
		})
	}))
	defer srv.Close()

	records, err := newTestClient(srv).RecommendPersonalized(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 5, records[0].ID)
	require.NotNil(t, records[0].SimilarityScore)
	assert.Equal(t, 0.92, *records[0].SimilarityScore)
	assert.Equal(t, 0, records[0].OriginalIndex)
	assert.Nil(t, records[1].SimilarityScore)
	assert.Equal(t, 1, records[1].OriginalIndex)
}

func TestRecommendPersonalizedFloor(t *testing.T) {
	// The service answers 400 below the completed-papers floor; that must not
	// surface as a duplicate.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).RecommendPersonalized(context.Background(), 10)
	assert.ErrorIs(t, err, ErrPersonalizedUnavailable)
	assert.NotErrorIs(t, err, ErrDuplicate)
}

func TestAddToLibrarySendsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/surveys/add", r.URL.Path)

		var body struct {
			SurveyID int                `json:"survey_id"`
			Status   types.SurveyStatus `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 42, body.SurveyID)
		assert.Equal(t, types.StatusRecommended, body.Status)

		json.NewEncoder(w).Encode(types.UserSurveyAssociation{ID: 7, SurveyID: 42, Status: body.Status})
	}))
	defer srv.Close()

	assoc, err := newTestClient(srv).AddToLibrary(context.Background(), 42, types.StatusRecommended)
	require.NoError(t, err)
	assert.Equal(t, 7, assoc.ID)
	assert.Equal(t, 42, assoc.SurveyID)
}

func TestRemoveFromLibraryUsesSurveyID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/surveys/42", r.URL.Path)
	}))
	defer srv.Close()

	require.NoError(t, newTestClient(srv).RemoveFromLibrary(context.Background(), 42))
}

func TestSetStatusQueryParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/surveys/9/status", r.URL.Path)
		assert.Equal(t, "completed", r.URL.Query().Get("new_status"))
	}))
	defer srv.Close()

	require.NoError(t, newTestClient(srv).SetStatus(context.Background(), 9, types.StatusCompleted))
}

func TestGetActivityStreak(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activity/streak", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"streak_data": []types.ActivityDay{
				{Date: "2026-08-28", Count: 2},
				{Date: "2026-08-29", Count: 0},
			},
			"total_days_active": 14,
		})
	}))
	defer srv.Close()

	activity, err := newTestClient(srv).GetActivityStreak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 14, activity.TotalDaysActive)
	require.Len(t, activity.Days, 2)
	assert.Equal(t, "2026-08-28", activity.Days[0].Date)
}

func TestAuthLoginRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "reader", body.Username)

		json.NewEncoder(w).Encode(Credentials{
			AccessToken: "tok-new",
			TokenType:   "bearer",
			User:        types.User{ID: 3, Username: "reader"},
		})
	}))
	defer srv.Close()

	auth := &AuthClient{BaseURL: srv.URL, UserAgent: "surveyshelf/test", HTTP: srv.Client()}
	creds, err := auth.Login(context.Background(), "reader", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-new", creds.AccessToken)
	assert.Equal(t, "reader", creds.User.Username)
}

func TestAuthBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	auth := &AuthClient{BaseURL: srv.URL, UserAgent: "surveyshelf/test", HTTP: srv.Client()}
	_, err := auth.Login(context.Background(), "reader", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
