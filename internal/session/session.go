// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the authenticated session: the bearer token and the
// identity behind it, persisted durably so the CLI stays logged in across
// invocations. The session object is created at login, passed explicitly to
// everything that needs the token or identity, and torn down at logout.
// There is no ambient global auth state.
package session

import (
	"strings"

	"github.com/unisurveyal/surveyshelf/pkg/types"
)

// Session is the live auth state for one logged-in user.
type Session struct {
	// Token is the bearer token every Survey Service call carries.
	Token string

	// User is the identity the Auth Service returned.
	User types.User
}

// Interests splits the user's comma-joined interest fields into trimmed
// phrases, dropping empties. This list drives the interest filter and the
// initial recommendation request.
func (s *Session) Interests() []string {
	if s == nil || s.User.InterestFields == "" {
		return nil
	}
	parts := strings.Split(s.User.InterestFields, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
