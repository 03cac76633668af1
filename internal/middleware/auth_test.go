package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkoroteev/recipecart/internal/apperr"
	"github.com/dkoroteev/recipecart/internal/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	claims *auth.Claims
	err    error
}

func (f *fakeVerifier) Verify(string) (*auth.Claims, error) {
	return f.claims, f.err
}

func claimsFor(subject string) *auth.Claims {
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
		Username:         "alice",
		Email:            "alice@x.com",
	}
}

func TestBearerAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   *fakeVerifier
		wantStatus int
		wantUserID int64
	}{
		{
			name:       "valid token",
			header:     "Bearer good",
			verifier:   &fakeVerifier{claims: claimsFor("11")},
			wantStatus: http.StatusOK,
			wantUserID: 11,
		},
		{
			name:       "missing header",
			header:     "",
			verifier:   &fakeVerifier{claims: claimsFor("11")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic good",
			verifier:   &fakeVerifier{claims: claimsFor("11")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			header:     "Bearer ",
			verifier:   &fakeVerifier{claims: claimsFor("11")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			header:     "Bearer bad",
			verifier:   &fakeVerifier{err: apperr.ErrInvalidToken},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			header:     "Bearer old",
			verifier:   &fakeVerifier{err: apperr.ErrTokenExpired},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-numeric subject",
			header:     "Bearer odd",
			verifier:   &fakeVerifier{claims: claimsFor("not-a-number")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			var reached bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				id, ok := GetUserIDFromContext(r.Context())
				require.True(t, ok)
				gotUserID = id
			})

			req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			BearerAuth(tt.verifier)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, reached)
				assert.Equal(t, tt.wantUserID, gotUserID)
			} else {
				assert.False(t, reached)
			}
		})
	}
}

func TestGetUserIDFromContext_Unset(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserIDFromContext(req.Context())
	assert.False(t, ok)
}
