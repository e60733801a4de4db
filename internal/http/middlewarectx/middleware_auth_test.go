package middlewarectx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/content-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/content-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/content-platform/internal/lib/sl"
	"github.com/magabrotheeeer/content-platform/internal/models"
)

// Mock for TokenParser
type TokenParserMock struct {
	mock.Mock
}

func (m *TokenParserMock) ParseToken(token string) (*jwt.CustomClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*jwt.CustomClaims)
	return claims, args.Error(1)
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		headerName string
		claims     *jwt.CustomClaims
		parseErr   error
		wantCaller *models.Caller
	}{
		{
			name: "no token",
		},
		{
			name:       "valid token",
			headerName: "X-Auth-Token",
			header:     "good",
			claims:     &jwt.CustomClaims{UserID: 7, Email: "e@example.com", Role: "editor"},
			wantCaller: &models.Caller{UserID: 7, Email: "e@example.com", Role: models.RoleEditor},
		},
		{
			name:       "lower-case header name",
			headerName: "x-auth-token",
			header:     "good",
			claims:     &jwt.CustomClaims{UserID: 8, Role: "user"},
			wantCaller: &models.Caller{UserID: 8, Role: models.RoleUser},
		},
		{
			name:       "invalid token is anonymous",
			headerName: "X-Auth-Token",
			header:     "bad",
			parseErr:   errors.New("signature is invalid"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := new(TokenParserMock)
			if tt.header != "" {
				parser.On("ParseToken", tt.header).Return(tt.claims, tt.parseErr).Once()
			}

			var (
				called bool
				caller models.Caller
				ok     bool
			)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				caller, ok = middlewarectx.CallerFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.headerName != "" {
				req.Header.Set(tt.headerName, tt.header)
			}
			rr := httptest.NewRecorder()

			middlewarectx.Identity(parser, sl.Discard())(next).ServeHTTP(rr, req)

			assert.True(t, called, "request is never rejected by the middleware")
			assert.Equal(t, http.StatusOK, rr.Code)
			if tt.wantCaller != nil {
				assert.True(t, ok)
				assert.Equal(t, *tt.wantCaller, caller)
			} else {
				assert.False(t, ok)
			}
			parser.AssertExpectations(t)
		})
	}
}
