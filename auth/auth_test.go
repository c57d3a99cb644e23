package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRefreshTokenIsUnique(t *testing.T) {
	a, err := generateRefreshToken()
	require.NoError(t, err)
	b, err := generateRefreshToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestHashTokenIsDeterministicAndOpaque(t *testing.T) {
	token := "some-refresh-token"

	assert.Equal(t, hashToken(token), hashToken(token))
	assert.NotEqual(t, token, hashToken(token))
	assert.NotEqual(t, hashToken(token), hashToken(token+"x"))
}

func TestRefreshTokenRequiresToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/refresh", strings.NewReader(`{}`))
	RefreshToken(rec, req, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshTokenRejectsMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/refresh", strings.NewReader("not json"))
	RefreshToken(rec, req, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
