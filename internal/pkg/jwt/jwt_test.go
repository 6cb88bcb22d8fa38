package jwt

import (
	"testing"

	"folhacred/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret        = "test-secret"
	testRefreshSecret = "test-refresh-secret"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "maria@teste.com", domain.TipoFuncionario, testSecret, 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "maria@teste.com", claims.Email)
	assert.Equal(t, domain.TipoFuncionario, claims.Tipo)
	assert.Equal(t, "folhacred", claims.Issuer)
	assert.Equal(t, "7", claims.Subject)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(7, "maria@teste.com", domain.TipoFuncionario, testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken(7, "maria@teste.com", domain.TipoFuncionario, testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	_, err := ValidateAccessToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAccessToken_InvalidTipo(t *testing.T) {
	token, err := GenerateAccessToken(7, "maria@teste.com", domain.Tipo("admin"), testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(3, domain.TipoEmpresa, "token-id-1", testRefreshSecret, 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testRefreshSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, domain.TipoEmpresa, claims.Tipo)
	assert.Equal(t, "token-id-1", claims.TokenID)
}

func TestRefreshToken_NotValidAsAccess(t *testing.T) {
	// Access and refresh tokens are signed with different secrets.
	token, err := GenerateRefreshToken(3, domain.TipoEmpresa, "token-id-1", testRefreshSecret, 7)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.Error(t, err)
}
