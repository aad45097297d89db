package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/nfe-emissor/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "maria", "nfe-emissor-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, username, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "maria", username)
}

func TestParse_ExpiredToken(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "maria", "nfe-emissor-test", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado deve falhar")
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "maria", "nfe-emissor-test", 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("outro-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_RequiresSecretAndUser(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, "maria", "x", 60)
	assert.Error(t, err)

	tok, err := pkgjwt.Generate(testSecret, "", "maria", "x", 60)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token sem user_id é rejeitado")
}
