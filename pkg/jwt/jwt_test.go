package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratera/pos-api/pkg/jwt"
)

const secret = "unit-test-secret-0123456789abcdef"

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate(secret, "u-42", "adwoa", "manager", "pos-api", 30)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, username, role, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "u-42", userID)
	assert.Equal(t, "adwoa", username)
	assert.Equal(t, "manager", role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := jwt.Generate(secret, "u-42", "adwoa", "manager", "pos-api", 30)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("a-completely-different-secret-key", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := jwt.Generate(secret, "u-42", "adwoa", "manager", "pos-api", -5)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := jwt.Generate("", "u-42", "adwoa", "manager", "pos-api", 30)
	assert.Error(t, err)
}
