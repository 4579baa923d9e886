package security_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"proofflow-backend/internal/security"
)

func TestPasswordHasher(t *testing.T) {
	hasher := security.NewPasswordHasher(bcrypt.MinCost)

	passwords := []string{"hunter22", "correct horse battery staple", "pässwörd", "    "}
	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		require.NoError(t, err)
		assert.NotEqual(t, password, hash)
		assert.True(t, strings.HasPrefix(hash, "$2a$"), "hash should be self-describing")

		assert.True(t, hasher.Verify(password, hash))
		assert.False(t, hasher.Verify("", hash))
		assert.False(t, hasher.Verify(password+"x", hash))
		assert.False(t, hasher.Verify(password[:len(password)-1], hash))
	}

	t.Run("One character different", func(t *testing.T) {
		hash, err := hasher.Hash("secret1")
		require.NoError(t, err)
		assert.False(t, hasher.Verify("secret2", hash))
		assert.False(t, hasher.Verify("Secret1", hash))
	})

	t.Run("Salted", func(t *testing.T) {
		a, err := hasher.Hash("same")
		require.NoError(t, err)
		b, err := hasher.Hash("same")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("Malformed hash is a mismatch", func(t *testing.T) {
		assert.False(t, hasher.Verify("secret", ""))
		assert.False(t, hasher.Verify("secret", "not-a-bcrypt-hash"))
		assert.False(t, hasher.Verify("secret", "$2a$10$truncated"))
	})

	t.Run("Too long", func(t *testing.T) {
		_, err := hasher.Hash(strings.Repeat("a", 73))
		assert.ErrorIs(t, err, security.ErrPasswordTooLong)
	})

	t.Run("Invalid cost falls back to default", func(t *testing.T) {
		hash, err := security.NewPasswordHasher(99).Hash("secret")
		require.NoError(t, err)
		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.DefaultCost, cost)
	})
}

func TestAdminTokenMatches(t *testing.T) {
	assert.True(t, security.AdminTokenMatches("s3cret", "s3cret"))
	assert.False(t, security.AdminTokenMatches("s3cre", "s3cret"))
	assert.False(t, security.AdminTokenMatches("", "s3cret"))
	assert.False(t, security.AdminTokenMatches("", ""))
}

func TestBearerCredential(t *testing.T) {
	assert.Equal(t, security.CredentialNone, security.BearerCredential("").Kind)
	cred := security.BearerCredential("abc")
	assert.Equal(t, security.CredentialBearer, cred.Kind)
	assert.Equal(t, "abc", cred.Token)
	assert.Equal(t, "bearer", cred.Kind.String())
}
