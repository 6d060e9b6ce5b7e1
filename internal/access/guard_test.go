package access_test

import (
	"testing"

	"github.com/serroba/qrshare/internal/access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGuard_Verify(t *testing.T) {
	t.Run("disabled guard accepts anything", func(t *testing.T) {
		g := access.NewGuard("")

		assert.False(t, g.Enabled())
		assert.NoError(t, g.Verify(""))
		assert.NoError(t, g.Verify("whatever"))
	})

	t.Run("plaintext guard requires an exact match", func(t *testing.T) {
		g := access.NewGuard("s3cret")

		assert.True(t, g.Enabled())
		assert.NoError(t, g.Verify("s3cret"))
		assert.ErrorIs(t, g.Verify(""), access.ErrUnauthorized)
		assert.ErrorIs(t, g.Verify("S3cret"), access.ErrUnauthorized)
		assert.ErrorIs(t, g.Verify("s3cret "), access.ErrUnauthorized)
	})

	t.Run("hash guard compares with bcrypt", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
		require.NoError(t, err)

		g, err := access.NewHashGuard(string(hash))
		require.NoError(t, err)

		assert.True(t, g.Enabled())
		assert.NoError(t, g.Verify("s3cret"))
		assert.ErrorIs(t, g.Verify("nope"), access.ErrUnauthorized)
	})

	t.Run("rejects a malformed hash", func(t *testing.T) {
		_, err := access.NewHashGuard("not-a-hash")

		assert.Error(t, err)
	})
}
