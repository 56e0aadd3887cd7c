package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemoryWithFixtures(t *testing.T) {
	p := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
accounts:
  - email: vet@example.com
    category: veterinarian
    links:
      - provider: kakao
        provider_user_id: "1"
`), 0o600))

	s, err := Open(context.Background(), Config{Driver: "memory", FixturesPath: p})
	require.NoError(t, err)
	defer s.Close()

	acc, err := s.SocialLinks().FindAccountBySocialLink(context.Background(), "kakao", "1")
	require.NoError(t, err)
	assert.Equal(t, "vet@example.com", acc.Email)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "mongo"})
	assert.ErrorContains(t, err, "unsupported driver")
}
