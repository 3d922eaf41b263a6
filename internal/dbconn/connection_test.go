package dbconn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformForKnownDialects(t *testing.T) {
	for _, dialect := range []string{"mysql", "mariadb", "postgresql", "sqlite"} {
		p, err := platformFor(dialect)
		require.NoError(t, err)
		assert.NotNil(t, p)
	}
}

func TestPlatformForUnknownDialect(t *testing.T) {
	_, err := platformFor("oracle")
	assert.Error(t, err)
}

func TestOpenRejectsUnparsableDSN(t *testing.T) {
	_, err := Open("not-a-dsn")
	assert.Error(t, err)
}

func TestOpenSQLiteInMemory(t *testing.T) {
	c, err := Open("sqlite://:memory:")
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "sqlite", c.Dialect())
	assert.NotNil(t, c.SchemaManager())
	assert.NotNil(t, c.Platform())
}
