package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daylog/daylog/server/internal/store/storetest"
)

func TestSQLiteStoreConformance(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "daylog.db"))
	require.NoError(t, err)
	storetest.RunStoreTests(t, s)
}
