package schema

import (
	"path/filepath"
	"testing"

	"pharmacy-manager/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent_FreshStore(t *testing.T) {
	st, err := store.Open(store.Config{Driver: store.DriverSQLite, Path: ":memory:"}, Current())
	require.NoError(t, err)
	defer st.Close()

	assert.Equal(t, 4, st.Version())
	assert.Equal(t, []string{
		"batches",
		"categories",
		"orders",
		"products",
		"purchase_orders",
		"sequences",
		"suppliers",
	}, st.Collections())
}

func TestCurrent_SequenceSeeds(t *testing.T) {
	st, err := store.Open(store.Config{Driver: store.DriverSQLite, Path: ":memory:"}, Current())
	require.NoError(t, err)
	defer st.Close()

	for name, value := range seeds {
		seq, err := store.Get[store.Sequence](st, name)
		require.NoError(t, err, name)
		assert.Equal(t, value, seq.Value, name)
	}
}

func TestCurrent_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pharmacy.db")
	cfg := store.Config{Driver: store.DriverSQLite, Path: path}

	st, err := store.Open(cfg, Current())
	require.NoError(t, err)

	// Consume a code so the sequence row diverges from its seed.
	code, err := st.NextCode(SeqProductCode)
	require.NoError(t, err)
	assert.Equal(t, "001001", code)
	require.NoError(t, st.Close())

	st, err = store.Open(cfg, Current())
	require.NoError(t, err)
	defer st.Close()

	assert.Equal(t, 4, st.Version())
	// Re-running the seed step must not reset the advanced sequence.
	seq, err := store.Get[store.Sequence](st, SeqProductCode)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), seq.Value)
}
