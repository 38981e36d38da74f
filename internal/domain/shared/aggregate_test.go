package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseAggregateRoot_PersistedVersion(t *testing.T) {
	agg := NewBaseAggregateRoot()

	// Never synced: reports the current version
	assert.Equal(t, 1, agg.PersistedVersion())

	agg.SyncPersistedVersion()
	assert.Equal(t, 1, agg.PersistedVersion())

	// Several mutations between loads advance Version past the snapshot
	agg.IncrementVersion()
	agg.IncrementVersion()
	assert.Equal(t, 3, agg.GetVersion())
	assert.Equal(t, 1, agg.PersistedVersion())

	// A successful save re-syncs
	agg.SyncPersistedVersion()
	assert.Equal(t, 3, agg.PersistedVersion())
}
