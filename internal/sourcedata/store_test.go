package sourcedata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/issueview/internal/types"
)

func TestStoreGetSet(t *testing.T) {
	s := NewStore()
	key := types.KeyOf("wifi", 0)

	_, ok := s.Get(key)
	assert.False(t, ok, "absent key must report not found")

	data := &types.SourceData{Issues: []types.Issue{{ID: "a", Title: "Open network", Severity: types.SeverityRecommendation}}}
	require.NoError(t, s.Set(key, data))

	got, ok := s.Get(key)
	require.True(t, ok)
	require.Len(t, got.Issues, 1)

	// The store keeps its own copy.
	data.Issues[0].Title = "mutated"
	got, _ = s.Get(key)
	assert.Equal(t, "Open network", got.Issues[0].Title)

	require.NoError(t, s.Set(key, nil))
	_, ok = s.Get(key)
	assert.False(t, ok, "nil data removes the entry")
}

func TestStoreRejectsInvalidData(t *testing.T) {
	s := NewStore()
	err := s.Set(types.KeyOf("wifi", 0), &types.SourceData{Issues: []types.Issue{{ID: "a"}}})
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestStoreRemoveUserAndKeys(t *testing.T) {
	s := NewStore()
	issue := types.Issue{ID: "a", Title: "t"}
	for _, key := range []types.SourceKey{
		types.KeyOf("b", 10), types.KeyOf("a", 10), types.KeyOf("a", 0),
	} {
		require.NoError(t, s.Set(key, &types.SourceData{Issues: []types.Issue{issue}}))
	}

	assert.Equal(t, []types.SourceKey{
		types.KeyOf("a", 0), types.KeyOf("a", 10), types.KeyOf("b", 10),
	}, s.Keys())

	s.RemoveUser(10)
	assert.Equal(t, []types.SourceKey{types.KeyOf("a", 0)}, s.Keys())

	s.Remove(types.KeyOf("a", 0))
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.Set(types.KeyOf("a", 0), &types.SourceData{Issues: []types.Issue{issue}}))
	s.Clear()
	assert.Equal(t, 0, s.Len())
}
