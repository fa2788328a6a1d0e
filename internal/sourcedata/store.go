package sourcedata

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/steveyegge/issueview/internal/types"
)

// Store holds the last data each source reported for each user.
//
// Store is not safe for concurrent use; the owning service serializes access.
type Store struct {
	data map[types.SourceKey]*types.SourceData
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{data: make(map[types.SourceKey]*types.SourceData)}
}

// Get returns the last data reported for key, if any.
func (s *Store) Get(key types.SourceKey) (*types.SourceData, bool) {
	d, ok := s.data[key]
	return d, ok
}

// Set replaces the data reported for key. A nil data removes the entry.
// The data is validated and copied.
func (s *Store) Set(key types.SourceKey, data *types.SourceData) error {
	if data == nil {
		delete(s.data, key)
		return nil
	}
	if err := data.Validate(); err != nil {
		return fmt.Errorf("invalid data for %s: %w", key, err)
	}
	s.data[key] = &types.SourceData{Issues: slices.Clone(data.Issues)}
	return nil
}

// Remove drops the data reported for key.
func (s *Store) Remove(key types.SourceKey) {
	delete(s.data, key)
}

// RemoveUser drops all data reported for userID.
func (s *Store) RemoveUser(userID int) {
	maps.DeleteFunc(s.data, func(k types.SourceKey, _ *types.SourceData) bool {
		return k.UserID == userID
	})
}

// Clear drops all data.
func (s *Store) Clear() {
	clear(s.data)
}

// Len returns the number of stored reports.
func (s *Store) Len() int {
	return len(s.data)
}

// Keys returns every stored key ordered by user then source id.
func (s *Store) Keys() []types.SourceKey {
	keys := slices.Collect(maps.Keys(s.data))
	slices.SortFunc(keys, func(a, b types.SourceKey) int {
		return cmp.Or(cmp.Compare(a.UserID, b.UserID), cmp.Compare(a.SourceID, b.SourceID))
	})
	return keys
}
