package profiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/issueview/internal/types"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	d := NewDirectory()
	require.NoError(t, d.AddUser(0))
	require.NoError(t, d.AddUser(20))
	require.NoError(t, d.AddManagedProfile(0, 10, true))
	require.NoError(t, d.AddManagedProfile(0, 11, false))
	return d
}

func TestDirectoryGroup(t *testing.T) {
	d := newTestDirectory(t)

	g, err := d.Group(0)
	require.NoError(t, err)
	assert.Equal(t, types.UserProfileGroup{
		ParentUserID:          0,
		ManagedUserIDs:        []int{10, 11},
		RunningManagedUserIDs: []int{10},
	}, g)
	require.NoError(t, g.Validate())

	_, err = d.Group(10)
	assert.ErrorContains(t, err, "managed profile")
	_, err = d.Group(99)
	assert.ErrorContains(t, err, "unknown user")

	g, err = d.GroupOf(11)
	require.NoError(t, err)
	assert.Equal(t, 0, g.ParentUserID)
}

func TestDirectoryIsManagedProfile(t *testing.T) {
	d := newTestDirectory(t)
	assert.False(t, d.IsManagedProfile(0))
	assert.True(t, d.IsManagedProfile(10))
	assert.False(t, d.IsManagedProfile(99), "unknown users are not managed profiles")
}

func TestDirectorySetRunning(t *testing.T) {
	d := newTestDirectory(t)
	require.NoError(t, d.SetRunning(11, true))
	require.NoError(t, d.SetRunning(10, false))

	g, err := d.Group(0)
	require.NoError(t, err)
	assert.Equal(t, []int{11}, g.RunningManagedUserIDs)

	assert.Error(t, d.SetRunning(0, true), "full users have no running state")
}

func TestDirectoryAddErrors(t *testing.T) {
	d := newTestDirectory(t)
	assert.Error(t, d.AddUser(-1))
	assert.Error(t, d.AddUser(10), "managed profile cannot become a full user")
	assert.Error(t, d.AddManagedProfile(5, 12, true), "unknown parent")
	assert.Error(t, d.AddManagedProfile(0, 20, true), "full user cannot become a profile")
	assert.Error(t, d.AddManagedProfile(0, 10, true), "duplicate profile")
	assert.NoError(t, d.AddUser(0), "re-adding a user is a no-op")
}

func TestDirectoryRemove(t *testing.T) {
	d := newTestDirectory(t)

	assert.Equal(t, []int{11}, d.Remove(11))
	g, err := d.Group(0)
	require.NoError(t, err)
	assert.Equal(t, []int{10}, g.ManagedUserIDs)

	assert.ElementsMatch(t, []int{0, 10}, d.Remove(0))
	assert.False(t, d.IsManagedProfile(10))
	_, ok := d.ParentOf(0)
	assert.False(t, ok)

	assert.Nil(t, d.Remove(42))
}

func TestDirectoryGroups(t *testing.T) {
	d := newTestDirectory(t)
	groups := d.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, 0, groups[0].ParentUserID)
	assert.Equal(t, 20, groups[1].ParentUserID)
	assert.Empty(t, groups[1].ManagedUserIDs)
}

const sampleUsers = `
users:
  - id: 0
    profiles:
      - id: 10
        running: true
      - id: 11
  - id: 20
`

func TestLoadUsersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleUsers), 0o644))

	d, err := LoadUsersFile(path)
	require.NoError(t, err)

	g, err := d.Group(0)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 11}, g.ManagedUserIDs)
	assert.Equal(t, []int{10}, g.RunningManagedUserIDs)
	assert.Len(t, d.Groups(), 2)
}

func TestParseUsersErrors(t *testing.T) {
	_, err := ParseUsers([]byte("users: ["))
	assert.Error(t, err)

	_, err = ParseUsers([]byte("users:\n  - id: 0\n    profiles:\n      - id: 0\n"))
	assert.Error(t, err, "a user cannot be its own profile")
}
