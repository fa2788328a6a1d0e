// Package profiles tracks users, their managed profiles and which managed
// profiles are running.
package profiles

import (
	"fmt"
	"maps"
	"slices"

	"github.com/steveyegge/issueview/internal/types"
)

type profile struct {
	parent  int
	running bool
}

// Directory is an in-memory profile directory.
//
// Directory is not safe for concurrent use; the owning service serializes access.
type Directory struct {
	parents map[int][]int // parent -> managed profile ids, in insertion order
	managed map[int]*profile
}

// NewDirectory creates an empty Directory.
func NewDirectory() *Directory {
	return &Directory{
		parents: make(map[int][]int),
		managed: make(map[int]*profile),
	}
}

// AddUser registers a full (non-managed) user. Adding an existing user is a no-op.
func (d *Directory) AddUser(userID int) error {
	if userID < 0 {
		return fmt.Errorf("user id cannot be negative (got %d)", userID)
	}
	if _, ok := d.managed[userID]; ok {
		return fmt.Errorf("user %d is already a managed profile", userID)
	}
	if _, ok := d.parents[userID]; !ok {
		d.parents[userID] = nil
	}
	return nil
}

// AddManagedProfile registers userID as a managed profile of parent.
func (d *Directory) AddManagedProfile(parent, userID int, running bool) error {
	if _, ok := d.parents[parent]; !ok {
		return fmt.Errorf("unknown parent user %d", parent)
	}
	if userID < 0 {
		return fmt.Errorf("user id cannot be negative (got %d)", userID)
	}
	if _, ok := d.parents[userID]; ok {
		return fmt.Errorf("user %d is a full user", userID)
	}
	if _, ok := d.managed[userID]; ok {
		return fmt.Errorf("managed profile %d already exists", userID)
	}
	d.managed[userID] = &profile{parent: parent, running: running}
	d.parents[parent] = append(d.parents[parent], userID)
	return nil
}

// IsManagedProfile reports whether userID is a managed profile.
func (d *Directory) IsManagedProfile(userID int) bool {
	_, ok := d.managed[userID]
	return ok
}

// SetRunning records whether a managed profile is running.
func (d *Directory) SetRunning(userID int, running bool) error {
	p, ok := d.managed[userID]
	if !ok {
		return fmt.Errorf("user %d is not a managed profile", userID)
	}
	p.running = running
	return nil
}

// ParentOf returns the parent of userID. Full users are their own parent.
func (d *Directory) ParentOf(userID int) (int, bool) {
	if p, ok := d.managed[userID]; ok {
		return p.parent, true
	}
	if _, ok := d.parents[userID]; ok {
		return userID, true
	}
	return 0, false
}

// Remove deletes a user. Removing a full user also removes its managed profiles.
// It returns every removed user id.
func (d *Directory) Remove(userID int) []int {
	if p, ok := d.managed[userID]; ok {
		delete(d.managed, userID)
		d.parents[p.parent] = slices.DeleteFunc(d.parents[p.parent], func(id int) bool { return id == userID })
		return []int{userID}
	}
	children, ok := d.parents[userID]
	if !ok {
		return nil
	}
	removed := append([]int{userID}, children...)
	for _, id := range children {
		delete(d.managed, id)
	}
	delete(d.parents, userID)
	return removed
}

// Group builds the profile group of a full user.
func (d *Directory) Group(parent int) (types.UserProfileGroup, error) {
	children, ok := d.parents[parent]
	if !ok {
		if d.IsManagedProfile(parent) {
			return types.UserProfileGroup{}, fmt.Errorf("user %d is a managed profile, not a parent", parent)
		}
		return types.UserProfileGroup{}, fmt.Errorf("unknown user %d", parent)
	}
	g := types.UserProfileGroup{
		ParentUserID:          parent,
		ManagedUserIDs:        slices.Clone(children),
		RunningManagedUserIDs: []int{},
	}
	for _, id := range children {
		if d.managed[id].running {
			g.RunningManagedUserIDs = append(g.RunningManagedUserIDs, id)
		}
	}
	return g, nil
}

// GroupOf builds the profile group that contains userID.
func (d *Directory) GroupOf(userID int) (types.UserProfileGroup, error) {
	parent, ok := d.ParentOf(userID)
	if !ok {
		return types.UserProfileGroup{}, fmt.Errorf("unknown user %d", userID)
	}
	return d.Group(parent)
}

// Groups returns the profile group of every full user, ordered by parent id.
func (d *Directory) Groups() []types.UserProfileGroup {
	parents := slices.Sorted(maps.Keys(d.parents))
	groups := make([]types.UserProfileGroup, 0, len(parents))
	for _, parent := range parents {
		g, _ := d.Group(parent)
		groups = append(groups, g)
	}
	return groups
}
