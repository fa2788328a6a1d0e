package issues

import (
	"fmt"
	"io"
)

// Clear drops every computed list.
func (r *Repository) Clear() {
	clear(r.byUser)
}

// Dump writes every user and its issues to w, users in ascending order.
func (r *Repository) Dump(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "ISSUE REPOSITORY"); err != nil {
		return err
	}
	for _, userID := range r.UserIDs() {
		if _, err := fmt.Fprintf(w, "\tUSER ID: %d\n", userID); err != nil {
			return err
		}
		for _, info := range r.byUser[userID] {
			if _, err := fmt.Fprintf(w, "\t\tIssueInfo = %s\n", info); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
