package repl

import (
	"fmt"

	"github.com/fatih/color"
)

// cmdStatus shows every profile group with its active issue counts
func (r *REPL) cmdStatus(args []string) error {
	groups, err := r.svc.Groups(r.ctx)
	if err != nil {
		return fmt.Errorf("failed to list profile groups: %w", err)
	}

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(r.out, "\n%s\n\n", cyan("Profile Groups"))

	if len(groups) == 0 {
		fmt.Fprintln(r.out, "  No users")
		fmt.Fprintln(r.out)
		return nil
	}

	for _, g := range groups {
		active, err := r.svc.ActiveIssues(r.ctx, g.ParentUserID)
		if err != nil {
			return err
		}
		loggable, err := r.svc.CountActiveLoggableIssues(r.ctx, g.ParentUserID)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "  user %d: %d active, %d loggable (profiles %v, running %v)\n",
			g.ParentUserID, len(active), loggable, g.ManagedUserIDs, g.RunningManagedUserIDs)
	}
	fmt.Fprintln(r.out)
	return nil
}
