package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/issueview/internal/repl"
	"github.com/steveyegge/issueview/internal/types"
)

var listCmd = &cobra.Command{
	Use:   "list <parent-user-id>",
	Short: "List active issues of a user and its running managed profiles",
	Long: `List the deduplicated active issues of a profile group, most urgent first.

Active issues are those of the parent user plus those of every managed
profile that is currently running.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parent, err := parseUserID(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		active, err := svc.ActiveIssues(context.Background(), parent)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to list issues: %v\n", err)
			os.Exit(1)
		}
		writeIssues(os.Stdout, parent, active)
	},
}

var countCmd = &cobra.Command{
	Use:   "count <parent-user-id>",
	Short: "Count loggable active issues of a profile group",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parent, err := parseUserID(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		count, err := svc.CountActiveLoggableIssues(context.Background(), parent)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to count issues: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(count)
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys <user-id>",
	Short: "List the issue keys computed for one user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userID, err := parseUserID(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		keys, err := svc.IssuesForUser(context.Background(), userID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to list issue keys: %v\n", err)
			os.Exit(1)
		}
		for _, key := range keys {
			fmt.Println(key)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(keysCmd)
}

func parseUserID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q: %w", s, err)
	}
	if id < 0 {
		return 0, fmt.Errorf("user id cannot be negative (got %d)", id)
	}
	return id, nil
}

// writeIssues prints a header and one line per issue.
func writeIssues(w io.Writer, parent int, active []*types.IssueInfo) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(w, "\n%s\n\n", cyan(fmt.Sprintf("Active issues for user %d (%d)", parent, len(active))))
	if len(active) == 0 {
		fmt.Fprintf(w, "  %s\n\n", gray("No active issues"))
		return
	}
	for _, info := range active {
		fmt.Fprintf(w, "  %s\n", repl.FormatIssue(info))
		if summary := info.Issue().Summary; summary != "" {
			fmt.Fprintf(w, "      %s\n", gray(summary))
		}
	}
	fmt.Fprintln(w)
}
