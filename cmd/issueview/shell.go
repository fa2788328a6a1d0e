package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/issueview/internal/repl"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive shell over the issue repository",
	Long: `Start an interactive shell over the loaded issue repository.

The shell can list and count active issues, start and stop managed profiles,
remove users and dump the repository. Type 'help' in the shell for commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		r, err := repl.New(&repl.Config{Service: svc})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create shell: %v\n", err)
			os.Exit(1)
		}

		if err := r.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
