package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print every user and its computed issues",
	Run: func(cmd *cobra.Command, args []string) {
		if err := svc.Dump(context.Background(), os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to dump repository: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
