package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "registry-load",
		Short:         "Registry API load testing tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newSmokeCmd())
	cmd.AddCommand(newRunCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
