package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alphaholdings/entity-registry/pkg/commands"
	"github.com/alphaholdings/entity-registry/pkg/configuration"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "registry",
		Short:         "Legal entity registry operations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(commands.NewRegistryCommands()...)
	return cmd
}

func main() {
	defer configuration.Use().Unload()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
