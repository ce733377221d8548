package app

import (
	"github.com/spf13/cobra"

	"github.com/hexlattice/anchorscan/internal/cli"
)

func BuildRoot() *cobra.Command {
	root := &cobra.Command{Use: "anchorscan", Short: "Static security scanner for Solana and Anchor programs"}
	cli.AddCommands(root)
	return root
}
