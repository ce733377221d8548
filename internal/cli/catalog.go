package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hexlattice/anchorscan/internal/catalog"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "catalog", Short: "Inspect the vulnerability description catalog"}
	var dir string
	list := &cobra.Command{
		Use:   "list",
		Short: "List loaded catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Load(dir)
			if len(cat) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "catalog is empty")
				return nil
			}
			keys := make([]string, 0, len(cat))
			for k := range cat {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, firstLine(cat[k].Description))
			}
			return nil
		},
	}
	list.Flags().StringVar(&dir, "catalog", "vulnerabilities", "Directory with vulnerability description documents")
	cmd.AddCommand(list)
	return cmd
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
