package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/navtree/internal/navtree"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report dangling references and cycles in the contents document",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		c, _, err := loadContent(ctx)
		if err != nil {
			return err
		}

		issues := navtree.Check(c)
		out := cmd.OutOrStdout()
		for _, issue := range issues {
			fmt.Fprintln(out, issue.String())
		}
		fmt.Fprintf(out, "%d pages, %d roots, %d tree nodes, %d issues\n",
			len(c.Pages), len(c.RootLevelKeys), navtree.Count(navtree.BuildTree(c)), len(issues))

		if checkStrict && len(issues) > 0 {
			return fmt.Errorf("%d issues found", len(issues))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "exit non-zero when any issue is found")
}
