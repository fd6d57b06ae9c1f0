package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/navtree/internal/navtree"
)

var activeCmd = &cobra.Command{
	Use:   "active <path>",
	Short: "List the page keys to expand for a route path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		c, _, err := loadContent(ctx)
		if err != nil {
			return err
		}

		path := args[0]
		out := cmd.OutOrStdout()
		if key, ok := navtree.FindByRoute(c.Pages, path); ok {
			fmt.Fprintf(out, "page: %s\n", key)
		} else {
			fmt.Fprintf(out, "no page routed at %s\n", path)
		}
		for _, key := range navtree.ActiveKeys(c.Pages, path).Sorted() {
			fmt.Fprintln(out, key)
		}
		return nil
	},
}
