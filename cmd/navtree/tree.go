package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/navtree/internal/navtree"
	"github.com/dgallion1/navtree/internal/render"
)

var (
	treeFilter string
	treePath   string
	treeFormat string
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the navigation tree",
	Long: `Print the navigation tree built from the contents document.

--filter keeps pages whose name contains the text (case-insensitive) along
with their ancestors and subtrees. --path marks the page routed at that
path and its ancestors as active.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		c, cfg, err := loadContent(ctx)
		if err != nil {
			return err
		}

		tree := navtree.BuildTreeDepth(c, cfg.MaxDepth)
		query := navtree.NormalizeQuery(treeFilter)
		view := navtree.FilterTree(tree, query)

		out := cmd.OutOrStdout()
		switch treeFormat {
		case "md", "markdown":
			return render.Markdown(out, view)
		case "html":
			return render.HTML(out, view, render.Options{
				ActiveKeys: navtree.ActiveKeys(c.Pages, treePath),
				ExpandAll:  true,
			})
		case "json":
			return navtree.Encode(out, map[string]any{
				"tree":        view,
				"active_keys": navtree.ActiveKeys(c.Pages, treePath).Sorted(),
			})
		default:
			return fmt.Errorf("unknown format %q (want md, html or json)", treeFormat)
		}
	},
}

func init() {
	treeCmd.Flags().StringVar(&treeFilter, "filter", "", "keep pages whose name contains this text")
	treeCmd.Flags().StringVar(&treePath, "path", "", "route path of the current page, e.g. /guide/install.html")
	treeCmd.Flags().StringVarP(&treeFormat, "format", "f", "md", "output format: md, html or json")
}
