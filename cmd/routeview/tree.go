package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routeview/pkg/routes"
)

func treeCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the route tree",
		Long: `Print the nested route tree built from the project configuration.

Examples:
  routeview tree
  routeview tree --config ./site`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject(dir)
			if err != nil {
				return err
			}
			_, _, tree, err := buildTree(cfg)
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), tree, 0)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "config", "c", "", "Directory holding routeview.yaml or routeview.json")

	return cmd
}

func printTree(w io.Writer, tree []*routes.ClientRoute, depth int) {
	for _, r := range tree {
		label := r.Path
		switch {
		case r.Index:
			label = "(index)"
		case label == "":
			label = "(layout)"
		}

		var flags []string
		if r.IsRedirect() {
			flags = append(flags, "redirect "+r.Definition().Redirect)
		}
		if r.Loader != nil {
			flags = append(flags, "loader")
		}

		line := strings.Repeat("  ", depth) + r.ID + "  " + label
		if len(flags) > 0 {
			line += "  [" + strings.Join(flags, ", ") + "]"
		}
		fmt.Fprintln(w, line)
		printTree(w, r.Children, depth+1)
	}
}
