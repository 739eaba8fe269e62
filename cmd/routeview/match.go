package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routeview/pkg/history"
	"github.com/vango-dev/routeview/pkg/routes"
)

func matchCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "match <path>",
		Short: "Show the routes a path selects",
		Long: `Show the branch of routes selected for a path, outermost first,
with the parameters each route sees.

Examples:
  routeview match /users/42
  routeview match /docs/guide/intro --config ./site`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject(dir)
			if err != nil {
				return err
			}
			_, _, tree, err := buildTree(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var matches []routes.Match
			if path, ok := routes.StripBasename(history.ParsePath(args[0]).Pathname, cfg.Basename); ok {
				matches = routes.NewMatcher(tree).Match(path)
			}
			if len(matches) == 0 {
				fmt.Fprintf(out, "no routes match %s\n", args[0])
				return nil
			}
			for i, m := range matches {
				fmt.Fprintf(out, "%s%s  %s  %s\n", strings.Repeat("  ", i), m.Route.ID, m.Pattern, m.Pathname)
			}
			if params := formatParams(matches[len(matches)-1].Params); params != "" {
				fmt.Fprintf(out, "params: %s\n", params)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "config", "c", "", "Directory holding routeview.yaml or routeview.json")

	return cmd
}

func formatParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + params[k]
	}
	return strings.Join(parts, " ")
}
