package main

import (
	"os"

	"github.com/vango-dev/routeview/internal/config"
	"github.com/vango-dev/routeview/pkg/routes"
)

// loadProject loads the configuration from dir, or from the nearest
// directory holding one when dir is empty.
func loadProject(dir string) (*config.Config, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root, err := config.FindProjectRoot(wd)
		if err != nil {
			return nil, err
		}
		dir = root
	}
	return config.Load(dir)
}

// buildTree builds the client route tree of cfg.
func buildTree(cfg *config.Config) (*routes.Table, routes.Components, []*routes.ClientRoute, error) {
	table, err := cfg.Table(config.TableOptions{})
	if err != nil {
		return nil, nil, nil, err
	}
	comps := cfg.Components()
	tree, err := routes.Build(table, comps, routes.BuildOptions{UseStream: cfg.UseStream})
	if err != nil {
		return nil, nil, nil, err
	}
	return table, comps, tree, nil
}
