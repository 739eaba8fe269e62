package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routeview/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template string
		name     string
		basename string
		port     int
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter configuration",
		Long: `Write a starter routeview configuration into dir (default: the
current directory).

Templates: ` + strings.Join(templates.List(), ", ") + `

Examples:
  routeview init
  routeview init ./site --template=docs --name=handbook`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(abs, 0o755); err != nil {
				return err
			}

			tmpl, err := templates.Get(template)
			if err != nil {
				return err
			}
			err = tmpl.Create(abs, templates.Config{
				ProjectName: name,
				Basename:    basename,
				Port:        port,
			})
			if err != nil {
				return err
			}
			success("Created %s project in %s", tmpl.Name, abs)
			info("Run: routeview serve --config %s", dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "minimal", "Starter template")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name (default: directory name)")
	cmd.Flags().StringVar(&basename, "basename", "/", "URL prefix of the site")
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "Preview server port")

	return cmd
}
