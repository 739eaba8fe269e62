package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/vango-dev/routeview/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is used as the page title.
	ProjectName string

	// Basename is the URL prefix of the site. Default: "/".
	Basename string

	// Port is the preview server port. Default: 3000.
	Port int
}

// Template is a starter project.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files maps relative paths to template text.
	Files map[string]string
}

var templates = map[string]*Template{
	"minimal": {
		Name:        "minimal",
		Description: "One layout with a home and an about page",
		Files:       map[string]string{"routeview.yaml": minimalYAML},
	},
	"docs": {
		Name:        "docs",
		Description: "Nested documentation sections with loaders and a redirect",
		Files:       map[string]string{"routeview.yaml": docsYAML},
	},
	"json": {
		Name:        "json",
		Description: "The minimal site as routeview.json",
		Files:       map[string]string{"routeview.json": minimalJSON},
	},
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.Newf(errors.CategoryConfig, "template %q not found", name).
			WithSuggestion("Available templates: docs, json, minimal")
	}
	return tmpl, nil
}

// List returns all template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create writes the template files into dir. Existing files are never
// overwritten.
func (t *Template) Create(dir string, cfg Config) error {
	if cfg.Basename == "" {
		cfg.Basename = "/"
	}
	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	if cfg.ProjectName == "" {
		cfg.ProjectName = filepath.Base(dir)
	}

	for relPath := range t.Files {
		if _, err := os.Stat(filepath.Join(dir, relPath)); err == nil {
			return errors.Newf(errors.CategoryConfig, "%s already exists", relPath).
				WithSuggestion("Remove it or run init in another directory")
		}
	}

	for relPath, content := range t.Files {
		tmpl, err := template.New(relPath).Parse(content)
		if err != nil {
			return errors.Newf(errors.CategoryConfig, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryConfig, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}
	return nil
}

const minimalYAML = `name: {{.ProjectName}}
basename: {{.Basename}}
server:
  port: {{.Port}}
routes:
  - id: root
    path: /
    component:
      title: {{.ProjectName}}
  - id: home
    parentId: root
    index: true
    component:
      body: Welcome.
  - id: about
    parentId: root
    path: about
    component:
      title: About
`

const docsYAML = `name: {{.ProjectName}}
basename: {{.Basename}}
useStream: true
server:
  port: {{.Port}}
  metrics: true
routes:
  - id: root
    path: /
    component:
      title: {{.ProjectName}}
  - id: home
    parentId: root
    index: true
    component:
      body: Pick a section.
  - id: section
    parentId: root
    path: docs/:section
    loader:
      kind: static
      value:
        pages: [intro, install, usage]
    component:
      hideData: false
  - id: page
    parentId: section
    path: ":page?"
    loader:
      kind: static
      value: {status: draft}
    component:
      body: Page content goes here.
  - id: guide
    path: /guide/:section
    redirect: /docs/:section
    props:
      keepQuery: true
`

const minimalJSON = `{
  "name": "{{.ProjectName}}",
  "basename": "{{.Basename}}",
  "server": {"port": {{.Port}}},
  "routes": [
    {"id": "root", "path": "/", "component": {"title": "{{.ProjectName}}"}},
    {"id": "home", "parentId": "root", "index": true, "component": {"body": "Welcome."}},
    {"id": "about", "parentId": "root", "path": "about", "component": {"title": "About"}}
  ]
}
`
