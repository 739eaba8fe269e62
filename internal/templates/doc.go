// Package templates provides the starter configurations written by
// routeview init.
//
// Available templates:
//
//   - minimal: a single layout with two pages
//   - docs: nested sections with loaders and a redirect
//   - json: the minimal site as routeview.json
//
// Usage:
//
//	tmpl, err := templates.Get("docs")
//	if err != nil {
//	    return err
//	}
//	err = tmpl.Create(dir, templates.Config{ProjectName: "handbook"})
package templates
