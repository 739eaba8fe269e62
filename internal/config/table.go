package config

import (
	"encoding/json"
	"net/http"

	"github.com/vango-dev/routeview/internal/errors"
	"github.com/vango-dev/routeview/pkg/loaders"
	"github.com/vango-dev/routeview/pkg/routes"
	"github.com/vango-dev/routeview/pkg/vdom"
)

// TableOptions configures Table.
type TableOptions struct {
	// HTTPClient is used by http loaders. Default: http.DefaultClient.
	HTTPClient *http.Client

	// S3 is used by s3 loaders. Default: an anonymous client built from
	// the s3 section.
	S3 loaders.ObjectGetter
}

// Table validates the configuration and builds the route table.
func (c *Config) Table(opts TableOptions) (*routes.Table, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	table := routes.MustTable()
	for _, rc := range c.Routes {
		r := routes.Route{
			ID:       rc.ID,
			Path:     rc.Path,
			ParentID: rc.ParentID,
			Index:    rc.Index,
			Redirect: rc.Redirect,
			Props:    rc.Props,
		}
		if rc.Loader != nil {
			r.Loader = &routes.Loader{
				Load:    c.loader(rc.Loader, &opts),
				Hydrate: rc.Loader.Hydrate,
			}
		}
		if err := table.Add(r); err != nil {
			return nil, errors.New("R501").WithRoute(rc.ID).Wrap(err)
		}
	}
	return table, nil
}

func (c *Config) loader(lc *LoaderConfig, opts *TableOptions) routes.LoaderFunc {
	switch lc.Kind {
	case LoaderHTTP:
		header := make(http.Header, len(lc.Header))
		for k, v := range lc.Header {
			header.Set(k, v)
		}
		return loaders.HTTPJSON(lc.URL, loaders.HTTPOptions{Client: opts.HTTPClient, Header: header})
	case LoaderS3:
		if opts.S3 == nil {
			opts.S3 = loaders.NewS3Client(loaders.S3Options{
				Region:    c.S3.Region,
				Endpoint:  c.S3.Endpoint,
				PathStyle: c.S3.PathStyle,
			})
		}
		return loaders.S3JSON(opts.S3, lc.Bucket, lc.Key)
	default:
		return loaders.Static(lc.Value)
	}
}

// Components builds a component for every route that declares one.
// Routes without a component section render only their children.
func (c *Config) Components() routes.Components {
	comps := make(routes.Components, len(c.Routes))
	for _, rc := range c.Routes {
		if rc.Redirect != "" {
			continue
		}
		if rc.Component == nil {
			comps[rc.ID] = outletOnly
			continue
		}
		comps[rc.ID] = content(*rc.Component)
	}
	return comps
}

var outletOnly = routes.ComponentFunc(func(s *routes.Scope) *vdom.VNode {
	return s.Outlet()
})

// content renders the title, body and loader data of a route, then its
// children.
func content(cc ComponentConfig) routes.Component {
	return routes.ComponentFunc(func(s *routes.Scope) *vdom.VNode {
		r, _ := s.RouteData()
		id := ""
		if r != nil {
			id = r.ID
		}

		var data *vdom.VNode
		if !cc.HideData {
			data = loaderData(s)
		}
		return vdom.Section(
			vdom.Data("route", id),
			vdom.If(cc.Title != "", vdom.H2(cc.Title)),
			vdom.If(cc.Body != "", vdom.P(cc.Body)),
			data,
			s.Outlet(),
		)
	})
}

func loaderData(s *routes.Scope) *vdom.VNode {
	data, err := s.LoaderData()
	if err != nil {
		return vdom.Pre(vdom.Role("alert"), vdom.Data("error", errors.Code(err)), err.Error())
	}
	if data == nil {
		return nil
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return vdom.Pre(vdom.Role("alert"), err.Error())
	}
	return vdom.Pre(vdom.Class("loader-data"), string(b))
}
