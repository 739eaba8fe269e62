// Package loaders provides ready-made route loaders.
//
// Each constructor returns a routes.LoaderFunc:
//
//	routes.Route{
//	    ID:     "user",
//	    Path:   "users/:id",
//	    Loader: &routes.Loader{Load: loaders.HTTPJSON("https://api.example.com/me", loaders.HTTPOptions{})},
//	}
//
// Static serves a fixed value, HTTPJSON decodes a JSON document fetched over
// HTTP, and S3JSON decodes a JSON object stored in S3.
package loaders
