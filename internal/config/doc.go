// Package config provides configuration parsing for routeview projects.
//
// The configuration is stored in routeview.json or routeview.yaml at the
// project root. It declares the route table, the data loaders of each route
// and a simple content component per route, so a site can be previewed
// without writing Go.
//
// # Configuration File Structure
//
//	basename: /
//	mountElementId: root
//	useStream: true
//	server:
//	  host: localhost
//	  port: 3000
//	  metrics: true
//	s3:
//	  region: us-east-1
//	routes:
//	  - id: root
//	    path: /
//	    component: {title: Home}
//	  - id: user
//	    parentId: root
//	    path: users/:id
//	    loader: {kind: http, url: "https://api.example.com/user"}
//	  - id: legacy
//	    path: /old/:id
//	    redirect: /users/:id
//	    props: {keepQuery: true}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table, err := cfg.Table(config.TableOptions{})
package config
