// Package dev provides the development helpers of the routeview CLI.
//
// Watcher reports changes to the project configuration so a running
// preview server can reload its route table without restarting:
//
//	w, err := dev.NewWatcher(dev.WatcherConfig{Paths: []string{"routeview.yaml"}})
//	if err != nil {
//	    return err
//	}
//	w.OnChange(func(c dev.Change) { reload(c.Path) })
//	go w.Start(ctx)
//	defer w.Stop()
package dev
