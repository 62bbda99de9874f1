// Package server serves the new-tab page.
//
// GET / renders one tile per site in the store, each with its DeleteMenu.
// The menu of the tile named by the "menu" query parameter is visible.
// Every rendering is a view: its click handlers are kept under a view id
// that the page sends back when it opens the socket.
//
// GET /ws accepts click messages for a view:
//
//	{"hid":"h3","event":"click"}
//
// and replies with every action the click dispatched:
//
//	{"actions":[{"type":"NOTIFY_BLOCK_URL","data":"https://foo.com"}, ...]}
//
// or an error:
//
//	{"error":"unknown target"}
//
// GET /healthz reports liveness and the metrics path (default /metrics)
// serves Prometheus metrics.
package server
