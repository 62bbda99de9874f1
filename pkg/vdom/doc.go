// Package vdom provides the virtual DOM used by newtab components.
//
// Components render to VNode trees on the server. The page renderer turns
// a tree into HTML, and client events are routed back to the Go handlers
// stored on the tree by hydration ID.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Ul(Class("context-menu"), HiddenIf(!visible),
//	    Li(A(Class("context-menu-link"), OnClick(handler), Text("Remove"))),
//	)
//
// # Queries
//
// Walk, FindByClass and TextContent let tests and the server inspect a
// rendered tree the way a DOM query would.
//
// # Hydration
//
// AssignHIDs walks the tree and assigns hydration IDs to interactive elements
// (those with event handlers). These IDs link server VNodes to client DOM.
package vdom
