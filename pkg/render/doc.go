// Package render provides server-side rendering of VNode trees to HTML.
//
// Interactive elements are given hydration IDs while rendering. The
// renderer records each element's handlers keyed by "<hid>_<event>", which
// is how the server routes a client click back to a Go click handler:
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(menu.Render())
//	handler := r.GetHandlers()["h1_onclick"]
package render
