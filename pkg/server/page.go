package server

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/vango-dev/newtab/internal/errors"
	"github.com/vango-dev/newtab/pkg/components/deletemenu"
	"github.com/vango-dev/newtab/pkg/middleware"
	"github.com/vango-dev/newtab/pkg/render"
	"github.com/vango-dev/newtab/pkg/store"
	"github.com/vango-dev/newtab/pkg/vdom"
)

const pageCSS = `body{font-family:sans-serif;margin:2rem}
.tiles{display:flex;flex-wrap:wrap;gap:1rem;list-style:none;padding:0}
.tile{position:relative;width:10rem;padding:1rem;border:1px solid #ddd;border-radius:4px}
.tile-menu-button{position:absolute;top:.25rem;right:.5rem;text-decoration:none}
.context-menu{position:absolute;top:2rem;right:0;margin:0;padding:.25rem 0;list-style:none;background:#fff;border:1px solid #ccc;z-index:1}
.context-menu[hidden]{display:none}
.context-menu-link{display:block;padding:.25rem 1rem;white-space:nowrap}`

// handlePage renders the page as a new view. The view is registered only
// once the page rendered.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	v := newView(s.store, s.logger)
	body := s.pageBody(v, r.URL.Query().Get("menu"))

	renderer := render.NewRenderer(render.RendererConfig{})
	var buf bytes.Buffer
	err := s.renderPage(renderer, &buf, render.PageData{
		Body:   body,
		Title:  s.config.Title,
		Styles: []string{pageCSS},
		View:   v.id,
	})
	if err != nil {
		s.logger.Error("page render failed", "error", errors.New("E304").Wrap(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	v.setHandlers(renderer.GetHandlers())
	s.views.add(v)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Debug("page write failed", "error", err)
	}
}

// pageBody lays out one tile per site. menuURL names the tile whose menu
// is open.
func (s *Server) pageBody(v *view, menuURL string) *vdom.VNode {
	state := s.store.State()
	sites := make([]store.Site, 0, len(state.Sites))
	for _, site := range state.Sites {
		if !state.IsBlocked(site.URL) {
			sites = append(sites, site)
		}
	}

	return vdom.Main(
		vdom.Class("newtab"),
		vdom.H1(vdom.Text(s.config.Title)),
		vdom.If(len(sites) == 0, vdom.P(vdom.Class("empty"), vdom.Text("Nothing to show."))),
		vdom.Ul(
			vdom.Class("tiles"),
			vdom.Range(sites, func(site store.Site, i int) *vdom.VNode {
				return s.tile(v, site, i, site.URL == menuURL)
			}),
		),
	)
}

func (s *Server) tile(v *view, site store.Site, index int, open bool) *vdom.VNode {
	title := site.Title
	if title == "" {
		title = site.URL
	}
	return vdom.Li(
		vdom.Key(site.URL),
		vdom.Class("tile"),
		vdom.A(vdom.Class("tile-link"), vdom.Href(site.URL), vdom.Text(title)),
		vdom.A(
			vdom.Class("tile-menu-button"),
			vdom.Href("?menu="+url.QueryEscape(site.URL)),
			vdom.AriaLabel("Open menu for "+title),
			vdom.Text("⋮"),
		),
		deletemenu.New(deletemenu.Props{
			URL:          site.URL,
			BookmarkGUID: site.BookmarkGUID,
			Visible:      open,
			Page:         s.config.Page,
			Source:       site.Source,
			Index:        deletemenu.Position(index),
			OnUpdate:     s.menuUpdated(v, site.URL),
		}, deletemenu.Deps{Dispatcher: v, State: s.store}),
	)
}

func (s *Server) menuUpdated(v *view, url string) func() {
	return func() {
		v.logger.Info("menu selection applied", "url", url)
		middleware.RecordMenuUpdate()
	}
}
