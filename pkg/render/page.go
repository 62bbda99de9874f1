package render

import (
	"io"

	"github.com/vango-dev/newtab/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Styles contains inline CSS blocks.
	Styles []string

	// ClientScript is the inline script appended to the body.
	// Defaults to ClientScript if empty; set NoClient to omit it.
	ClientScript string

	// NoClient omits the client script entirely.
	NoClient bool

	// View identifies this rendering to the server. It is written to the
	// body's data-view attribute and sent by the client script when it
	// connects.
	View string
}

// ClientScript forwards clicks on elements carrying data-on-click to the
// server over a WebSocket and reloads the page once the server has
// applied the resulting actions.
const ClientScript = `(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var view = document.body.getAttribute("data-view") || "";
  var ws = new WebSocket(proto + location.host + "/ws?view=" + encodeURIComponent(view));
  ws.onmessage = function (msg) {
    var reply = JSON.parse(msg.data);
    if (reply.error) { console.warn("newtab:", reply.error); return; }
    location.reload();
  };
  document.addEventListener("click", function (ev) {
    var el = ev.target.closest("[data-on-click]");
    if (!el) { return; }
    ev.preventDefault();
    ws.send(JSON.stringify({hid: el.getAttribute("data-hid"), event: "click"}));
  });
})();`

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	head := vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Title(vdom.Text(page.Title)),
		vdom.Range(page.Styles, func(css string, _ int) *vdom.VNode {
			return vdom.Style(vdom.Text(css))
		}),
	)

	script := page.ClientScript
	if script == "" {
		script = ClientScript
	}
	var view vdom.Attr
	if page.View != "" {
		view = vdom.Data("view", page.View)
	}
	body := vdom.Body(
		view,
		page.Body,
		vdom.If(!page.NoClient, vdom.Script(vdom.Text(script))),
	)

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	return r.RenderToWriter(w, vdom.Html(vdom.Lang(lang), head, body))
}
