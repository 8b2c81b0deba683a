package bridge

import (
	"html/template"
	"net/http"

	"github.com/vango-dev/compost/pkg/vdom"
)

type pageData struct {
	Name   string
	Markup template.HTML
	Client clientConfig
}

type clientConfig struct {
	WS     string `json:"ws"`
	Prefix string `json:"prefix"`
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
</head>
<body>
<div id="compost-root" data-component="{{.Name}}">{{.Markup}}</div>
<script>
(function () {
  var cfg = {{.Client}};
  var root = document.getElementById("compost-root");
  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(scheme + location.host + cfg.ws);

  function detail(e) {
    var d = {}, t = e.target;
    if (t && "value" in t) d.value = t.value;
    if (e.key) d.key = e.key;
    return d;
  }

  root.querySelectorAll("[data-hid]").forEach(function (el) {
    Array.prototype.forEach.call(el.attributes, function (a) {
      if (a.name.indexOf(cfg.prefix) !== 0) return;
      var kind = a.name.slice(cfg.prefix.length);
      el.addEventListener(kind, function (e) {
        if (kind === "submit") e.preventDefault();
        e.stopPropagation();
        ws.send(JSON.stringify({hid: el.getAttribute("data-hid"), type: kind, detail: detail(e)}));
      });
    });
  });

  ws.onmessage = function (m) {
    var f = JSON.parse(m.data);
    if (f.kind === "fire") {
      root.dispatchEvent(new CustomEvent(f.type, {detail: f.detail, bubbles: true}));
    } else if (f.kind === "error") {
      console.error(f.error);
    }
  };
})();
</script>
</body>
</html>
`))

// servePage renders a fresh instance's markup with hydration IDs.
func (b *Bridge) servePage(w http.ResponseWriter, r *http.Request) {
	inst, err := b.factory()
	if err != nil {
		b.logger.Error("page instance failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var markup string
	if root := inst.Root(); root != nil {
		vdom.AssignAllHIDs(root, vdom.NewHIDGenerator())
		markup, err = vdom.RenderString(root)
		if err != nil {
			b.logger.Error("page render failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	err = pageTemplate.Execute(w, pageData{
		Name:   inst.Name(),
		Markup: template.HTML(markup),
		Client: clientConfig{WS: b.config.WSPath, Prefix: inst.Binder.Prefix()},
	})
	if err != nil {
		b.logger.Warn("page write failed", "error", err)
	}
}
