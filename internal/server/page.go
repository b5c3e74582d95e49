package server

import (
	"github.com/san-kum/gapsim/internal/annotation"
	"github.com/san-kum/gapsim/internal/render"
)

// client applies sync and frame messages to the chart's glyph group,
// interpolating each circle from its plan's from to its to with the
// easing named in the message.
const client = `(function () {
  const NS = "http://www.w3.org/2000/svg";
  const group = document.getElementById("glyphs");
  const year = document.getElementById("year");
  const live = new Map();
  let duration = 100;
  let ease = linear;

  function linear(t) { return t; }
  function cubic(t) {
    t *= 2;
    if (t <= 1) return t * t * t / 2;
    t -= 2;
    return (t * t * t + 2) / 2;
  }
  const eases = { linear: linear, cubic: cubic };

  function place(el, a) {
    el.setAttribute("cx", a.x);
    el.setAttribute("cy", a.y);
    el.setAttribute("r", a.r);
  }

  function create(c) {
    const el = document.createElementNS(NS, "circle");
    el.setAttribute("fill", c.fill);
    el.dataset.id = c.id;
    place(el, c.from);
    group.appendChild(el);
    live.set(c.id, { el: el, from: c.from, to: c.to, start: performance.now() });
  }

  function retarget(c) {
    const g = live.get(c.id);
    if (!g) { create(c); return; }
    g.from = c.from;
    g.to = c.to;
    g.start = performance.now();
  }

  function frame(now) {
    live.forEach(function (g) {
      const t = ease(duration > 0 ? Math.min(1, (now - g.start) / duration) : 1);
      place(g.el, {
        x: g.from.x + (g.to.x - g.from.x) * t,
        y: g.from.y + (g.to.y - g.from.y) * t,
        r: g.from.r + (g.to.r - g.from.r) * t
      });
    });
    requestAnimationFrame(frame);
  }
  requestAnimationFrame(frame);

  const proto = location.protocol === "https:" ? "wss://" : "ws://";
  const ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (ev) {
    const msg = JSON.parse(ev.data);
    duration = msg.transition_ms;
    ease = eases[msg.ease] || linear;
    year.textContent = String(msg.year);
    if (msg.type === "sync") {
      live.forEach(function (g) { g.el.remove(); });
      live.clear();
      (msg.glyphs || []).forEach(create);
      return;
    }
    (msg.remove || []).forEach(function (id) {
      const g = live.get(id);
      if (g) { g.el.remove(); live.delete(id); }
    });
    (msg.create || []).forEach(create);
    (msg.update || []).forEach(retarget);
  };
})();`

// Page renders the browser page for chart at startYear.
func Page(chart *render.Chart, palette []string, startYear int) string {
	return render.Page(render.PageOptions{
		Title:     "Gapminder",
		Chart:     chart.Skeleton(startYear),
		Legend:    render.Legend(annotation.Legend(palette)),
		Narrative: render.Narrative(annotation.Narrative),
		Script:    client,
	})
}
