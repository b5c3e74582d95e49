package render

import (
	"fmt"
	"html"
	"strings"
)

// PageOptions are the parts of an HTML page.
type PageOptions struct {
	Title     string
	Chart     string
	Legend    string
	Narrative string
	// Script is appended verbatim inside a script element when set.
	Script string
}

// Page assembles a standalone HTML document with the chart, the legend and
// the narrative side by side.
func Page(opts PageOptions) string {
	title := opts.Title
	if title == "" {
		title = "Gapminder"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(title)))
	sb.WriteString(`<style>
body { font-family: sans-serif; margin: 20px; }
.layout { display: flex; gap: 24px; align-items: flex-start; }
</style>
</head>
<body>
`)
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(title)))
	sb.WriteString(`<div class="layout">` + "\n")
	sb.WriteString(`<div id="chart-area">` + "\n" + opts.Chart + "</div>\n")
	sb.WriteString(`<div>` + "\n" + `<div id="legend">` + "\n" + opts.Legend + "</div>\n")
	sb.WriteString(opts.Narrative + "</div>\n</div>\n")
	if opts.Script != "" {
		sb.WriteString("<script>\n" + opts.Script + "\n</script>\n")
	}
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}
