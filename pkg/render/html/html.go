package html

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/uuid"

	"github.com/mlorenz/dotviz/pkg/errors"
)

// Base template adapted from force-directed graph examples by Mike Bostock
// at http://bl.ocks.org/mbostock. The AMD require() call assumes a notebook
// style host page; use [Page] to wrap the fragment for standalone viewing.
//
//go:embed template.html
var defaultTemplate string

// requireJS is the AMD loader used by the standalone page wrapper.
const requireJS = "https://cdnjs.cloudflare.com/ajax/libs/require.js/2.3.6/require.min.js"

// Sentinels used to verify that a template actually consumes both fields.
const (
	probeID   = "\x00dotviz-probe-id\x00"
	probeJSON = "\x00dotviz-probe-json\x00"
)

// DefaultTemplate returns the embedded d3 force-directed graph template.
func DefaultTemplate() string {
	return defaultTemplate
}

// templateData is the substitution context for a render.
type templateData struct {
	// UniqueID scopes the generated DOM elements so several fragments can
	// coexist on one page.
	UniqueID string
	// JSONData is the node-link JSON literal, inserted verbatim.
	JSONData string
}

// Renderer substitutes a unique element ID and a JSON literal into an HTML
// template. A Renderer is immutable after construction and safe for
// concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// Default returns a renderer for the embedded template.
func Default() *Renderer {
	return &Renderer{tmpl: template.Must(parse(defaultTemplate))}
}

// New creates a renderer from custom template source.
//
// The template must reference both {{.UniqueID}} and {{.JSONData}}; a template
// that parses but drops either placeholder is rejected with
// [errors.ErrCodeInvalidTemplate] rather than producing broken output.
func New(src string) (*Renderer, error) {
	tmpl, err := parse(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "parse template")
	}

	var probe strings.Builder
	if err := tmpl.Execute(&probe, templateData{UniqueID: probeID, JSONData: probeJSON}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "execute template")
	}
	if !strings.Contains(probe.String(), probeID) {
		return nil, errors.New(errors.ErrCodeInvalidTemplate, "template does not use {{.UniqueID}}")
	}
	if !strings.Contains(probe.String(), probeJSON) {
		return nil, errors.New(errors.ErrCodeInvalidTemplate, "template does not use {{.JSONData}}")
	}

	return &Renderer{tmpl: tmpl}, nil
}

func parse(src string) (*template.Template, error) {
	// text/template, not html/template: JSONData must land in the script
	// block byte-for-byte, without contextual escaping.
	return template.New("dotgraph").Parse(src)
}

// Render substitutes a freshly generated unique ID and the given JSON literal
// into the template. Successive calls produce fragments that differ only in
// their unique ID.
func (r *Renderer) Render(jsonData string) (string, error) {
	return r.RenderWithID(NewID(), jsonData)
}

// RenderWithID renders with a caller-chosen element ID.
func (r *Renderer) RenderWithID(id, jsonData string) (string, error) {
	var out strings.Builder
	if err := r.tmpl.Execute(&out, templateData{UniqueID: id, JSONData: jsonData}); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidTemplate, err, "render template")
	}
	return out.String(), nil
}

// NewID returns a DOM element ID unique within any realistic session.
// Random UUIDs replace the original time-hash scheme, which could collide
// when several graphs rendered within one clock tick.
func NewID() string {
	return "graph-" + uuid.NewString()
}

// Page wraps a rendered fragment in a minimal standalone HTML page that
// provides the AMD loader the fragment's script expects. Notebook hosts ship
// their own loader, so the bare fragment is used there instead.
func Page(title, fragment string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<script src="%s"></script>
</head>
<body>
%s
</body>
</html>
`, title, requireJS, fragment)
}
