package dotviz

import (
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/mlorenz/dotviz/pkg/dot"
	"github.com/mlorenz/dotviz/pkg/errors"
	"github.com/mlorenz/dotviz/pkg/graph"
	"github.com/mlorenz/dotviz/pkg/nodelink"
	"github.com/mlorenz/dotviz/pkg/render/html"
)

// DotGraph converts a DOT file into derived read-only views: an in-memory
// graph, a node-link structure, JSON text, and an HTML fragment with an
// embedded force-directed visualization.
//
// The only stored state is the source path and the template; every view is
// recomputed from the file on each call, so a DotGraph always reflects the
// file's current content. Construction performs no I/O and does not check
// that the path exists.
type DotGraph struct {
	path     string
	renderer *html.Renderer

	encOnce sync.Once
	enc     jsoniter.API
}

// New creates a DotGraph for the DOT file at path, using the default
// embedded HTML template.
func New(path string) *DotGraph {
	return &DotGraph{path: path, renderer: html.Default()}
}

// NewWithTemplate creates a DotGraph with a custom HTML template.
// The template must use both {{.UniqueID}} and {{.JSONData}}; see
// [html.New] for the validation rules.
func NewWithTemplate(path, tmpl string) (*DotGraph, error) {
	r, err := html.New(tmpl)
	if err != nil {
		return nil, err
	}
	return &DotGraph{path: path, renderer: r}, nil
}

// Path returns the source file path.
func (d *DotGraph) Path() string { return d.path }

// Graph parses the source file and returns the directed multigraph.
// The file is read on every call.
func (d *DotGraph) Graph() (*graph.DiGraph, error) {
	return dot.ParseFile(d.path)
}

// NodeLink parses the source file and projects it into node-link form.
// Link indices are valid offsets into the node sequence of the same result.
func (d *DotGraph) NodeLink() (nodelink.Data, error) {
	g, err := d.Graph()
	if err != nil {
		return nodelink.Data{}, err
	}
	return nodelink.FromGraph(g)
}

// JSON returns the node-link representation as a JSON string.
//
// The encoder is constructed lazily and reused across calls; the data itself
// is recomputed from the file each time, so the output tracks file changes.
func (d *DotGraph) JSON() (string, error) {
	nl, err := d.NodeLink()
	if err != nil {
		return "", err
	}
	s, err := d.encoder().MarshalToString(nl)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSerialization, err, "encode node-link data")
	}
	return s, nil
}

func (d *DotGraph) encoder() jsoniter.API {
	d.encOnce.Do(func() {
		d.enc = jsoniter.Config{
			EscapeHTML:             true,
			SortMapKeys:            true,
			ValidateJsonRawMessage: true,
		}.Froze()
	})
	return d.enc
}

// HTML returns an HTML fragment embedding the JSON and a force-directed
// rendering script. Each call generates a fresh unique element ID, so two
// fragments for the same input differ only in that ID.
func (d *DotGraph) HTML() (string, error) {
	data, err := d.JSON()
	if err != nil {
		return "", err
	}
	return d.renderer.Render(data)
}

// Render returns the display form for notebook hosts. It is the same text
// HTML produces; the host is responsible for interpreting it as text/html.
func (d *DotGraph) Render() (string, error) {
	return d.HTML()
}

// MIMEBundle returns the notebook display-data bundle for this graph.
func (d *DotGraph) MIMEBundle() (map[string]string, error) {
	h, err := d.Render()
	if err != nil {
		return nil, err
	}
	return map[string]string{"text/html": h}, nil
}
