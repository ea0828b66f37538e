package html

import (
	"strings"
	"testing"

	"github.com/mlorenz/dotviz/pkg/errors"
)

func TestDefaultRender(t *testing.T) {
	const jsonData = `{"directed":true,"nodes":[{"id":"A"}],"links":[]}`

	out, err := Default().Render(jsonData)
	if err != nil {
		t.Fatalf("Render(): %v", err)
	}

	if !strings.Contains(out, jsonData) {
		t.Error("output does not embed the JSON verbatim")
	}
	if !strings.Contains(out, `d3js.org/d3.v3.min`) {
		t.Error("output does not reference the d3 CDN")
	}
	if strings.Contains(out, "{{") {
		t.Error("output contains unexpanded template actions")
	}
}

func TestRenderUniqueIDs(t *testing.T) {
	const jsonData = `{"nodes":[]}`

	r := Default()
	a, err := r.RenderWithID(NewID(), jsonData)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.RenderWithID(NewID(), jsonData)
	if err != nil {
		t.Fatal(err)
	}

	if a == b {
		t.Error("two renders produced identical output; IDs should differ")
	}
	// Only the element ID may differ between the two renders.
	if !strings.Contains(a, jsonData) || !strings.Contains(b, jsonData) {
		t.Error("JSON content must be identical across renders")
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b {
		t.Errorf("NewID() returned duplicate %q", a)
	}
	if !strings.HasPrefix(a, "graph-") {
		t.Errorf("NewID() = %q, want graph- prefix", a)
	}
}

func TestNewTemplateValidation(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr bool
	}{
		{
			name: "MinimalValid",
			src:  `<div id="{{.UniqueID}}"></div><script>var g = {{.JSONData}};</script>`,
		},
		{
			name: "PlaceholdersOnly",
			src:  `{{.UniqueID}} {{.JSONData}}`,
		},
		{
			name:    "MissingUniqueID",
			src:     `<script>var g = {{.JSONData}};</script>`,
			wantErr: true,
		},
		{
			name:    "MissingJSONData",
			src:     `<div id="{{.UniqueID}}"></div>`,
			wantErr: true,
		},
		{
			name:    "NoPlaceholders",
			src:     `<div>static</div>`,
			wantErr: true,
		},
		{
			name:    "SyntaxError",
			src:     `{{.UniqueID`,
			wantErr: true,
		},
		{
			name:    "UnknownField",
			src:     `{{.UniqueID}} {{.JSONData}} {{.Nope}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() succeeded, want error")
				}
				if !errors.Is(err, errors.ErrCodeInvalidTemplate) {
					t.Errorf("error code = %q, want INVALID_TEMPLATE", errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("New(): %v", err)
			}

			out, err := r.RenderWithID("the-id", `{"x":1}`)
			if err != nil {
				t.Fatalf("RenderWithID(): %v", err)
			}
			if !strings.Contains(out, "the-id") || !strings.Contains(out, `{"x":1}`) {
				t.Errorf("substitution incomplete: %q", out)
			}
		})
	}
}

func TestPage(t *testing.T) {
	page := Page("my graph", "<div>fragment</div>")

	for _, want := range []string{"<!DOCTYPE html>", "<title>my graph</title>", "<div>fragment</div>", "require.min.js"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestDefaultTemplateIsValid(t *testing.T) {
	// The embedded template must pass the same validation custom templates do.
	if _, err := New(DefaultTemplate()); err != nil {
		t.Fatalf("embedded template rejected: %v", err)
	}
}
