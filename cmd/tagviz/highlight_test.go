package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunHighlight_YAMLKeepsKeyOrder(t *testing.T) {
	resetFlags()
	a, _ := newTestApp(t)

	var out bytes.Buffer
	if err := runHighlight(a, &out, nil, []string{"testdata/document.yaml"}); err != nil {
		t.Fatalf("runHighlight() error = %v", err)
	}

	want := `{
  "name": "tagviz",
  "tags": [
    "b",
    "a"
  ],
  "limits": {
    "max": 10,
    "ratio": 0.5
  },
  "enabled": true,
  "owner": null
}
`
	if out.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestRunHighlight_StdinJSON(t *testing.T) {
	resetFlags()
	a, _ := newTestApp(t)
	highlightFlags.render.indent = 4

	var out bytes.Buffer
	if err := runHighlight(a, &out, strings.NewReader(`{"z":[1,2],"a":{}}`), nil); err != nil {
		t.Fatalf("runHighlight() error = %v", err)
	}
	want := "{\n    \"z\": [\n        1,\n        2\n    ],\n    \"a\": {}\n}\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunHighlight_ANSI(t *testing.T) {
	resetFlags()
	a, _ := newTestApp(t)
	highlightFlags.render.color = "always"

	var out bytes.Buffer
	if err := runHighlight(a, &out, strings.NewReader(`{"a":true}`), nil); err != nil {
		t.Fatalf("runHighlight() error = %v", err)
	}
	if !strings.Contains(out.String(), "\x1b[") {
		t.Errorf("output has no ANSI escapes: %q", out.String())
	}
}

func TestRunHighlight_HTML(t *testing.T) {
	resetFlags()
	a, _ := newTestApp(t)
	highlightFlags.format = "html"
	highlightFlags.render.palette = "light"

	var out bytes.Buffer
	if err := runHighlight(a, &out, strings.NewReader(`{"a":"<b>"}`), nil); err != nil {
		t.Fatalf("runHighlight() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{"<pre", "#f6f8fa", "&lt;b&gt;", `<span style="color: #0366d6">`} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML missing %q:\n%s", want, got)
		}
	}
}

func TestRunHighlight_Errors(t *testing.T) {
	resetFlags()
	a, _ := newTestApp(t)

	if err := runHighlight(a, &bytes.Buffer{}, nil, []string{"testdata/missing.json"}); err == nil {
		t.Error("runHighlight() with missing file should return error")
	}
	if err := runHighlight(a, &bytes.Buffer{}, strings.NewReader("{a: [1,"), nil); err == nil {
		t.Error("runHighlight() with malformed document should return error")
	}
}

func TestDecodeDocument_Empty(t *testing.T) {
	v, err := decodeDocument(nil)
	if err != nil {
		t.Fatalf("decodeDocument() error = %v", err)
	}
	if v != nil {
		t.Errorf("decodeDocument(nil) = %v, want nil", v)
	}
}
