package cli

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, %v; want %q, wantErr %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestTextFormatter(t *testing.T) {
	formatter := &TextFormatter{}

	output, err := formatter.Format("test message")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if string(output) != "test message\n" {
		t.Errorf("Format() = %q, want %q", string(output), "test message\n")
	}

	buf := &bytes.Buffer{}
	if err := formatter.FormatTo(buf, 42); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if buf.String() != "42\n" {
		t.Errorf("FormatTo() = %q, want %q", buf.String(), "42\n")
	}
}

func TestJSONFormatter(t *testing.T) {
	data := sample{Name: "a<b", Count: 2}

	compact, err := (&JSONFormatter{}).Format(data)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if string(compact) != `{"name":"a<b","count":2}` {
		t.Errorf("Format() = %s", compact)
	}

	buf := &bytes.Buffer{}
	if err := (&JSONFormatter{Indent: true}).FormatTo(buf, data); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	want := "{\n  \"name\": \"a<b\",\n  \"count\": 2\n}\n"
	if buf.String() != want {
		t.Errorf("FormatTo() = %q, want %q", buf.String(), want)
	}
}

func TestYAMLFormatter(t *testing.T) {
	data := map[string][]sample{"items": {{Name: "x", Count: 1}}}

	output, err := (&YAMLFormatter{}).Format(data)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "items:\n  - name: x\n    count: 1\n"
	if string(output) != want {
		t.Errorf("Format() = %q, want %q", output, want)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatText, "*cli.TextFormatter"},
		{FormatJSON, "*cli.JSONFormatter"},
		{FormatYAML, "*cli.YAMLFormatter"},
		{"unknown", "*cli.TextFormatter"},
	}
	for _, tt := range tests {
		got := strings.TrimSpace(typeName(NewFormatter(tt.format)))
		if got != tt.want {
			t.Errorf("NewFormatter(%q) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case *TextFormatter:
		return "*cli.TextFormatter"
	case *JSONFormatter:
		return "*cli.JSONFormatter"
	case *YAMLFormatter:
		return "*cli.YAMLFormatter"
	}
	return "unknown"
}
