package ast

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"mercator-hq/tagviz/pkg/ordered"
)

func sample() Node {
	return NewOr(
		NewRange("39500", "39600"),
		NewAnd(NewTag("79500.099"), NewTag("80000")),
	)
}

func TestKind(t *testing.T) {
	tests := []struct {
		node Node
		want Kind
	}{
		{NewTag("a"), KindTag},
		{NewRange("a", "b"), KindRange},
		{NewAnd(NewTag("a"), NewTag("b")), KindAnd},
		{NewOr(NewTag("a"), NewTag("b")), KindOr},
	}
	for _, tt := range tests {
		if got := tt.node.Kind(); got != tt.want {
			t.Errorf("Kind() = %q, want %q", got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"nil", nil, ""},
		{"tag", NewTag("39500"), "39500"},
		{"range", NewRange("a", "b"), "a..b"},
		{"and", NewAnd(NewTag("a"), NewTag("b"), NewTag("c")), "a,b,c"},
		{"nested", sample(), "39500..39600||79500.099,80000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.node); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	var nilTag *Tag
	tests := []struct {
		name string
		a, b Node
		want bool
	}{
		{"both nil", nil, nil, true},
		{"typed nil equals nil", nilTag, nil, true},
		{"nil vs tag", nil, NewTag("a"), false},
		{"same tag", NewTag("a"), NewTag("a"), true},
		{"different tag", NewTag("a"), NewTag("b"), false},
		{"tag vs range", NewTag("a"), NewRange("a", "a"), false},
		{"same tree", sample(), sample(), true},
		{"child order matters", NewAnd(NewTag("a"), NewTag("b")), NewAnd(NewTag("b"), NewTag("a")), false},
		{"and vs or", NewAnd(NewTag("a"), NewTag("b")), NewOr(NewTag("a"), NewTag("b")), false},
		{"arity differs", NewOr(NewTag("a"), NewTag("b")), NewOr(NewTag("a"), NewTag("b"), NewTag("c")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClone(t *testing.T) {
	orig := sample()
	clone := Clone(orig)

	if diff := cmp.Diff(orig, clone); diff != "" {
		t.Fatalf("Clone() mismatch (-want +got):\n%s", diff)
	}

	clone.(*Or).Children[0].(*Range).From.Value = "changed"
	if got := orig.(*Or).Children[0].(*Range).From.Value; got != "39500" {
		t.Errorf("original mutated through clone: From = %q", got)
	}
}

func TestClone_NilNodes(t *testing.T) {
	for _, n := range []Node{nil, (*Tag)(nil), (*Range)(nil), (*And)(nil), (*Or)(nil)} {
		if got := Clone(n); got != n {
			t.Errorf("Clone(%#v) = %#v, want the same nil node", n, got)
		}
	}

	got := Clone(NewOr(NewTag("a"), (*And)(nil)))
	if children := got.(*Or).Children; len(children) != 2 || children[1] != Node((*And)(nil)) {
		t.Errorf("Clone() children = %#v", children)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr string
	}{
		{"valid", sample(), ""},
		{"nil", nil, "nil node"},
		{"single child and", NewAnd(NewTag("a")), "AND has 1 children"},
		{"nested or", NewOr(NewTag("a"), NewOr(NewTag("b"), NewTag("c"))), "OR directly inside OR"},
		{"nested and", NewAnd(NewTag("a"), NewAnd(NewTag("b"), NewTag("c"))), "AND directly inside AND"},
		{"or inside and", NewAnd(NewTag("a"), NewOr(NewTag("b"), NewTag("c"))), ""},
		{"missing endpoint", &Range{From: NewTag("a")}, "range endpoint is nil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.node)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

type recorder struct {
	kinds []Kind
	stop  Kind
}

var errStop = errors.New("stop")

func (r *recorder) visit(k Kind) error {
	r.kinds = append(r.kinds, k)
	if k == r.stop {
		return errStop
	}
	return nil
}

func (r *recorder) VisitTag(*Tag) error     { return r.visit(KindTag) }
func (r *recorder) VisitRange(*Range) error { return r.visit(KindRange) }
func (r *recorder) VisitAnd(*And) error     { return r.visit(KindAnd) }
func (r *recorder) VisitOr(*Or) error       { return r.visit(KindOr) }

func TestWalk(t *testing.T) {
	r := &recorder{}
	if err := Walk(sample(), r); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	want := []Kind{KindOr, KindRange, KindTag, KindTag, KindAnd, KindTag, KindTag}
	if diff := cmp.Diff(want, r.kinds); diff != "" {
		t.Errorf("visit order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	r := &recorder{stop: KindAnd}
	if err := Walk(sample(), r); !errors.Is(err, errStop) {
		t.Fatalf("Walk() error = %v, want %v", err, errStop)
	}
	if last := r.kinds[len(r.kinds)-1]; last != KindAnd {
		t.Errorf("last visited = %q, want %q", last, KindAnd)
	}
}

func TestWalk_NilNodes(t *testing.T) {
	r := &recorder{}
	tree := NewOr((*Range)(nil), NewAnd(NewTag("a"), (*Or)(nil)), nil)
	if err := Walk(tree, r); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	want := []Kind{KindOr, KindAnd, KindTag}
	if diff := cmp.Diff(want, r.kinds); diff != "" {
		t.Errorf("visit order mismatch (-want +got):\n%s", diff)
	}
	if got := Collect((*And)(nil)); got != (Stats{}) {
		t.Errorf("Collect(nil And) = %+v, want zero", got)
	}
}

func TestCollect(t *testing.T) {
	got := Collect(sample())
	want := Stats{Tags: 4, Ranges: 1, Ands: 1, Ors: 1, Depth: 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Collect() mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(sample())
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"type":"OR","children":[` +
		`{"type":"RANGE","from":{"type":"TAG","value":"39500"},"to":{"type":"TAG","value":"39600"}},` +
		`{"type":"AND","children":[{"type":"TAG","value":"79500.099"},{"type":"TAG","value":"80000"}]}]}`
	if string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}
}

func TestMarshalJSON_NoHTMLEscape(t *testing.T) {
	data, err := NewAnd(NewTag("a<b"), NewTag("c&d")).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	want := `{"type":"AND","children":[{"type":"TAG","value":"a<b"},{"type":"TAG","value":"c&d"}]}`
	if string(data) != want {
		t.Errorf("MarshalJSON() = %s, want %s", data, want)
	}
}

func TestMarshalYAML_KeepsKeyOrder(t *testing.T) {
	data, err := yaml.Marshal(NewRange("a", "b"))
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	want := "type: RANGE\nfrom:\n    type: TAG\n    value: a\nto:\n    type: TAG\n    value: b\n"
	if string(data) != want {
		t.Errorf("yaml.Marshal() =\n%s\nwant\n%s", data, want)
	}
}

func TestFromValue_RoundTrip(t *testing.T) {
	orig := sample()
	got := FromValue(ToValue(orig))
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Errorf("FromValue(ToValue()) mismatch (-want +got):\n%s", diff)
	}
}

func TestFromValue_DecodedJSON(t *testing.T) {
	data, err := json.Marshal(sample())
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got := FromValue(generic); !Equal(got, sample()) {
		t.Errorf("FromValue() = %s, want %s", String(got), String(sample()))
	}
}

func TestFromValue_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"string", "TAG"},
		{"unknown type", map[string]any{"type": "XOR"}},
		{"missing type", ordered.New(ordered.Pair{Key: "value", Value: "a"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromValue(tt.input)
			if diff := cmp.Diff(Node(&Tag{}), got); diff != "" {
				t.Errorf("FromValue() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToValue_Nil(t *testing.T) {
	if got := ToValue(nil); got != nil {
		t.Errorf("ToValue(nil) = %v, want nil", got)
	}
}
