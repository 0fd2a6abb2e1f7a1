package ordered

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestMap_SetKeepsFirstPosition(t *testing.T) {
	m := New(Pair{"b", 1}, Pair{"a", 2})
	m.Set("c", 3)
	m.Set("b", 10)

	if diff := cmp.Diff([]string{"b", "a", "c"}, m.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if v, ok := m.Get("b"); !ok || v != 10 {
		t.Errorf("Get(b) = %v, %v; want 10, true", v, ok)
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestMap_ZeroAndNil(t *testing.T) {
	var zero Map
	zero.Set("k", "v")
	if zero.Len() != 1 {
		t.Errorf("zero Map Len() = %d, want 1", zero.Len())
	}

	var m *Map
	if m.Len() != 0 || m.Keys() != nil || m.Pairs() != nil {
		t.Error("nil Map should behave as empty")
	}
	if _, ok := m.Get("k"); ok {
		t.Error("nil Map Get() reported a value")
	}
	data, err := json.Marshal(m)
	if err != nil || string(data) != "null" {
		t.Errorf("json.Marshal(nil) = %s, %v; want null", data, err)
	}
}

func TestMap_PairsIsCopy(t *testing.T) {
	m := New(Pair{"a", 1})
	pairs := m.Pairs()
	pairs[0].Value = 99
	if v, _ := m.Get("a"); v != 1 {
		t.Errorf("mutating Pairs() changed the map: a = %v", v)
	}
}

func TestMap_MarshalJSON(t *testing.T) {
	m := New(
		Pair{"z", "<b>&"},
		Pair{"a", []any{1, New(Pair{"y", true}, Pair{"x", nil})}},
	)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := `{"z":"<b>&","a":[1,{"y":true,"x":null}]}` + "\n"
	if buf.String() != want {
		t.Errorf("Encode() = %s, want %s", buf.String(), want)
	}

	direct, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(direct) != strings.TrimSuffix(want, "\n") {
		t.Errorf("MarshalJSON() = %s, want %s", direct, want)
	}
}

func TestMap_MarshalJSONError(t *testing.T) {
	m := New(Pair{"ch", make(chan int)})
	if _, err := json.Marshal(m); err == nil {
		t.Error("json.Marshal() with unsupported value should fail")
	}
}

func TestMap_MarshalYAML(t *testing.T) {
	m := New(Pair{"type", "RANGE"}, Pair{"from", New(Pair{"value", "39500"})})
	data, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	want := "type: RANGE\nfrom:\n    value: \"39500\"\n"
	if string(data) != want {
		t.Errorf("yaml.Marshal() =\n%s\nwant\n%s", data, want)
	}
}
