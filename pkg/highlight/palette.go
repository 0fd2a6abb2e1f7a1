package highlight

import (
	"fmt"
	"regexp"
)

// Slot names a colour of a palette.
type Slot string

const (
	SlotKey         Slot = "key"
	SlotString      Slot = "string"
	SlotNumber      Slot = "number"
	SlotBoolean     Slot = "boolean"
	SlotNull        Slot = "null"
	SlotBracket     Slot = "bracket"
	SlotPunctuation Slot = "punctuation"
	SlotBackground  Slot = "background"
	SlotText        Slot = "text"
)

// Palette maps token categories to hex colours.
type Palette struct {
	Name        string `yaml:"-" json:"name"`
	Key         string `yaml:"key" json:"key"`
	String      string `yaml:"string" json:"string"`
	Number      string `yaml:"number" json:"number"`
	Boolean     string `yaml:"boolean" json:"boolean"`
	Null        string `yaml:"null" json:"null"`
	Bracket     string `yaml:"bracket" json:"bracket"`
	Punctuation string `yaml:"punctuation" json:"punctuation"`
	Background  string `yaml:"background" json:"background"`
	Text        string `yaml:"text" json:"text"`
}

// DefaultPaletteName is used when no palette is selected.
const DefaultPaletteName = "dark"

var builtinPalettes = []Palette{
	{
		Name:        "light",
		Key:         "#0366d6",
		String:      "#50a14f",
		Number:      "#e45649",
		Boolean:     "#986801",
		Null:        "#e45649",
		Bracket:     "#24292e",
		Punctuation: "#24292e",
		Background:  "#f6f8fa",
		Text:        "#24292e",
	},
	{
		Name:        "dark",
		Key:         "#88c0d0",
		String:      "#a3be8c",
		Number:      "#b48ead",
		Boolean:     "#ebcb8b",
		Null:        "#bf616a",
		Bracket:     "#d8dee9",
		Punctuation: "#eceff4",
		Background:  "#2e3440",
		Text:        "#e5e9f0",
	},
	{
		Name:        "monokai",
		Key:         "#fd971f",
		String:      "#a6e22e",
		Number:      "#ae81ff",
		Boolean:     "#66d9ef",
		Null:        "#f92672",
		Bracket:     "#f8f8f2",
		Punctuation: "#f8f8f2",
		Background:  "#272822",
		Text:        "#f8f8f2",
	},
	{
		Name:        "customDark",
		Key:         "#4fc3f7",
		String:      "#ffffff",
		Number:      "#81d4fa",
		Boolean:     "#29b6f6",
		Null:        "#90a4ae",
		Bracket:     "#b0bec5",
		Punctuation: "#eceff1",
		Background:  "#0d1117",
		Text:        "#e0f7fa",
	},
}

// LookupPalette returns the built-in palette with the given name.
func LookupPalette(name string) (Palette, bool) {
	for _, p := range builtinPalettes {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// DefaultPalette returns the default built-in palette.
func DefaultPalette() Palette {
	p, _ := LookupPalette(DefaultPaletteName)
	return p
}

// PaletteNames returns the built-in palette names in registration order.
func PaletteNames() []string {
	names := make([]string, len(builtinPalettes))
	for i, p := range builtinPalettes {
		names[i] = p.Name
	}
	return names
}

// Palettes returns copies of the built-in palettes.
func Palettes() []Palette {
	out := make([]Palette, len(builtinPalettes))
	copy(out, builtinPalettes)
	return out
}

// Color returns the colour of a slot. Unknown slots use the text colour.
func (p Palette) Color(slot Slot) string {
	switch slot {
	case SlotKey:
		return p.Key
	case SlotString:
		return p.String
	case SlotNumber:
		return p.Number
	case SlotBoolean:
		return p.Boolean
	case SlotNull:
		return p.Null
	case SlotBracket:
		return p.Bracket
	case SlotPunctuation:
		return p.Punctuation
	case SlotBackground:
		return p.Background
	}
	return p.Text
}

// Slots returns every slot in display order.
func Slots() []Slot {
	return []Slot{
		SlotKey, SlotString, SlotNumber, SlotBoolean, SlotNull,
		SlotBracket, SlotPunctuation, SlotBackground, SlotText,
	}
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks that every slot holds a #rgb or #rrggbb colour.
func (p Palette) Validate() error {
	for _, slot := range Slots() {
		c := p.Color(slot)
		if !hexColor.MatchString(c) {
			return fmt.Errorf("palette %q: slot %s: invalid colour %q", p.Name, slot, c)
		}
	}
	return nil
}

// Merge returns p with every non-empty slot of override applied.
func (p Palette) Merge(override Palette) Palette {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Key, override.Key)
	set(&p.String, override.String)
	set(&p.Number, override.Number)
	set(&p.Boolean, override.Boolean)
	set(&p.Null, override.Null)
	set(&p.Bracket, override.Bracket)
	set(&p.Punctuation, override.Punctuation)
	set(&p.Background, override.Background)
	set(&p.Text, override.Text)
	if override.Name != "" {
		p.Name = override.Name
	}
	return p
}
