// Package style models the "Style DNA" record and the free-text documents
// users edit it through.
package style

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Description is the structured Style DNA produced by automated analysis.
// Every leaf is present after analysis, possibly as an empty string or array.
type Description struct {
	OverallAesthetic      string             `json:"overallAesthetic"`
	ColorPalette          ColorPalette       `json:"colorPalette"`
	MaterialAndTexture    MaterialAndTexture `json:"materialAndTexture"`
	Lighting              Lighting           `json:"lighting"`
	Composition           Composition        `json:"composition"`
	PostProcessingEffects []string           `json:"postProcessingEffects"`
}

type ColorPalette struct {
	DominantColors   []string `json:"dominantColors"`
	AccentColors     []string `json:"accentColors"`
	UsageDescription string   `json:"usageDescription"`
	ColorWeight      string   `json:"colorWeight"`
}

type MaterialAndTexture struct {
	Material       string `json:"material"`
	SurfaceTexture string `json:"surfaceTexture"`
	Brushwork      string `json:"brushwork"`
}

type Lighting struct {
	Style   string   `json:"style"`
	Effects []string `json:"effects"`
}

type Composition struct {
	ShapeLanguage       string `json:"shapeLanguage"`
	DepthAndPerspective string `json:"depthAndPerspective"`
	Complexity          string `json:"complexity"`
}

// Doc is a style document as the user last left it: either a parsed
// Structured record or opaque Raw text. Consumers switch on the concrete type.
type Doc interface {
	// Text returns the document exactly as it was supplied.
	Text() string
	isDoc()
}

// Raw is style text that does not parse as a Description.
type Raw struct {
	Value string
}

func (r Raw) Text() string { return r.Value }
func (Raw) isDoc()         {}

// Structured is style text that parsed as a Description. Source keeps the
// original text so it can be embedded verbatim.
type Structured struct {
	Description Description
	Source      string
}

func (s Structured) Text() string { return s.Source }
func (Structured) isDoc()         {}

// Parse classifies text. Any JSON value other than null is Structured and
// its fields are read leniently: a mistyped leaf is rendered as text or left
// empty, and a non-object value yields an empty Description. Everything else,
// including blank text, is Raw.
func Parse(text string) Doc {
	trimmed := strings.TrimSpace(text)
	if !json.Valid([]byte(trimmed)) {
		return Raw{Value: text}
	}
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || v == nil {
		return Raw{Value: text}
	}
	root, _ := v.(map[string]any)
	return Structured{Description: describe(root), Source: text}
}

func describe(root map[string]any) Description {
	palette := object(root, "colorPalette")
	material := object(root, "materialAndTexture")
	lighting := object(root, "lighting")
	composition := object(root, "composition")
	return Description{
		OverallAesthetic: leaf(root["overallAesthetic"]),
		ColorPalette: ColorPalette{
			DominantColors:   list(palette["dominantColors"]),
			AccentColors:     list(palette["accentColors"]),
			UsageDescription: leaf(palette["usageDescription"]),
			ColorWeight:      leaf(palette["colorWeight"]),
		},
		MaterialAndTexture: MaterialAndTexture{
			Material:       leaf(material["material"]),
			SurfaceTexture: leaf(material["surfaceTexture"]),
			Brushwork:      leaf(material["brushwork"]),
		},
		Lighting: Lighting{
			Style:   leaf(lighting["style"]),
			Effects: list(lighting["effects"]),
		},
		Composition: Composition{
			ShapeLanguage:       leaf(composition["shapeLanguage"]),
			DepthAndPerspective: leaf(composition["depthAndPerspective"]),
			Complexity:          leaf(composition["complexity"]),
		},
		PostProcessingEffects: list(root["postProcessingEffects"]),
	}
}

func object(m map[string]any, key string) map[string]any {
	o, _ := m[key].(map[string]any)
	return o
}

// leaf renders a JSON value the way it reads inside a sentence. Zero numbers,
// false, null, and objects are empty; arrays join their elements with a comma.
func leaf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return ""
		}
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return ""
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = element(e)
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// element renders an array member. Unlike a leaf, zero and false keep their
// text.
func element(v any) string {
	switch t := v.(type) {
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return leaf(v)
	}
}

// list reads an array leaf. A scalar becomes a single element.
func list(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := element(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := leaf(t); s != "" {
			return []string{s}
		}
		return nil
	}
}

// IsEmpty reports whether doc carries no text at all.
func IsEmpty(doc Doc) bool {
	return doc == nil || doc.Text() == ""
}

// Pretty re-indents valid JSON with two spaces and returns anything else
// trimmed but otherwise untouched.
func Pretty(text string) string {
	trimmed := strings.TrimSpace(text)
	if !json.Valid([]byte(trimmed)) {
		return trimmed
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(trimmed), "", "  "); err != nil {
		return trimmed
	}
	return buf.String()
}
