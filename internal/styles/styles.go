// Package styles holds the static style-prompt table used by the transform
// pipeline. Prompts are tuned for an image-editing model: each one instructs
// the model to restyle the portrait while preserving the subject's likeness.
package styles

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var prompts = map[string]string{
	"vintage":     "Apply vintage 1970s film photograph style to this portrait: warm amber color tones, natural film grain texture, slightly faded highlights, and soft vignette edges. Maintain the person's exact facial features, expression, hairstyle, and pose while applying the vintage color treatment.",
	"comic":       "Apply bold comic book illustration style to this portrait: thick black ink outlines around features, cel-shaded flat coloring, halftone dot patterns in shadow areas, high dynamic contrast. Maintain the person's exact facial features, expression, and pose while adding the comic art rendering style.",
	"renaissance": "Add dramatic Renaissance-style chiaroscuro lighting to this portrait: warm golden light from one side casting soft shadows across the face, rich deep shadows on the opposite side. Add a dark, painterly background with subtle texture. Maintain the person's exact facial features, expression, and likeness - apply only lighting and background changes.",
	"cyberpunk":   "Add cyberpunk neon lighting effects to this portrait: bright pink and cyan rim lights on the edges of the face and hair, subtle purple ambient glow. Add a dark futuristic city background with neon signs. Maintain the person's exact facial features, expression, and pose - apply only lighting and background changes.",
	"watercolor":  "Apply delicate watercolor painting style to this portrait: soft flowing colors that blend at edges, visible paper texture throughout, gentle brushstroke effects, slightly muted pastel tones. Maintain the person's exact facial features, expression, and likeness while applying the watercolor artistic rendering.",
	"pop-art":     "Apply bold Andy Warhol-style pop art treatment to this portrait: flatten colors into bright graphic blocks, dramatically increase contrast, add halftone dot patterns in midtones and shadows, use vibrant saturated colors. Maintain the person's exact face shape, features, and expression while applying the pop art color style.",
}

// names holds display-name overrides for registered custom styles.
var names = map[string]string{}

var titleCaser = cases.Title(language.English)

// Register adds or overrides a style. Call during startup, before the
// server accepts traffic; the tables are not guarded for concurrent writes.
func Register(id, name, prompt string) {
	prompts[id] = prompt
	if name != "" {
		names[id] = name
	}
}

// Prompt returns the generation prompt for a style id.
func Prompt(styleID string) (string, bool) {
	p, ok := prompts[styleID]
	return p, ok
}

// Style describes one selectable style for gallery listings.
type Style struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List returns all configured styles sorted by id, with a human-readable
// display name derived from the id.
func List() []Style {
	out := make([]Style, 0, len(prompts))
	for id := range prompts {
		out = append(out, Style{ID: id, Name: DisplayName(id)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DisplayName turns a style id like "pop-art" into "Pop Art". Registered
// styles may carry an explicit name instead.
func DisplayName(styleID string) string {
	if name, ok := names[styleID]; ok {
		return name
	}
	return titleCaser.String(strings.ReplaceAll(styleID, "-", " "))
}
