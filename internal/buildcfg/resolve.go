package buildcfg

import (
	"sort"
	"strconv"
)

// Token is a single resolved design token, e.g. {Name: "panel-950",
// Value: "#0b1220"}.
type Token struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ResolvedTheme is the merge of the built-in palettes with the record's
// theme extension, flattened into a deterministic token list.
type ResolvedTheme struct {
	Colors map[string]Palette `json:"colors"`
	Tokens []Token            `json:"tokens"`
}

// Clone returns a deep copy of the resolved theme.
func (r ResolvedTheme) Clone() ResolvedTheme {
	out := ResolvedTheme{
		Tokens: append([]Token(nil), r.Tokens...),
	}
	if r.Colors != nil {
		out.Colors = make(map[string]Palette, len(r.Colors))
		for name, palette := range r.Colors {
			out.Colors[name] = palette.clone()
		}
	}
	return out
}

// ResolveTheme merges Theme.Extend.Colors over the built-in defaults.
// Extension adds palettes and shades alongside the defaults; on a shade
// conflict the extension wins. Tokens are ordered by palette name, then by
// shade key (numeric keys first in ascending order, then the rest lexically).
func (c Config) ResolveTheme() ResolvedTheme {
	colors := DefaultColors()
	for name, palette := range c.Theme.Extend.Colors {
		merged, ok := colors[name]
		if !ok {
			merged = make(Palette, len(palette))
		}
		for shade, value := range palette {
			merged[shade] = value
		}
		colors[name] = merged
	}

	return ResolvedTheme{
		Colors: colors,
		Tokens: flattenTokens(colors),
	}
}

func flattenTokens(colors map[string]Palette) []Token {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	var tokens []Token
	for _, name := range names {
		palette := colors[name]
		shades := make([]string, 0, len(palette))
		for shade := range palette {
			shades = append(shades, shade)
		}
		sort.Slice(shades, func(i, j int) bool {
			return lessShade(shades[i], shades[j])
		})
		for _, shade := range shades {
			tokens = append(tokens, Token{
				Name:  tokenName(name, shade),
				Value: palette[shade],
			})
		}
	}
	return tokens
}

// tokenName joins palette and shade as "<palette>-<shade>"; an empty shade
// key names the palette's single value directly (white, black).
func tokenName(palette, shade string) string {
	if shade == "" {
		return palette
	}
	return palette + "-" + shade
}

// lessShade orders numeric shade keys ascending and places non-numeric keys
// after them, compared lexically.
func lessShade(a, b string) bool {
	av, aErr := strconv.Atoi(a)
	bv, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return av < bv
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}
