package buildcfg

// defaultColors is the built-in palette set that theme extensions supplement.
// Kept deliberately small: a neutral ramp plus the two absolutes.
var defaultColors = map[string]Palette{
	"gray": {
		"50":  "#f9fafb",
		"100": "#f3f4f6",
		"500": "#6b7280",
		"900": "#111827",
	},
	"white": {"": "#ffffff"},
	"black": {"": "#000000"},
}

// DefaultColors returns a deep copy of the built-in palettes.
func DefaultColors() map[string]Palette {
	out := make(map[string]Palette, len(defaultColors))
	for name, palette := range defaultColors {
		out[name] = palette.clone()
	}
	return out
}

// Scaffold returns the record a fresh project starts from: the top-level
// index.html plus the recursive source-tree glob, a four-shade "panel"
// palette, and no plugins.
func Scaffold() Config {
	return Config{
		Content: []string{
			"./index.html",
			"./src/**/*.{html,js,jsx,ts,tsx}",
		},
		Theme: Theme{
			Extend: Extend{
				Colors: map[string]Palette{
					"panel": {
						"950": "#0b1220",
						"900": "#0f172a",
						"800": "#111c33",
						"700": "#182341",
					},
				},
			},
		},
		Plugins: []string{},
	}
}
