// Package buildcfg models the utility-CSS build configuration record:
// the content globs scanned for class usage, the theme color extension,
// and the plugin list. It loads the record from YAML or JSON, validates
// it, and resolves the extended theme into flat design tokens.
package buildcfg

// Config is the build configuration record. It is constructed by Load or
// Parse, validated, and treated as read-only afterwards; callers that need
// to hold onto one should use Clone.
type Config struct {
	Content []string `yaml:"content" json:"content"`
	Theme   Theme    `yaml:"theme" json:"theme"`
	Plugins []string `yaml:"plugins" json:"plugins"`
}

// Theme carries the design-token extension section.
type Theme struct {
	Extend Extend `yaml:"extend" json:"extend"`
}

// Extend holds tokens added alongside the built-in defaults. Extension never
// replaces a default palette wholesale; shades merge per palette with the
// extension winning on conflicts.
type Extend struct {
	Colors map[string]Palette `yaml:"colors" json:"colors"`
}

// Palette maps a shade key (conventionally numeric, e.g. "950") to a 6-digit
// hex color string. Shade keys are caller-chosen and carry no enforced order.
type Palette map[string]string

// Clone returns a deep copy of the record.
func (c Config) Clone() Config {
	out := Config{
		Content: append([]string(nil), c.Content...),
		Plugins: append([]string(nil), c.Plugins...),
	}
	if c.Theme.Extend.Colors != nil {
		out.Theme.Extend.Colors = make(map[string]Palette, len(c.Theme.Extend.Colors))
		for name, palette := range c.Theme.Extend.Colors {
			out.Theme.Extend.Colors[name] = palette.clone()
		}
	}
	return out
}

func (p Palette) clone() Palette {
	if p == nil {
		return nil
	}
	out := make(Palette, len(p))
	for shade, value := range p {
		out[shade] = value
	}
	return out
}
