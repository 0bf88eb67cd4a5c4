package config

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Color is an RGBA color with components in [0, 1]. In YAML it is written
// as an SVG color name ("cornflowerblue"), a hex string ("#389ee8" or
// "#389ee8ff") or a sequence of three or four floats.
type Color mgl32.Vec4

// Vec4 returns c for use as a clear color or vertex color
func (c Color) Vec4() mgl32.Vec4 { return mgl32.Vec4(c) }

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseColor(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*c = parsed
		return nil
	case yaml.SequenceNode:
		var parts []float32
		if err := value.Decode(&parts); err != nil {
			return err
		}
		switch len(parts) {
		case 3:
			*c = Color{parts[0], parts[1], parts[2], 1}
		case 4:
			*c = Color{parts[0], parts[1], parts[2], parts[3]}
		default:
			return fmt.Errorf("line %d: color needs 3 or 4 components, got %d", value.Line, len(parts))
		}
		return nil
	}
	return fmt.Errorf("line %d: color must be a name, hex string or list", value.Line)
}

// ParseColor parses a color name or a #rrggbb / #rrggbbaa hex string
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		raw, err := hex.DecodeString(s[1:])
		if err != nil || (len(raw) != 3 && len(raw) != 4) {
			return Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		c := Color{float32(raw[0]) / 255, float32(raw[1]) / 255, float32(raw[2]) / 255, 1}
		if len(raw) == 4 {
			c[3] = float32(raw[3]) / 255
		}
		return c, nil
	}

	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}
	return Color{
		float32(named.R) / 255,
		float32(named.G) / 255,
		float32(named.B) / 255,
		float32(named.A) / 255,
	}, nil
}
