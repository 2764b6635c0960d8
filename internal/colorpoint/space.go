package colorpoint

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorSpace names the coordinate system samples are classified in.
type ColorSpace string

const (
	// RGB keeps raw sensor readings.
	RGB ColorSpace = "rgb"
	// HSV uses hue in degrees and saturation and value in [0,1].
	HSV ColorSpace = "hsv"
	// Lab uses CIE L*a*b* under D65.
	Lab ColorSpace = "lab"
)

// ParseColorSpace reads a color space name, case-insensitively.
func ParseColorSpace(s string) (ColorSpace, error) {
	switch cs := ColorSpace(strings.ToLower(strings.TrimSpace(s))); cs {
	case RGB, HSV, Lab:
		return cs, nil
	case "":
		return RGB, nil
	default:
		return "", fmt.Errorf("colorpoint: unknown color space %q", s)
	}
}

// rgb normalizes a raw sample read on a [0, scale] range.
func rgb(p ColorPoint, scale float64) colorful.Color {
	return colorful.Color{R: p.C1 / scale, G: p.C2 / scale, B: p.C3 / scale}.Clamped()
}

// Convert re-expresses a raw sample read on a [0, scale] range in cs.
func Convert(p ColorPoint, cs ColorSpace, scale float64) ColorPoint {
	switch cs {
	case HSV:
		h, s, v := rgb(p, scale).Hsv()
		return New(h, s, v, p.Index)
	case Lab:
		l, a, b := rgb(p, scale).Lab()
		return New(l, a, b, p.Index)
	default:
		return p
	}
}

// ConvertArena converts every sample of a.
func ConvertArena(a Arena, cs ColorSpace, scale float64) Arena {
	if cs == RGB || cs == "" {
		return a
	}
	var out Arena
	for i, p := range a {
		out[i] = Convert(p, cs, scale)
	}
	return out
}

// Hex renders a raw sample read on a [0, scale] range as #rrggbb.
func Hex(p ColorPoint, scale float64) string {
	return rgb(p, scale).Hex()
}
