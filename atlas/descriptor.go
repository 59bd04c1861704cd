package atlas

import (
	"fmt"
	"math"
	"strings"
)

// Style is the font style requested from the rasterizer.
type Style uint8

const (
	StyleNormal Style = iota
	StyleBold
	StyleItalic
	StyleBoldItalic
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleNormal:
		return "normal"
	case StyleBold:
		return "bold"
	case StyleItalic:
		return "italic"
	case StyleBoldItalic:
		return "bold-italic"
	default:
		return fmt.Sprintf("Style(%d)", s)
	}
}

// ParseStyle parses a style name as produced by Style.String.
// "plain" and "regular" are accepted for StyleNormal.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "plain", "regular":
		return StyleNormal, nil
	case "bold":
		return StyleBold, nil
	case "italic":
		return StyleItalic, nil
	case "bold-italic", "bolditalic", "bold italic":
		return StyleBoldItalic, nil
	}
	return StyleNormal, &DescriptorError{Field: "Style", Reason: fmt.Sprintf("unknown style %q", s)}
}

// FontDescriptor is the configuration of a font face: family name, style,
// pixel size, antialiasing and extra horizontal spacing per glyph.
type FontDescriptor struct {
	Family    string
	Style     Style
	Size      float64
	AntiAlias bool
	Spacing   float64
}

// Margin returns the gap between packed glyphs and page edges: floor(Size/5).
func (d FontDescriptor) Margin() float64 {
	return math.Floor(d.Size / 5)
}

// Validate checks the descriptor for usable values.
func (d FontDescriptor) Validate() error {
	if d.Size <= 0 || math.IsNaN(d.Size) || math.IsInf(d.Size, 0) {
		return &DescriptorError{Field: "Size", Reason: "must be positive"}
	}
	if d.Size > PageSize {
		return &DescriptorError{Field: "Size", Reason: "must not exceed the page size"}
	}
	if d.Spacing < 0 || math.IsNaN(d.Spacing) {
		return &DescriptorError{Field: "Spacing", Reason: "must be non-negative"}
	}
	if d.Style > StyleBoldItalic {
		return &DescriptorError{Field: "Style", Reason: "unknown style"}
	}
	return nil
}

// WithFamily returns a copy of the descriptor using another family.
func (d FontDescriptor) WithFamily(family string) FontDescriptor {
	d.Family = family
	return d
}

// String returns a compact description such as "Go bold 24px".
func (d FontDescriptor) String() string {
	return fmt.Sprintf("%s %s %gpx", d.Family, d.Style, d.Size)
}

// DescriptorError represents an invalid font descriptor.
type DescriptorError struct {
	Field  string
	Reason string
}

func (e *DescriptorError) Error() string {
	return "atlas: invalid font descriptor." + e.Field + ": " + e.Reason
}
