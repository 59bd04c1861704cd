package rasterize

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/glyphfont/atlas"
)

// Source is one registered font file.
type Source struct {
	// Data is the raw TrueType/OpenType data.
	Data []byte

	// Font is the parsed font.
	Font *opentype.Font

	// Name is the family name stored in the font, if any.
	Name string
}

// Library maps family names and styles to fonts. Family names are matched
// case-insensitively.
//
// Library is safe for concurrent use.
type Library struct {
	mu      sync.RWMutex
	fonts   map[string]map[atlas.Style]*Source
	aliases map[string]string
}

// NewLibrary creates a library holding the Go font families:
// "Go" and "Go Mono", each in all four styles, plus the aliases
// "DEFAULT", "sans-serif", "SansSerif" and "monospace".
func NewLibrary() *Library {
	l := NewEmptyLibrary()
	builtin := []struct {
		family string
		style  atlas.Style
		data   []byte
	}{
		{"Go", atlas.StyleNormal, goregular.TTF},
		{"Go", atlas.StyleBold, gobold.TTF},
		{"Go", atlas.StyleItalic, goitalic.TTF},
		{"Go", atlas.StyleBoldItalic, gobolditalic.TTF},
		{"Go Mono", atlas.StyleNormal, gomono.TTF},
		{"Go Mono", atlas.StyleBold, gomonobold.TTF},
		{"Go Mono", atlas.StyleItalic, gomonoitalic.TTF},
		{"Go Mono", atlas.StyleBoldItalic, gomonobolditalic.TTF},
	}
	for _, b := range builtin {
		if err := l.Register(b.family, b.style, b.data); err != nil {
			// The embedded Go fonts always parse.
			panic(err)
		}
	}
	l.Alias("DEFAULT", "Go")
	l.Alias("sans-serif", "Go")
	l.Alias("SansSerif", "Go")
	l.Alias("monospace", "Go Mono")
	return l
}

// NewEmptyLibrary creates a library with no fonts.
func NewEmptyLibrary() *Library {
	return &Library{
		fonts:   make(map[string]map[atlas.Style]*Source),
		aliases: make(map[string]string),
	}
}

// Register parses data and stores it under family and style, replacing any
// font registered there before.
func (l *Library) Register(family string, style atlas.Style, data []byte) error {
	if strings.TrimSpace(family) == "" {
		return ErrEmptyFamily
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("rasterize: failed to parse font %q: %w", family, err)
	}
	src := &Source{Data: data, Font: f}
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		src.Name = name
	}

	key := normalizeFamily(family)
	l.mu.Lock()
	defer l.mu.Unlock()
	styles, ok := l.fonts[key]
	if !ok {
		styles = make(map[atlas.Style]*Source)
		l.fonts[key] = styles
	}
	styles[style] = src
	return nil
}

// RegisterFile reads a font file and registers it.
func (l *Library) RegisterFile(family string, style atlas.Style, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("rasterize: failed to read font file: %w", err)
	}
	return l.Register(family, style, data)
}

// Alias makes alias resolve to family.
func (l *Library) Alias(alias, family string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.aliases[normalizeFamily(alias)] = normalizeFamily(family)
}

// Lookup returns the font for family and style. A family without the
// requested style falls back to its normal style.
func (l *Library) Lookup(family string, style atlas.Style) (*Source, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	key := normalizeFamily(family)
	if target, ok := l.aliases[key]; ok {
		key = target
	}
	styles, ok := l.fonts[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}
	if src, ok := styles[style]; ok {
		return src, nil
	}
	if src, ok := styles[atlas.StyleNormal]; ok {
		return src, nil
	}
	// Any style is better than none.
	for s := atlas.StyleNormal; s <= atlas.StyleBoldItalic; s++ {
		if src, ok := styles[s]; ok {
			return src, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
}

// Families returns the registered family keys in sorted order. Aliases are
// not included.
func (l *Library) Families() []string {
	l.mu.RLock()
	names := make([]string, 0, len(l.fonts))
	for name := range l.fonts {
		names = append(names, name)
	}
	l.mu.RUnlock()
	slices.Sort(names)
	return names
}

// normalizeFamily folds case and surrounding space of a family name.
func normalizeFamily(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}
