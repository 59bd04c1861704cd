package rasterize

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphfont/atlas"
)

func TestNewLibraryBuiltins(t *testing.T) {
	lib := NewLibrary()
	if got := lib.Families(); !slices.Equal(got, []string{"go", "go mono"}) {
		t.Errorf("Families() = %v, want [go go mono]", got)
	}

	for _, style := range []atlas.Style{atlas.StyleNormal, atlas.StyleBold, atlas.StyleItalic, atlas.StyleBoldItalic} {
		src, err := lib.Lookup("Go", style)
		if err != nil {
			t.Fatalf("Lookup(Go, %v) error = %v", style, err)
		}
		if src.Name != "Go" {
			t.Errorf("Lookup(Go, %v).Name = %q, want Go", style, src.Name)
		}
	}
	normal, _ := lib.Lookup("Go", atlas.StyleNormal)
	bold, _ := lib.Lookup("Go", atlas.StyleBold)
	if normal == bold {
		t.Error("bold resolved to the normal font")
	}
}

func TestLibraryAliases(t *testing.T) {
	lib := NewLibrary()
	goSrc, _ := lib.Lookup("go", atlas.StyleNormal)
	for _, alias := range []string{"DEFAULT", "sans-serif", "SansSerif", "  GO  "} {
		src, err := lib.Lookup(alias, atlas.StyleNormal)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", alias, err)
		}
		if src != goSrc {
			t.Errorf("Lookup(%q) did not resolve to Go", alias)
		}
	}
	mono, _ := lib.Lookup("monospace", atlas.StyleNormal)
	if mono.Name != "Go Mono" {
		t.Errorf("monospace resolved to %q", mono.Name)
	}
}

func TestLibraryErrors(t *testing.T) {
	lib := NewEmptyLibrary()
	if _, err := lib.Lookup("Go", atlas.StyleNormal); !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("Lookup on empty library error = %v, want ErrUnknownFamily", err)
	}
	if err := lib.Register(" ", atlas.StyleNormal, goregular.TTF); !errors.Is(err, ErrEmptyFamily) {
		t.Errorf("Register(empty family) error = %v", err)
	}
	if err := lib.Register("Junk", atlas.StyleNormal, []byte("not a font")); err == nil {
		t.Error("Register(junk) error = nil")
	}
	if err := lib.RegisterFile("Missing", atlas.StyleNormal, filepath.Join(t.TempDir(), "nope.ttf")); err == nil {
		t.Error("RegisterFile(missing) error = nil")
	}
}

func TestLibraryStyleFallback(t *testing.T) {
	lib := NewEmptyLibrary()
	if err := lib.Register("Mono", atlas.StyleNormal, gomono.TTF); err != nil {
		t.Fatal(err)
	}
	normal, _ := lib.Lookup("Mono", atlas.StyleNormal)
	bold, err := lib.Lookup("Mono", atlas.StyleBold)
	if err != nil {
		t.Fatalf("Lookup(bold) error = %v", err)
	}
	if bold != normal {
		t.Error("missing bold style did not fall back to normal")
	}
}

func TestLibraryRegisterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	lib := NewEmptyLibrary()
	if err := lib.RegisterFile("Custom", atlas.StyleNormal, path); err != nil {
		t.Fatalf("RegisterFile() error = %v", err)
	}
	src, err := lib.Lookup("custom", atlas.StyleNormal)
	if err != nil {
		t.Fatal(err)
	}
	if src.Name != "Go" {
		t.Errorf("Name = %q, want Go", src.Name)
	}
}
