package rasterize

import (
	"testing"

	"github.com/go-text/typesetting/language"

	"github.com/gogpu/glyphfont/atlas"
)

func TestCoverageCovers(t *testing.T) {
	c := NewCoverage(NewLibrary())
	tests := []struct {
		cp   rune
		want bool
	}{
		{'A', true},
		{'z', true},
		{0x416, true},
		{0x4E2D, false},
		{0x1F600, false},
	}
	for _, tt := range tests {
		got, err := c.Covers("Go", atlas.StyleNormal, tt.cp)
		if err != nil {
			t.Fatalf("Covers(%U) error = %v", tt.cp, err)
		}
		if got != tt.want {
			t.Errorf("Covers(%U) = %v, want %v", tt.cp, got, tt.want)
		}
	}
}

func TestCoverageCount(t *testing.T) {
	c := NewCoverage(NewLibrary())
	latin, err := c.Count("Go", atlas.StyleNormal, 0)
	if err != nil {
		t.Fatal(err)
	}
	if latin < 150 {
		t.Errorf("Count(block 0) = %d, want most of Latin-1", latin)
	}
	cjk, _ := c.Count("Go", atlas.StyleNormal, 0x4E)
	if cjk != 0 {
		t.Errorf("Count(block 0x4E) = %d, want 0", cjk)
	}
	again, _ := c.Count("Go", atlas.StyleNormal, 0)
	if again != latin {
		t.Errorf("cached Count = %d, want %d", again, latin)
	}
	if _, err := c.Count("Nope", atlas.StyleNormal, 0); err == nil {
		t.Error("Count(unknown family) error = nil")
	}
}

func TestCoverageFace(t *testing.T) {
	sel := CoverageFace(NewCoverage(NewLibrary()), "Unregistered", "Go Mono")

	desc := atlas.FontDescriptor{Family: "Go", Size: 16}
	if got := sel(0, desc).Family; got != "Go" {
		t.Errorf("block 0 family = %q, want configured Go", got)
	}

	missing := atlas.FontDescriptor{Family: "Missing", Size: 16}
	if got := sel(4, missing).Family; got != "Go Mono" {
		t.Errorf("block 4 family = %q, want Go Mono", got)
	}
	// Cached per block.
	if got := sel(4, missing).Family; got != "Go Mono" {
		t.Errorf("cached block 4 family = %q", got)
	}
}

func TestBlockScript(t *testing.T) {
	tests := []struct {
		id   atlas.BlockID
		want language.Script
	}{
		{0, language.Latin},
		{4, language.Cyrillic},
		{0x4E, language.Han},
	}
	for _, tt := range tests {
		if got := BlockScript(tt.id); got != tt.want {
			t.Errorf("BlockScript(%v) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
