// Command glyphdemo renders sample text through the glyph atlas with the
// software backend and writes the result, and optionally the atlas pages,
// as PNG files.
//
// The built-in Go fonts have no CJK or Hebrew glyphs; those lines draw the
// fallback glyph unless a covering font is passed with -font.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/glyphfont"
	"github.com/gogpu/glyphfont/atlas"
	"github.com/gogpu/glyphfont/backend"
	"github.com/gogpu/glyphfont/backend/software"
	"github.com/gogpu/glyphfont/rasterize"
)

var samples = []string{
	"The quick brown fox jumps over the lazy dog",
	"Съешь же ещё этих мягких французских булок",
	"Ξεσκεπάζω την ψυχοφθόρα βδελυγμία",
	"0123456789 !?&@#%",
	"日本語のテキスト",
	"שלום עולם",
}

func main() {
	var (
		size     = flag.Float64("size", 24, "font size in pixels")
		family   = flag.String("family", "Go", "font family")
		style    = flag.String("style", "normal", "font style: normal, bold, italic, bold-italic")
		fontFile = flag.String("font", "", "TrueType/OpenType file registered under -family")
		mode     = flag.String("mode", "unicode", "block mode: unicode or legacy")
		pages    = flag.String("pages", "", "directory receiving one PNG per atlas page")
		limit    = flag.Int("limit", 0, "maximum resident pages (0 = unbounded)")
		output   = flag.String("output", "glyphdemo.png", "output file")
		verbose  = flag.Bool("v", false, "log atlas activity")
	)
	flag.Parse()

	if *verbose {
		glyphfont.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	st, err := atlas.ParseStyle(*style)
	if err != nil {
		log.Fatalf("Invalid style: %v", err)
	}
	var blockMode atlas.BlockMode
	switch *mode {
	case "unicode":
		blockMode = atlas.BlockModeUnicode
	case "legacy":
		blockMode = atlas.BlockModeLegacy
	default:
		log.Fatalf("Invalid mode %q", *mode)
	}

	lib := rasterize.NewLibrary()
	if *fontFile != "" {
		if err := lib.RegisterFile(*family, st, *fontFile); err != nil {
			log.Fatalf("Failed to load font: %v", err)
		}
	}

	be, up, err := backend.Open(backend.BackendSoftware)
	if err != nil {
		log.Fatalf("Failed to open backend: %v", err)
	}
	defer be.Close()

	desc := glyphfont.FontDescriptor{Family: *family, Style: st, Size: *size, AntiAlias: true}
	font, err := glyphfont.NewFont(desc, up,
		glyphfont.WithRasterizer(rasterize.NewOpenType(lib)),
		glyphfont.WithBlockMode(blockMode),
		glyphfont.WithPageLimit(*limit),
	)
	if err != nil {
		log.Fatalf("Failed to create font: %v", err)
	}
	defer font.Close()

	canvas, err := render(font)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := canvas.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	if *pages != "" {
		if err := dumpPages(font, *pages); err != nil {
			log.Fatalf("Failed to dump pages: %v", err)
		}
	}

	s := font.Stats()
	log.Printf("Demo saved to %s (%dx%d)", *output, canvas.Image().Bounds().Dx(), canvas.Image().Bounds().Dy())
	log.Printf("Atlas: %d pages, %d builds, %d evictions, hit rate %.2f",
		s.Pages, s.Builds, s.Evictions, s.HitRate())
}

func render(font *glyphfont.Font) (*software.Canvas, error) {
	lh, err := font.LineHeight()
	if err != nil {
		return nil, err
	}
	pad := lh / 2

	width := 0.0
	for _, s := range samples {
		w, err := font.MeasureWidth(s)
		if err != nil {
			return nil, err
		}
		width = max(width, w)
	}
	height := float64(len(samples))*lh + 2*pad

	canvas := software.NewCanvas(int(width+2*pad), int(height))
	canvas.Fill(glyphfont.RGB(0x1E1E2E))

	colors := []color.Color{
		glyphfont.RGB(0xCDD6F4),
		glyphfont.RGB(0xF38BA8),
		glyphfont.RGB(0xA6E3A1),
		glyphfont.RGB(0xF9E2AF),
	}
	y := pad
	for i, s := range samples {
		if _, err := font.DrawString(canvas, s, pad, y, colors[i%len(colors)]); err != nil {
			return nil, err
		}
		y += lh
	}
	return canvas, nil
}

func dumpPages(font *glyphfont.Font, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	seen := make(map[atlas.BlockID]bool)
	for _, s := range samples {
		for _, r := range s {
			page, _, err := font.Lookup(r)
			if err != nil {
				return err
			}
			id := page.Block()
			if seen[id] {
				continue
			}
			seen[id] = true

			tex, ok := page.Texture().(*software.Texture)
			if !ok {
				return fmt.Errorf("page %s has texture %T", id, page.Texture())
			}
			path := filepath.Join(dir, fmt.Sprintf("block_%04X.png", id.First()))
			if err := software.SavePNG(path, tex.Image()); err != nil {
				return err
			}
			log.Printf("Block %s (%s) written to %s", id, rasterize.BlockScript(id), path)
		}
	}
	return nil
}
