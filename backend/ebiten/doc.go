// Package ebiten puts glyph atlas pages on Ebitengine images and draws text
// quads with DrawTriangles.
//
//	import glyphebiten "github.com/gogpu/glyphfont/backend/ebiten"
//
//	up := glyphebiten.NewUploader()
//	f, err := glyphfont.NewFont(desc, up)
//	...
//	func (g *Game) Draw(screen *ebiten.Image) {
//	    f.DrawString(glyphebiten.NewDriver(screen), "Hello", 10, 10, color.White)
//	}
//
// Importing the package registers it with the backend registry as "ebiten".
// Build with the noebiten tag to leave Ebitengine out (headless servers,
// CI without a display); only the vertex helpers remain then.
package ebiten
