// Package backend is a registry of texture backends for glyph atlases.
//
// Backend packages register themselves on import:
//
//	import _ "github.com/gogpu/glyphfont/backend/software"
//
// and are opened by name or priority, which also creates the uploader:
//
//	b, up, err := backend.Open("") // best available
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	f, err := glyphfont.NewFont(desc, up)
//
// # Available Backends
//
//   - "software": CPU images (backend/software)
//   - "ebiten": Ebitengine images (backend/ebiten)
//
// The GPU backend in package gpu needs a device from the host application
// and is constructed directly instead of through the registry.
package backend
