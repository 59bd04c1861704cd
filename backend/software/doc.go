// Package software keeps glyph atlas pages in memory as *image.RGBA and
// draws text quads onto CPU images.
//
// It is the reference backend: tests and the glyphdemo command use it to
// render text to PNG files without a GPU.
//
//	up := software.NewUploader()
//	f, err := glyphfont.NewFont(desc, up)
//	canvas := software.NewCanvas(800, 200)
//	f.DrawString(canvas, "Hello", 10, 10, color.Black)
//	err = canvas.SavePNG("hello.png")
//
// Importing the package registers it with the backend registry as
// "software".
package software
