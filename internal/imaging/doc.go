// Package imaging loads input images and renders analysis results.
//
// It sits on both sides of the shape analyzer: ImageCache decodes files
// before analysis, and the render functions draw the classified shapes
// afterwards. The package never classifies anything itself.
//
// # Decoding
//
// Images are decoded with github.com/disintegration/imaging (PNG, JPEG, GIF,
// BMP, TIFF) with EXIF auto-orientation enabled. Decoded images are cached by
// path; the cache is safe for concurrent use.
//
// Pixel values are only ever read through the image.Image interface, which
// reports colours in a fixed RGBA model whatever the file stored. Downstream
// code therefore has no channel-order assumptions to get wrong.
//
// # Rendering
//
//   - RenderAnnotations draws outlines and labels onto a copy of the source
//     raster (labels use the basicfont 7x13 bitmap face).
//   - RenderSVG writes the same annotations as a vector overlay.
//   - CropShape cuts a single shape out for a closer look.
//   - EncodePNGBase64 packages a raster for JSON transport.
//
// Colours are given as hex strings ("#00FF00") and parsed with
// github.com/lucasb-eyer/go-colorful.
//
// # Coordinate System
//
// Annotation and bounds coordinates are relative to the top-left corner of
// the source image: X increases rightward, Y increases downward. Rendered
// images always start at (0, 0).
package imaging
