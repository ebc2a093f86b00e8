// Package main provides the entry point for the shape-analyzer CLI.
//
// shape-analyzer finds the dark shapes on a light background in raster
// images and classifies each one as Circle, Triangle, Square, Rectangle,
// Pentagon, Hexagon, Heptagon, Octagon or Polygon.
//
// Usage:
//
//	shape-analyzer analyze shapes.png
//	shape-analyzer analyze --annotate out/ *.png
//	shape-analyzer serve
//
// See --help for all available options.
package main

func main() {
	Execute()
}
