// Package segment turns a raster image into candidate shape regions.
//
// It implements the stages that run before shape classification:
//
//  1. Binarize: flatten transparency onto white, convert to grayscale, apply
//     a separable Gaussian blur (binomial kernels up to 7x7) and an inverted
//     binary threshold. Dark objects on a light background become foreground.
//  2. FindContours: label 8-connected foreground components in raster order
//     and trace the outer boundary of each one with Moore-neighbour tracing.
//     Components that sit inside a hole of another component are dropped,
//     so only external boundaries are reported. Holes are found with one
//     flood fill of the background from the image border.
//  3. Simplify: reduce each closed boundary to a polygon with Douglas-Peucker
//     using a tolerance proportional to the boundary's perimeter.
//
// Regions are reported in discovery order: the raster order (top to bottom,
// left to right) of each component's first pixel.
//
// Image filtering uses github.com/anthonynsimon/bild and
// github.com/disintegration/imaging; polygon math uses github.com/paulmach/orb.
package segment
