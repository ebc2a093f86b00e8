package segment

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	bildsegment "github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// Default segmentation parameters.
const (
	// DefaultThreshold is the gray level at or below which a blurred pixel
	// counts as foreground.
	DefaultThreshold = 200

	// DefaultBlurKernel is the side length of the square Gaussian kernel.
	DefaultBlurKernel = 5

	// DefaultEpsilonCoefficient scales a boundary's perimeter into the
	// Douglas-Peucker tolerance used to simplify it.
	DefaultEpsilonCoefficient = 0.04
)

// ErrEmptyImage is returned when the input image has no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Options controls how an image is split into regions.
type Options struct {
	// Threshold is the inverted binary threshold level (0-255).
	Threshold int

	// BlurKernel is the Gaussian kernel size in pixels. Values <= 1 disable blurring.
	BlurKernel int

	// EpsilonCoefficient is multiplied by each boundary's perimeter to get the
	// simplification tolerance.
	EpsilonCoefficient float64
}

// DefaultOptions returns the default segmentation options.
func DefaultOptions() Options {
	return Options{
		Threshold:          DefaultThreshold,
		BlurKernel:         DefaultBlurKernel,
		EpsilonCoefficient: DefaultEpsilonCoefficient,
	}
}

// Mask is a binary image: every pixel is either foreground or background.
//
// Pixel (x, y) is stored at Pix[y*Width+x]; 255 marks foreground, 0 background.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask creates an all-background mask.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// At reports whether (x, y) is foreground. Out-of-range coordinates are background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x] != 0
}

// Set marks (x, y) as foreground or background. Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int, fg bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	if fg {
		m.Pix[y*m.Width+x] = 255
	} else {
		m.Pix[y*m.Width+x] = 0
	}
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Image returns the mask as a grayscale image (foreground white).
func (m *Mask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	copy(img.Pix, m.Pix)
	return img
}

// Binarize converts an image into a foreground mask.
//
// The image is composited onto an opaque white background, converted to
// grayscale, blurred with a BlurKernel×BlurKernel Gaussian and thresholded:
// pixels whose blurred gray level is <= Threshold become foreground.
//
// The Gaussian uses the kernel OpenCV picks for GaussianBlur with sigma 0,
// so a 5x5 blur is the binomial [1 4 6 4 1]/16. Blurred levels are
// truncated to 8 bits rather than rounded, which can move a pixel that sits
// exactly on the threshold.
//
// Channel order is whatever image.Image reports through RGBA(), so decoded
// PNG/JPEG/GIF data needs no channel swapping before it gets here.
func Binarize(img image.Image, opts Options) (*Mask, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}

	// Transparent pixels count as background.
	flat := imaging.Overlay(imaging.New(width, height, color.White), imaging.Clone(img), image.Pt(0, 0), 1.0)

	var src image.Image = effect.Grayscale(flat)
	if k := gaussianKernel(opts.BlurKernel); k != nil {
		// Separable: one horizontal pass, one vertical pass, edges extended.
		co := &convolution.Options{}
		src = convolution.Convolve(src, k, co)
		src = convolution.Convolve(src, k.Transposed(), co)
	}

	mask := NewMask(width, height)
	if opts.Threshold >= 255 {
		for i := range mask.Pix {
			mask.Pix[i] = 255
		}
		return mask, nil
	}
	if opts.Threshold < 0 {
		return mask, nil
	}

	// bild paints pixels below the level black; the level is one above the
	// threshold so that gray == Threshold is still foreground.
	bin := bildsegment.Threshold(src, uint8(opts.Threshold+1))
	bb := bin.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if bin.GrayAt(bb.Min.X+x, bb.Min.Y+y).Y == 0 {
				mask.Pix[y*width+x] = 255
			}
		}
	}

	return mask, nil
}

// smallGaussianKernels are the fixed kernels for odd sizes up to 7 (binomial
// rows), as used by OpenCV when no sigma is given.
var smallGaussianKernels = map[int][]float64{
	3: {0.25, 0.5, 0.25},
	5: {0.0625, 0.25, 0.375, 0.25, 0.0625},
	7: {0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// gaussianKernel returns a normalized horizontal Gaussian kernel for a
// size×size blur, or nil when size <= 1 disables blurring. Even sizes round
// down to the next odd size.
//
// Sizes above 7 use sigma = 0.3*((size-1)*0.5 - 1) + 0.8.
func gaussianKernel(size int) convolution.Matrix {
	if size <= 1 {
		return nil
	}
	taps := 2*((size-1)/2) + 1
	if taps == 1 {
		return nil
	}

	k := convolution.NewKernel(taps, 1)
	if w, ok := smallGaussianKernels[taps]; ok {
		copy(k.Matrix, w)
		return k
	}

	sigma := 0.3*(float64(taps-1)*0.5-1) + 0.8
	for i := range k.Matrix {
		x := float64(i - taps/2)
		k.Matrix[i] = math.Exp(-x * x / (2 * sigma * sigma))
	}
	return k.Normalized()
}
