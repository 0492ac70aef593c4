package imghash

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// HasherConfig describes how hashes should be computed. The zero value is
// not usable; start from DefaultConfig.
type HasherConfig struct {
	// Width and Height are the requested hash dimensions. The effective
	// dimensions may be rounded up per RoundHashSize.
	Width  int
	Height int

	// Alg selects the hashing algorithm.
	Alg HashAlg

	// BitOrder controls the bit packing of the final hash.
	BitOrder BitOrder

	// GaussianSigma enables Gaussian blur preprocessing when > 0. Blurring
	// makes the hash more robust against noise and compression artifacts.
	GaussianSigma float64

	// DCT enables DCT low-pass preprocessing: the image is sampled at twice
	// the hash dimensions, transformed, and only the low-frequency corner is
	// hashed. Median with DCT is the classic pHash construction.
	DCT bool
}

// DefaultConfig returns an 8x8 Gradient hash configuration, a good
// general-purpose tradeoff between speed and resilience.
func DefaultConfig() HasherConfig {
	return HasherConfig{Width: 8, Height: 8, Alg: Gradient, BitOrder: LSBFirst}
}

// Hasher computes perceptual hashes with a fixed configuration. A Hasher is
// immutable and safe for concurrent use; independent Hash calls never
// interact.
type Hasher struct {
	width    int
	height   int
	alg      HashAlg
	bitOrder BitOrder
	sigma    float64
	dct      bool
}

// NewHasher validates the configuration and applies the algorithm's hash
// size rounding.
func NewHasher(cfg HasherConfig) (*Hasher, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid hash size %dx%d: dimensions must be positive", cfg.Width, cfg.Height)
	}
	if cfg.GaussianSigma < 0 {
		return nil, fmt.Errorf("invalid gaussian sigma %v: must not be negative", cfg.GaussianSigma)
	}

	width, height := cfg.Alg.RoundHashSize(cfg.Width, cfg.Height)
	return &Hasher{
		width:    width,
		height:   height,
		alg:      cfg.Alg,
		bitOrder: cfg.BitOrder,
		sigma:    cfg.GaussianSigma,
		dct:      cfg.DCT,
	}, nil
}

// Hash computes the perceptual hash of an image.
func (h *Hasher) Hash(img image.Image) ImageHash {
	return h.alg.hashImage(h, img)
}

// HashSize returns the effective (rounded) hash dimensions.
func (h *Hasher) HashSize() (int, int) {
	return h.width, h.height
}

// Alg returns the configured algorithm.
func (h *Hasher) Alg() HashAlg {
	return h.alg
}

// Bits returns the number of bits in hashes this Hasher produces.
func (h *Hasher) Bits() int {
	return h.alg.BitCount(h.width, h.height)
}

// gaussPreproc applies the configured Gaussian blur. Without blur the input
// image is passed through untouched, so no pixel data is copied.
func (h *Hasher) gaussPreproc(img image.Image) image.Image {
	if h.sigma <= 0 {
		return img
	}
	return imaging.Blur(img, h.sigma)
}

// hashVals is the flat sample buffer handed to the comparison primitives.
// Exactly one of the fields is non-nil: bytes for plain resized luma,
// floats for DCT-preprocessed values.
type hashVals struct {
	bytes  []uint8
	floats []float64
}

// calcHashVals resizes the grayscale image to width x height and extracts
// the flat luma buffer. With DCT preprocessing enabled it samples at twice
// the requested dimensions and keeps the low-frequency corner of the
// transform instead.
func (h *Hasher) calcHashVals(gray *image.Gray, width, height int) hashVals {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("imghash: invalid sample dimensions %dx%d", width, height))
	}

	if h.dct {
		resized := resizeGray(gray, width*2, height*2)
		input := grayToF64(resized)
		coeffs := dct2d(input, width*2, height*2)

		// Low frequencies live in the top-left quadrant.
		floats := make([]float64, 0, width*height)
		for y := 0; y < height; y++ {
			floats = append(floats, coeffs[y*width*2:y*width*2+width]...)
		}
		return hashVals{floats: floats}
	}

	resized := resizeGray(gray, width, height)
	buf := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		copy(buf[y*width:(y+1)*width], resized.Pix[y*resized.Stride:])
	}
	return hashVals{bytes: buf}
}
