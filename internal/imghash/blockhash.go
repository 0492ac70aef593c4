package imghash

import (
	"fmt"
	"image"
)

// blockhashImage implements the Blockhash.io algorithm: the image is split
// into hashWidth x hashHeight equal-area blocks, each block is reduced to
// its mean luma, and every block value is thresholded against the median of
// all block values, in row-major block order. The hash dimensions have
// already been rounded to multiples of 4 by RoundHashSize.
//
// Unlike every other algorithm this reads the pixel data directly; the
// block averaging is its own downsampling step.
func blockhashImage(img image.Image, hashWidth, hashHeight int, order BitOrder) ImageHash {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		panic(fmt.Sprintf("imghash: blockhash over empty image %dx%d", width, height))
	}

	luma := lumaReader(img)
	blocks := make([]float64, 0, hashWidth*hashHeight)
	for by := 0; by < hashHeight; by++ {
		y0, y1 := blockSpan(by, hashHeight, height)
		for bx := 0; bx < hashWidth; bx++ {
			x0, x1 := blockSpan(bx, hashWidth, width)

			var sum uint64
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					sum += uint64(luma(bounds.Min.X+x, bounds.Min.Y+y))
				}
			}
			area := (y1 - y0) * (x1 - x0)
			blocks = append(blocks, float64(sum)/float64(area))
		}
	}

	med := medianF64(blocks)
	return fromBools(func(yield func(bool) bool) {
		for _, v := range blocks {
			if !yield(v >= med) {
				return
			}
		}
	}, order)
}

// blockSpan returns the half-open pixel range of block i out of n blocks
// over size pixels. Blocks cover the image completely and differ in size by
// at most one pixel; images smaller than the block grid degenerate to
// single-pixel blocks.
func blockSpan(i, n, size int) (int, int) {
	s0 := i * size / n
	s1 := (i + 1) * size / n
	if s1 <= s0 {
		s1 = s0 + 1
	}
	if s1 > size {
		s1 = size
	}
	return s0, s1
}
