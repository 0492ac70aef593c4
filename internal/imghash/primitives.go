package imghash

import (
	"cmp"
	"iter"
	"slices"
)

// The comparison primitives below produce the raw boolean sequences that get
// packed into hashes. Each returns a single-use iter.Seq consumed exactly
// once by fromBools, so no intermediate slice is materialized. Every
// primitive exists for both sample representations: uint8 buffers from plain
// resizing and float64 buffers produced by DCT preprocessing.

// meanHashU8 emits sample >= mean for every sample. The mean uses
// truncating integer division, matching the 8-bit sample domain.
func meanHashU8(luma []uint8) iter.Seq[bool] {
	if len(luma) == 0 {
		panic("imghash: mean hash over empty buffer")
	}
	var sum uint64
	for _, l := range luma {
		sum += uint64(l)
	}
	mean := uint8(sum / uint64(len(luma)))
	return func(yield func(bool) bool) {
		for _, x := range luma {
			if !yield(x >= mean) {
				return
			}
		}
	}
}

func meanHashF64(luma []float64) iter.Seq[bool] {
	if len(luma) == 0 {
		panic("imghash: mean hash over empty buffer")
	}
	var sum float64
	for _, l := range luma {
		sum += l
	}
	mean := sum / float64(len(luma))
	return func(yield func(bool) bool) {
		for _, x := range luma {
			if !yield(x >= mean) {
				return
			}
		}
	}
}

// medianU8 returns the median of the buffer. Even-length buffers average
// the two middle elements with truncating integer division. The input is
// never mutated; sorting happens on a private copy.
func medianU8(vals []uint8) uint8 {
	sorted := slices.Clone(vals)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return uint8((uint16(sorted[mid-1]) + uint16(sorted[mid])) / 2)
	}
	return sorted[mid]
}

func medianF64(vals []float64) float64 {
	sorted := slices.Clone(vals)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func medianHashU8(luma []uint8) iter.Seq[bool] {
	if len(luma) == 0 {
		panic("imghash: median hash over empty buffer")
	}
	med := medianU8(luma)
	return func(yield func(bool) bool) {
		for _, x := range luma {
			if !yield(x >= med) {
				return
			}
		}
	}
}

func medianHashF64(luma []float64) iter.Seq[bool] {
	if len(luma) == 0 {
		panic("imghash: median hash over empty buffer")
	}
	med := medianF64(luma)
	return func(yield func(bool) bool) {
		for _, x := range luma {
			if !yield(x >= med) {
				return
			}
		}
	}
}

// gradientHash emits prev < cur for each horizontally adjacent sample pair,
// row by row: rowstride-1 comparisons per row, no cross-row comparison.
func gradientHash[T cmp.Ordered](luma []T, rowstride int) iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for row := 0; row < len(luma); row += rowstride {
			end := min(row+rowstride, len(luma))
			for i := row + 1; i < end; i++ {
				if !yield(luma[i-1] < luma[i]) {
					return
				}
			}
		}
	}
}

// vertGradientHash is gradientHash along columns: columns left to right,
// within each column top to bottom.
func vertGradientHash[T cmp.Ordered](luma []T, rowstride int) iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for col := 0; col < rowstride; col++ {
			for i := col + rowstride; i < len(luma); i += rowstride {
				if !yield(luma[i-rowstride] < luma[i]) {
					return
				}
			}
		}
	}
}

// doubleGradientHash is the row gradient sequence immediately followed by
// the column gradient sequence over the same buffer.
func doubleGradientHash[T cmp.Ordered](luma []T, rowstride int) iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for b := range gradientHash(luma, rowstride) {
			if !yield(b) {
				return
			}
		}
		for b := range vertGradientHash(luma, rowstride) {
			if !yield(b) {
				return
			}
		}
	}
}
