package imghash

import "math"

// dct2d computes a 2D DCT-II of a row-major width x height buffer by
// applying the 1D transform separably: first along every row, then along
// every column. Coefficients stay unnormalized; the hash only compares
// relative magnitudes, so scaling factors cancel out.
func dct2d(vals []float64, width, height int) []float64 {
	if len(vals) != width*height {
		panic("imghash: dct buffer length does not match dimensions")
	}

	cosW := cosTable(width)
	cosH := cosTable(height)

	// Rows.
	rowOut := make([]float64, len(vals))
	for y := 0; y < height; y++ {
		row := vals[y*width : (y+1)*width]
		for u := 0; u < width; u++ {
			var sum float64
			for x := 0; x < width; x++ {
				sum += row[x] * cosW[u*width+x]
			}
			rowOut[y*width+u] = sum
		}
	}

	// Columns.
	out := make([]float64, len(vals))
	for x := 0; x < width; x++ {
		for v := 0; v < height; v++ {
			var sum float64
			for y := 0; y < height; y++ {
				sum += rowOut[y*width+x] * cosH[v*height+y]
			}
			out[v*width+x] = sum
		}
	}
	return out
}

// cosTable precomputes cos(pi * u * (2x + 1) / 2n) for all u, x in [0, n).
func cosTable(n int) []float64 {
	table := make([]float64, n*n)
	for u := 0; u < n; u++ {
		for x := 0; x < n; x++ {
			table[u*n+x] = math.Cos(math.Pi * float64(u) * (2*float64(x) + 1) / (2 * float64(n)))
		}
	}
	return table
}
