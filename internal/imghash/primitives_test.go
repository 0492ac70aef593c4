package imghash

import (
	"slices"
	"testing"
)

func TestMeanHashU8(t *testing.T) {
	tests := []struct {
		name     string
		luma     []uint8
		expected []bool
	}{
		{
			"ascending ramp",
			[]uint8{10, 20, 30, 40, 50, 60, 70, 80}, // mean = 45
			[]bool{false, false, false, false, true, true, true, true},
		},
		{
			"all identical",
			[]uint8{128, 128, 128, 128},
			[]bool{true, true, true, true},
		},
		{
			"single sample",
			[]uint8{42},
			[]bool{true},
		},
		{
			"truncating mean",
			[]uint8{0, 0, 0, 3}, // mean = 3/4 -> 0
			[]bool{true, true, true, true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := slices.Collect(meanHashU8(tc.luma))
			if !slices.Equal(result, tc.expected) {
				t.Errorf("meanHashU8(%v) = %v; want %v", tc.luma, result, tc.expected)
			}
		})
	}
}

func TestMeanHashF64(t *testing.T) {
	luma := []float64{10, 20, 30, 40, 50, 60, 70, 80} // mean = 45
	expected := []bool{false, false, false, false, true, true, true, true}

	result := slices.Collect(meanHashF64(luma))
	if !slices.Equal(result, expected) {
		t.Errorf("meanHashF64(%v) = %v; want %v", luma, result, expected)
	}
}

func TestMeanHashThresholdCrossing(t *testing.T) {
	luma := []uint8{10, 20, 30, 40, 50, 60, 70, 80} // mean = 45
	base := slices.Collect(meanHashU8(luma))

	// Reordering equal-side samples keeps the same multiset of booleans.
	reordered := []uint8{20, 10, 40, 30, 60, 50, 80, 70}
	got := slices.Collect(meanHashU8(reordered))
	want := []bool{false, false, false, false, true, true, true, true}
	if !slices.Equal(got, want) {
		t.Errorf("meanHashU8(%v) = %v; want %v", reordered, got, want)
	}

	// Pushing one sample across the threshold flips its bit.
	crossed := slices.Clone(luma)
	crossed[0] = 90 // mean becomes 55: samples 20..50 now fall below
	after := slices.Collect(meanHashU8(crossed))
	if slices.Equal(base, after) {
		t.Errorf("moving a sample across the mean should change the hash: %v", after)
	}
	if !after[0] {
		t.Errorf("sample raised above the mean should produce a true bit")
	}
}

func TestMedianU8(t *testing.T) {
	tests := []struct {
		name     string
		vals     []uint8
		expected uint8
	}{
		{"odd count", []uint8{1, 2, 3, 4, 5}, 3},
		{"even count truncates", []uint8{1, 2, 3, 4}, 2},
		{"single value", []uint8{42}, 42},
		{"unsorted", []uint8{5, 1, 3, 2, 4}, 3},
		{"no uint8 overflow", []uint8{200, 250}, 225},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := medianU8(tc.vals)
			if result != tc.expected {
				t.Errorf("medianU8(%v) = %d; want %d", tc.vals, result, tc.expected)
			}
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	vals := []uint8{5, 1, 3, 2, 4}
	original := slices.Clone(vals)

	medianU8(vals)

	if !slices.Equal(vals, original) {
		t.Errorf("medianU8 mutated its input: %v (was %v)", vals, original)
	}
}

func TestMedianF64(t *testing.T) {
	tests := []struct {
		name     string
		vals     []float64
		expected float64
	}{
		{"odd count", []float64{1, 2, 3, 4, 5}, 3},
		{"even count averages", []float64{1, 2, 3, 4}, 2.5},
		{"single value", []float64{42}, 42},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := medianF64(tc.vals)
			if result != tc.expected {
				t.Errorf("medianF64(%v) = %v; want %v", tc.vals, result, tc.expected)
			}
		})
	}
}

func TestMedianHash(t *testing.T) {
	// Even-length buffer: uint8 median truncates to 2, float64 median is
	// 2.5. Both thresholds produce the same booleans under >=.
	luma8 := []uint8{1, 2, 3, 4}
	lumaF := []float64{1, 2, 3, 4}
	expected := []bool{false, false, true, true}

	if got := slices.Collect(medianHashU8(luma8)); !slices.Equal(got, expected) {
		t.Errorf("medianHashU8(%v) = %v; want %v", luma8, got, expected)
	}
	if got := slices.Collect(medianHashF64(lumaF)); !slices.Equal(got, expected) {
		t.Errorf("medianHashF64(%v) = %v; want %v", lumaF, got, expected)
	}
}

func TestGradientHash(t *testing.T) {
	tests := []struct {
		name      string
		luma      []uint8
		rowstride int
		expected  []bool
	}{
		{
			"single increasing row",
			[]uint8{10, 20, 30, 40, 50, 60, 70, 80},
			8,
			[]bool{true, true, true, true, true, true, true},
		},
		{
			"two rows no cross-row comparison",
			[]uint8{1, 2, 9, 3}, // rows [1,2] and [9,3]
			2,
			[]bool{true, false},
		},
		{
			"flat row",
			[]uint8{5, 5, 5},
			3,
			[]bool{false, false},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := slices.Collect(gradientHash(tc.luma, tc.rowstride))
			if !slices.Equal(result, tc.expected) {
				t.Errorf("gradientHash(%v, %d) = %v; want %v",
					tc.luma, tc.rowstride, result, tc.expected)
			}
		})
	}
}

func TestGradientHashBrightnessInvariant(t *testing.T) {
	luma := []uint8{10, 20, 15, 40, 35, 60, 70, 55}
	shifted := make([]uint8, len(luma))
	for i, l := range luma {
		shifted[i] = l + 100
	}

	base := slices.Collect(gradientHash(luma, 4))
	after := slices.Collect(gradientHash(shifted, 4))

	if !slices.Equal(base, after) {
		t.Errorf("gradient hash should survive a uniform brightness shift: %v vs %v", base, after)
	}
}

func TestVertGradientHash(t *testing.T) {
	// 2x3 buffer:
	//   1 5 3
	//   4 2 3
	luma := []uint8{1, 5, 3, 4, 2, 3}

	// Columns left to right: 1<4, 5<2, 3<3.
	expected := []bool{true, false, false}

	result := slices.Collect(vertGradientHash(luma, 3))
	if !slices.Equal(result, expected) {
		t.Errorf("vertGradientHash(%v, 3) = %v; want %v", luma, result, expected)
	}
}

func TestDoubleGradientIsConcatenation(t *testing.T) {
	luma := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8}
	rowstride := 4

	var expected []bool
	expected = append(expected, slices.Collect(gradientHash(luma, rowstride))...)
	expected = append(expected, slices.Collect(vertGradientHash(luma, rowstride))...)

	result := slices.Collect(doubleGradientHash(luma, rowstride))
	if !slices.Equal(result, expected) {
		t.Errorf("double gradient must equal row gradient followed by column gradient\n got %v\nwant %v",
			result, expected)
	}
}

func TestMeanHashEmptyBufferPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("meanHashU8 on empty buffer should panic")
		}
	}()
	meanHashU8(nil)
}

func TestMedianHashEmptyBufferPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("medianHashU8 on empty buffer should panic")
		}
	}()
	medianHashU8(nil)
}
