// Package imghash computes perceptual image hashes: compact bit strings
// where visually similar images end up within a small Hamming distance of
// each other, while dissimilar images end up far apart.
package imghash

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"iter"
	"math/bits"
	"slices"
)

// ImageHash is a packed perceptual hash. It is immutable once constructed;
// trailing bits of the final byte beyond Bits() are always zero and carry
// no meaning.
type ImageHash struct {
	hash []byte
	bits int
}

// fromBools packs a boolean sequence into hash bytes under the given bit
// order. The sequence is consumed exactly once.
func fromBools(bools iter.Seq[bool], order BitOrder) ImageHash {
	var (
		hash []byte
		n    int
	)
	for b := range bools {
		if n%8 == 0 {
			hash = append(hash, 0)
		}
		if b {
			if order == MSBFirst {
				hash[n/8] |= 1 << (7 - n%8)
			} else {
				hash[n/8] |= 1 << (n % 8)
			}
		}
		n++
	}
	return ImageHash{hash: hash, bits: n}
}

// bit reports the i-th boolean of the sequence the hash was packed from,
// assuming it was packed under the given bit order.
func (h ImageHash) bit(i int, order BitOrder) bool {
	if order == MSBFirst {
		return h.hash[i/8]&(1<<(7-i%8)) != 0
	}
	return h.hash[i/8]&(1<<(i%8)) != 0
}

// Bits returns the number of meaningful bits in the hash.
func (h ImageHash) Bits() int {
	return h.bits
}

// Bytes returns a copy of the packed hash bytes.
func (h ImageHash) Bytes() []byte {
	return slices.Clone(h.hash)
}

// String returns the hash bytes as a lowercase hex string.
func (h ImageHash) String() string {
	return hex.EncodeToString(h.hash)
}

// Base64 returns the hash bytes in standard base64 encoding.
func (h ImageHash) Base64() string {
	return base64.StdEncoding.EncodeToString(h.hash)
}

// DecodeBase64 parses a hash previously encoded with Base64. The bit count
// is recovered from the byte length, so hashes whose length is not a
// multiple of 8 bits round-trip through their padded size.
func DecodeBase64(s string) (ImageHash, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return ImageHash{}, fmt.Errorf("decoding hash: %w", err)
	}
	return ImageHash{hash: raw, bits: len(raw) * 8}, nil
}

// Distance returns the Hamming distance between two hashes. The comparison
// is byte-wise; trailing padding bits are always zero, so a hash recovered
// from its padded base64 encoding still compares equal to the original.
// Hashes of different byte lengths cannot be compared.
func (h ImageHash) Distance(other ImageHash) (int, error) {
	if len(h.hash) != len(other.hash) {
		return 0, fmt.Errorf("hash size mismatch: %d bytes vs %d bytes", len(h.hash), len(other.hash))
	}
	dist := 0
	for i := range h.hash {
		dist += bits.OnesCount8(h.hash[i] ^ other.hash[i])
	}
	return dist, nil
}

// Similar returns true if the Hamming distance between the hashes is within
// the threshold. A threshold of 10 works well for 64-bit near-duplicate
// detection.
func (h ImageHash) Similar(other ImageHash, threshold int) (bool, error) {
	dist, err := h.Distance(other)
	if err != nil {
		return false, err
	}
	return dist <= threshold, nil
}
