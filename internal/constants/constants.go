// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Hashing defaults
const (
	// DefaultHashSize is the default hash width and height in bits
	DefaultHashSize = 8

	// DefaultDistanceThreshold is the default maximum Hamming distance for
	// two 64-bit hashes to count as near-duplicates
	DefaultDistanceThreshold = 10

	// DefaultConcurrency is the default number of parallel hashing workers
	DefaultConcurrency = 5
)

// File upload constants
const (
	// MaxUploadSize is the maximum file upload size in bytes (100MB)
	MaxUploadSize = 100 << 20

	// MaxCompareFiles is the number of files the compare endpoint expects
	MaxCompareFiles = 2
)

// Server defaults
const (
	// DefaultPort is the default HTTP listen port
	DefaultPort = 8080

	// DefaultHost is the default HTTP bind address
	DefaultHost = "0.0.0.0"
)
