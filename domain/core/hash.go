package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// InputHash fingerprints a run's numeric inputs for reproducibility audits.
type InputHash Hash

func (h InputHash) String() string { return Hash(h).String() }

// ComputeInputHash fingerprints the work series and estimation parameters.
// Float bit patterns are hashed directly so the fingerprint is exact, not
// subject to formatting round-trips.
func ComputeInputHash(forward, backward []float64, params ...float64) InputHash {
	buf := make([]byte, 8)
	hasher := sha256.New()

	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
		hasher.Write(buf)
	}

	binary.LittleEndian.PutUint64(buf, uint64(len(forward)))
	hasher.Write(buf)
	for _, v := range forward {
		writeFloat(v)
	}
	for _, v := range backward {
		writeFloat(v)
	}
	for _, v := range params {
		writeFloat(v)
	}

	return InputHash(hex.EncodeToString(hasher.Sum(nil)))
}
