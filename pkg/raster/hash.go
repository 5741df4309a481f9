package raster

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Canonical hash header fields. The header pins down dimensions and sample
// layout so the hash is independent of any in-memory representation quirks.
const (
	hashMagic     = "SL"
	hashVersion   = 1
	hashPixelType = 1 // single-channel, 8 bits per sample
)

// HashPlaceholder is the sentinel value carried by metadata before the
// content hash has been computed. It must never appear at export time.
const HashPlaceholder = "pending"

// ContentHash computes the deterministic content hash of a raster.
//
// The hashed byte sequence is: ASCII "SL", one version byte, one pixel-type
// byte, width and height as 4-byte little-endian integers, then every sample
// in row-major order. The SHA-256 digest is rendered as lowercase hex.
//
// Two rasters with identical dimensions and samples always hash identically;
// this is the sole basis for template hashes and capsule IDs.
func ContentHash(r *Raster) string {
	h := sha256.New()

	header := make([]byte, 0, 12)
	header = append(header, hashMagic...)
	header = append(header, hashVersion, hashPixelType)
	header = binary.LittleEndian.AppendUint32(header, uint32(r.width))
	header = binary.LittleEndian.AppendUint32(header, uint32(r.height))

	h.Write(header)
	h.Write(r.data)

	return hex.EncodeToString(h.Sum(nil))
}

// ShortHash returns the low 8 hex characters of a content hash, the form
// embedded in capsule IDs. Short inputs are returned unchanged.
func ShortHash(hash string) string {
	if len(hash) < 8 {
		return hash
	}
	return hash[:8]
}
