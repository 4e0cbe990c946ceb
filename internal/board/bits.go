package board

import "math/bits"

// These wrap math/bits, which the Go compiler lowers to the native
// TZCNT/LZCNT/POPCNT instructions on amd64/arm64 — the portable equivalent
// of the compiler intrinsics (_BitScanForward64 etc.) the reference
// implementation calls directly.
func trailingZeros(b uint64) int { return bits.TrailingZeros64(b) }
func leadingZeros(b uint64) int  { return bits.LeadingZeros64(b) }

// PopCount returns the number of set bits.
func PopCount(b uint64) int { return bits.OnesCount64(b) }

// PopLSB returns the index of the lowest set bit and the bitboard with that
// bit cleared. Must not be called with b == 0.
func PopLSB(b uint64) (int, uint64) {
	sq := trailingZeros(b)
	return sq, b & (b - 1)
}
