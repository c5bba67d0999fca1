package dsiot

import (
	"fmt"
	"strconv"
	"strings"
)

// Wire values are hex strings in little-endian byte order. The step byte of
// a field's metadata describes how the raw integer maps to a physical
// quantity: the low nibble is an integer base (0-15) and the high nibble
// selects a power-of-ten coefficient. A step of 0x00 means the value is a
// plain integer.

// stepCoefficients is indexed by the high nibble of the step byte.
// Nibbles 0-7 select 1e0..1e7, nibbles 8-15 select 1e-8..1e-1.
var stepCoefficients = [16]float64{
	1, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7,
	1e-8, 1e-7, 1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 1e-1,
}

// StepScale returns the physical scale for a step byte, or 0 when the value
// is a raw integer. Values outside a single byte are rejected, never clamped.
func StepScale(step int) (float64, error) {
	if step < 0 || step > 0xFF {
		return 0, fmt.Errorf("dsiot: step byte 0x%X out of range", step)
	}
	base := step & 0x0F
	coeffIndex := (step >> 4) & 0x0F
	if coeffIndex >= len(stepCoefficients) {
		return 0, fmt.Errorf("dsiot: step coefficient index %d out of range", coeffIndex)
	}
	return float64(base) * stepCoefficients[coeffIndex], nil
}

// ReverseByteOrder reverses the byte pairs of a hex string
// (wire little-endian <-> numeric big-endian). Self-inverse.
func ReverseByteOrder(hex string) string {
	if len(hex)%2 != 0 {
		return hex
	}
	var sb strings.Builder
	sb.Grow(len(hex))
	for i := len(hex) - 2; i >= 0; i -= 2 {
		sb.WriteString(hex[i : i+2])
	}
	return sb.String()
}

// DecodeValue parses a little-endian hex wire value as a two's-complement
// signed integer and applies the metadata's step scale.
func DecodeValue(hex string, md *Metadata) (float64, error) {
	if hex == "" {
		return 0, fmt.Errorf("dsiot: empty wire value")
	}
	if len(hex)%2 != 0 {
		return 0, fmt.Errorf("dsiot: odd-length wire value %q", hex)
	}
	raw, err := strconv.ParseUint(ReverseByteOrder(hex), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("dsiot: malformed wire value %q: %w", hex, err)
	}
	n := signExtend(raw, len(hex)/2)

	step := 0
	if md != nil {
		step = md.Step
	}
	scale, err := StepScale(step)
	if err != nil {
		return 0, err
	}
	if scale == 0 {
		return float64(n), nil
	}
	return float64(n) * scale, nil
}

// EncodeValue is the inverse of DecodeValue: the value is divided by the
// step scale (skipped when 0), truncated, rendered as two's-complement hex
// sized from the field's declared max length, and byte-pair reversed.
func EncodeValue(value float64, md *Metadata) (string, error) {
	step := 0
	if md != nil {
		step = md.Step
	}
	scale, err := StepScale(step)
	if err != nil {
		return "", err
	}
	n := int64(value)
	if scale != 0 {
		n = int64(value / scale)
	}

	size := encodedSize(n, md)
	if bitsNeeded(n) > size*8 {
		return "", fmt.Errorf("dsiot: value %v does not fit in %d byte(s)", value, size)
	}
	mask := uint64(1)<<(uint(size)*8) - 1
	hex := fmt.Sprintf("%0*X", size*2, uint64(n)&mask)
	return ReverseByteOrder(hex), nil
}

// encodedSize derives the field width from the declared max value, falling
// back to the minimal width holding the integer.
func encodedSize(n int64, md *Metadata) int {
	if md != nil && len(md.Max)%2 == 0 && len(md.Max) > 0 {
		return len(md.Max) / 2
	}
	size := 1
	for bitsNeeded(n) > size*8 {
		size++
	}
	return size
}

func bitsNeeded(n int64) int {
	if n < 0 {
		n = -n - 1
	}
	bits := 1 // sign bit
	for n > 0 {
		bits++
		n >>= 1
	}
	return bits
}

func signExtend(raw uint64, size int) int64 {
	if size <= 0 || size >= 8 {
		return int64(raw)
	}
	shift := uint(64 - size*8)
	return int64(raw<<shift) >> shift
}
