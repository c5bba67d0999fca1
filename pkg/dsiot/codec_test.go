package dsiot

import (
	"testing"
)

func TestStepScale(t *testing.T) {
	cases := []struct {
		step  int
		scale float64
	}{
		{0x00, 0},
		{0x01, 1},
		{0x12, 20},
		{0xF5, 0.5},
		{0xE1, 0.01},
		{0x73, 3e7},
	}
	for _, c := range cases {
		scale, err := StepScale(c.step)
		if err != nil {
			t.Errorf("step 0x%X: %v", c.step, err)
			continue
		}
		if scale != c.scale {
			t.Errorf("step 0x%X: got scale %v, want %v", c.step, scale, c.scale)
		}
	}
}

func TestStepScaleRange(t *testing.T) {
	if _, err := StepScale(-1); err == nil {
		t.Error("negative step accepted")
	}
	if _, err := StepScale(0x100); err == nil {
		t.Error("step above one byte accepted")
	}
}

func TestReverseByteOrderSelfInverse(t *testing.T) {
	for _, hex := range []string{"", "0A", "3000", "DEADBEEF", "0102030405"} {
		if got := ReverseByteOrder(ReverseByteOrder(hex)); got != hex {
			t.Errorf("double reverse of %q = %q", hex, got)
		}
	}
	if got := ReverseByteOrder("3000"); got != "0030" {
		t.Errorf("reverse of 3000 = %q", got)
	}
}

func TestDecodeValue(t *testing.T) {
	half := &Metadata{Step: 0xF5}
	cases := []struct {
		hex  string
		md   *Metadata
		want float64
	}{
		{"30", half, 24},
		{"2E", half, 23},
		{"14", nil, 20},
		{"FF", nil, -1},
		{"FE", half, -1},
		{"3000", &Metadata{Step: 0x12}, 960},
	}
	for _, c := range cases {
		got, err := DecodeValue(c.hex, c.md)
		if err != nil {
			t.Errorf("decode %q: %v", c.hex, err)
			continue
		}
		if got != c.want {
			t.Errorf("decode %q: got %v, want %v", c.hex, got, c.want)
		}
	}
}

func TestDecodeValueMalformed(t *testing.T) {
	if _, err := DecodeValue("", nil); err == nil {
		t.Error("empty value accepted")
	}
	if _, err := DecodeValue("ABC", nil); err == nil {
		t.Error("odd-length value accepted")
	}
	if _, err := DecodeValue("ZZ", nil); err == nil {
		t.Error("non-hex value accepted")
	}
}

func TestEncodeValueRoundTrip(t *testing.T) {
	half := &Metadata{Step: 0xF5, Max: "40"}
	for _, v := range []float64{18, 24, 24.5, 31.5, -1} {
		hex, err := EncodeValue(v, half)
		if err != nil {
			t.Fatalf("encode %v: %v", v, err)
		}
		back, err := DecodeValue(hex, half)
		if err != nil {
			t.Fatalf("decode %q: %v", hex, err)
		}
		if back != v {
			t.Errorf("round trip %v -> %q -> %v", v, hex, back)
		}
	}
}

func TestEncodeValueWidth(t *testing.T) {
	hex, err := EncodeValue(24, &Metadata{Step: 0xF5, Max: "4000"})
	if err != nil {
		t.Fatal(err)
	}
	if hex != "3000" {
		t.Errorf("two-byte encode = %q, want 3000", hex)
	}
	if _, err := EncodeValue(300, &Metadata{Max: "FF"}); err == nil {
		t.Error("overflowing value accepted")
	}
}
