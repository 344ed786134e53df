package basetype

import "testing"

func TestLookupKnownCodes(t *testing.T) {
	cases := []struct {
		code uint8
		name string
		size int
	}{
		{Enum, "enum", 1},
		{Sint8, "sint8", 1},
		{Uint8, "uint8", 1},
		{Sint16, "sint16", 2},
		{Uint16, "uint16", 2},
		{Sint32, "sint32", 4},
		{Uint32, "uint32", 4},
		{String, "string", 1},
		{Float32, "float32", 4},
		{Float64, "float64", 8},
		{Uint8z, "uint8z", 1},
		{Uint16z, "uint16z", 2},
		{Uint32z, "uint32z", 4},
		{Byte, "byte", 1},
		{Sint64, "sint64", 8},
		{Uint64, "uint64", 8},
		{Uint64z, "uint64z", 8},
	}

	if len(registry) != len(cases) {
		t.Fatalf("registry has %d entries, want %d", len(registry), len(cases))
	}

	for _, c := range cases {
		bt, ok := Lookup(c.code)
		if !ok {
			t.Fatalf("Lookup(0x%02X) missing", c.code)
		}
		if bt.Name != c.name {
			t.Errorf("Lookup(0x%02X).Name = %q, want %q", c.code, bt.Name, c.name)
		}
		if bt.Size != c.size {
			t.Errorf("Lookup(0x%02X).Size = %d, want %d", c.code, bt.Size, c.size)
		}
	}
}

func TestLookupUnknownCode(t *testing.T) {
	if _, ok := Lookup(0x42); ok {
		t.Fatalf("Lookup(0x42) should miss")
	}
}

func TestEndianSensitivity(t *testing.T) {
	sensitive := []uint8{Sint16, Uint16, Sint32, Uint32, Float32, Float64, Uint16z, Uint32z, Sint64, Uint64, Uint64z}
	for _, code := range sensitive {
		bt := MustLookup(code)
		if !bt.EndianSensitive {
			t.Errorf("%s should be endian-sensitive", bt.Name)
		}
	}

	insensitive := []uint8{Enum, Sint8, Uint8, String, Uint8z, Byte}
	for _, code := range insensitive {
		bt := MustLookup(code)
		if bt.EndianSensitive {
			t.Errorf("%s should not be endian-sensitive", bt.Name)
		}
	}
}
