package fit

import (
	"encoding/binary"
	"reflect"
	"testing"

	"github.com/marcelblijleven/fittie/profile/basetype"
)

func TestReadFieldValueScalarUint16(t *testing.T) {
	fd := FieldDefinition{Number: 1, Size: 2, BaseType: basetype.MustLookup(basetype.Uint16)}
	s := newByteStream(byteReader([]byte{0x0f, 0x00}))

	v, err := readFieldValue(fd, binary.LittleEndian, s)
	if err != nil {
		t.Fatalf("readFieldValue: %v", err)
	}
	if v.(uint64) != 15 {
		t.Fatalf("got %v, want 15", v)
	}
}

func TestReadFieldValueInvalidBecomesNil(t *testing.T) {
	fd := FieldDefinition{Number: 1, Size: 2, BaseType: basetype.MustLookup(basetype.Uint16)}
	s := newByteStream(byteReader([]byte{0xff, 0xff}))

	v, err := readFieldValue(fd, binary.LittleEndian, s)
	if err != nil {
		t.Fatalf("readFieldValue: %v", err)
	}
	if v != nil {
		t.Fatalf("got %v, want nil", v)
	}
}

func TestReadFieldValueArray(t *testing.T) {
	fd := FieldDefinition{Number: 1, Size: 4, BaseType: basetype.MustLookup(basetype.Uint16)}
	s := newByteStream(byteReader([]byte{0x01, 0x00, 0xff, 0xff}))

	v, err := readFieldValue(fd, binary.LittleEndian, s)
	if err != nil {
		t.Fatalf("readFieldValue: %v", err)
	}
	got, ok := v.([]interface{})
	if !ok {
		t.Fatalf("got %T, want []interface{}", v)
	}
	want := []interface{}{uint64(1), nil}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestReadFieldValueSignedConversion(t *testing.T) {
	fd := FieldDefinition{Number: 1, Size: 1, BaseType: basetype.MustLookup(basetype.Sint8)}
	s := newByteStream(byteReader([]byte{0xFE})) // -2 two's complement

	v, err := readFieldValue(fd, binary.LittleEndian, s)
	if err != nil {
		t.Fatalf("readFieldValue: %v", err)
	}
	if v.(int64) != -2 {
		t.Fatalf("got %v, want -2", v)
	}
}

func TestReadFieldValueString(t *testing.T) {
	fd := FieldDefinition{Number: 1, Size: 6, BaseType: basetype.MustLookup(basetype.String)}
	s := newByteStream(byteReader([]byte{'f', 'i', 't', 0, 0, 0}))

	v, err := readFieldValue(fd, binary.LittleEndian, s)
	if err != nil {
		t.Fatalf("readFieldValue: %v", err)
	}
	if v.(string) != "fit" {
		t.Fatalf("got %q, want %q", v, "fit")
	}
}

func TestReadFieldValueAllNulStringIsAbsent(t *testing.T) {
	fd := FieldDefinition{Number: 1, Size: 4, BaseType: basetype.MustLookup(basetype.String)}
	s := newByteStream(byteReader([]byte{0, 0, 0, 0}))

	v, err := readFieldValue(fd, binary.LittleEndian, s)
	if err != nil {
		t.Fatalf("readFieldValue: %v", err)
	}
	if v != nil {
		t.Fatalf("got %v, want nil", v)
	}
}

func TestReadFieldValueSizeNotDivisibleIsTruncated(t *testing.T) {
	// size 5 for a 2-byte base type: two values decoded, trailing byte
	// discarded after being consumed from the stream.
	fd := FieldDefinition{Number: 1, Size: 5, BaseType: basetype.MustLookup(basetype.Uint16)}
	s := newByteStream(byteReader([]byte{0x02, 0x00, 0xAA, 0xBB, 0xCC}))

	v, err := readFieldValue(fd, binary.LittleEndian, s)
	if err != nil {
		t.Fatalf("readFieldValue: %v", err)
	}
	want := []interface{}{uint64(2), uint64(0xBBAA)}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("got %v, want %v", v, want)
	}
	if s.Tell() != 5 {
		t.Fatalf("Tell() = %d, want 5 (all declared bytes consumed)", s.Tell())
	}
}
