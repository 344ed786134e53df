/*
Copyright 2023 Alexander Bartolomey (github@alexanderbartolomey.de)

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package basetype holds the 17 FIT base types: their numeric code, wire
// size, signedness, invalid-value sentinel, and whether the type is
// sensitive to the architecture byte of a definition message.
package basetype

import "fmt"

// Kind classifies how a decoded base type's raw bits should be interpreted
// once the invalid-value sentinel has been ruled out.
type Kind int

const (
	KindUint Kind = iota
	KindInt
	KindFloat
	KindString
)

// BaseType describes one entry of the FIT base type table.
type BaseType struct {
	Code            uint8
	Name            string
	Size            int
	Kind            Kind
	Invalid         uint64
	EndianSensitive bool
	Comment         string
}

// Numeric codes for the 17 FIT base types, matching the wire value stored
// in a field definition's base_type byte.
const (
	Enum    uint8 = 0x00
	Sint8   uint8 = 0x01
	Uint8   uint8 = 0x02
	Sint16  uint8 = 0x83
	Uint16  uint8 = 0x84
	Sint32  uint8 = 0x85
	Uint32  uint8 = 0x86
	String  uint8 = 0x07
	Float32 uint8 = 0x88
	Float64 uint8 = 0x89
	Uint8z  uint8 = 0x0A
	Uint16z uint8 = 0x8B
	Uint32z uint8 = 0x8C
	Byte    uint8 = 0x0D
	Sint64  uint8 = 0x8E
	Uint64  uint8 = 0x8F
	Uint64z uint8 = 0x90
)

var registry = map[uint8]BaseType{
	Enum:    {Code: Enum, Name: "enum", Size: 1, Kind: KindUint, Invalid: 0xFF, Comment: "invalid if all bits set"},
	Sint8:   {Code: Sint8, Name: "sint8", Size: 1, Kind: KindInt, Invalid: 0x7F, Comment: "2's complement"},
	Uint8:   {Code: Uint8, Name: "uint8", Size: 1, Kind: KindUint, Invalid: 0xFF},
	Sint16:  {Code: Sint16, Name: "sint16", Size: 2, Kind: KindInt, Invalid: 0x7FFF, EndianSensitive: true, Comment: "2's complement"},
	Uint16:  {Code: Uint16, Name: "uint16", Size: 2, Kind: KindUint, Invalid: 0xFFFF, EndianSensitive: true},
	Sint32:  {Code: Sint32, Name: "sint32", Size: 4, Kind: KindInt, Invalid: 0x7FFFFFFF, EndianSensitive: true, Comment: "2's complement"},
	Uint32:  {Code: Uint32, Name: "uint32", Size: 4, Kind: KindUint, Invalid: 0xFFFFFFFF, EndianSensitive: true},
	String:  {Code: String, Name: "string", Size: 1, Kind: KindString, Invalid: 0x00, Comment: "null-terminated"},
	Float32: {Code: Float32, Name: "float32", Size: 4, Kind: KindFloat, Invalid: 0xFFFFFFFF, EndianSensitive: true},
	Float64: {Code: Float64, Name: "float64", Size: 8, Kind: KindFloat, Invalid: 0xFFFFFFFFFFFFFFFF, EndianSensitive: true},
	Uint8z:  {Code: Uint8z, Name: "uint8z", Size: 1, Kind: KindUint, Invalid: 0x00},
	Uint16z: {Code: Uint16z, Name: "uint16z", Size: 2, Kind: KindUint, Invalid: 0x0000, EndianSensitive: true},
	Uint32z: {Code: Uint32z, Name: "uint32z", Size: 4, Kind: KindUint, Invalid: 0x00000000, EndianSensitive: true},
	Byte:    {Code: Byte, Name: "byte", Size: 1, Kind: KindUint, Invalid: 0xFF, Comment: "array of bytes"},
	Sint64:  {Code: Sint64, Name: "sint64", Size: 8, Kind: KindInt, Invalid: 0x7FFFFFFFFFFFFFFF, EndianSensitive: true, Comment: "2's complement"},
	Uint64:  {Code: Uint64, Name: "uint64", Size: 8, Kind: KindUint, Invalid: 0xFFFFFFFFFFFFFFFF, EndianSensitive: true},
	Uint64z: {Code: Uint64z, Name: "uint64z", Size: 8, Kind: KindUint, Invalid: 0x0000000000000000, EndianSensitive: true},
}

// Lookup returns the BaseType registered for code, and false if code is not
// one of the 17 known FIT base types.
func Lookup(code uint8) (BaseType, bool) {
	bt, ok := registry[code]
	return bt, ok
}

// MustLookup is Lookup, panicking on an unknown code. Intended for tests and
// for building static profile tables where the code is a compile-time
// constant, never for decoding untrusted input.
func MustLookup(code uint8) BaseType {
	bt, ok := Lookup(code)
	if !ok {
		panic(fmt.Sprintf("basetype: unknown code 0x%02X", code))
	}
	return bt
}
