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

package fit

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/marcelblijleven/fittie/profile/basetype"
)

// readFieldValue reads the bytes for one field from s and returns either a
// scalar value, a []interface{} for a multi-element field, a string, or nil
// when a single-value field holds the base type's invalid sentinel or a
// string field is all nul bytes. In a multi-element field each element
// equal to the sentinel becomes nil in place.
//
// A field size that is not a multiple of the base type's size is
// tolerated by truncation: the declared number of bytes is always consumed
// from the stream, but only whole base-type-sized chunks are decoded into
// values; any remainder is discarded.
func readFieldValue(fd FieldDefinition, endian binary.ByteOrder, s *byteStream) (interface{}, error) {
	bt := fd.BaseType

	if bt.Kind == basetype.KindString {
		return readStringField(fd, s)
	}

	raw := make([]byte, fd.Size)
	if _, err := s.Read(raw); err != nil {
		return nil, shortRead(s.Tell(), "field value")
	}

	if bt.Size == 0 {
		return nil, nil
	}
	count := int(fd.Size) / bt.Size
	if rem := int(fd.Size) % bt.Size; rem != 0 {
		Log.V(1).Info("field size not divisible by base type size, truncating",
			"fieldNumber", fd.Number, "size", fd.Size, "baseTypeSize", bt.Size, "discardedBytes", rem)
	}
	if count == 0 {
		return nil, nil
	}

	if count == 1 {
		return decodeScalar(bt, endian, raw[:bt.Size]), nil
	}

	values := make([]interface{}, count)
	for i := 0; i < count; i++ {
		chunk := raw[i*bt.Size : (i+1)*bt.Size]
		values[i] = decodeScalar(bt, endian, chunk)
	}
	return values, nil
}

func readStringField(fd FieldDefinition, s *byteStream) (interface{}, error) {
	buf := make([]byte, fd.Size)
	if _, err := s.Read(buf); err != nil {
		return nil, shortRead(s.Tell(), "string field")
	}

	allNul := true
	for _, b := range buf {
		if b != 0 {
			allNul = false
			break
		}
	}
	if allNul {
		return nil, nil
	}

	n := bytes.IndexByte(buf, 0)
	if n == -1 {
		n = len(buf)
	}
	return string(buf[:n]), nil
}

// decodeScalar interprets a single base-type-sized chunk, returning nil if
// the chunk's raw bits equal the base type's invalid-value sentinel.
func decodeScalar(bt basetype.BaseType, endian binary.ByteOrder, chunk []byte) interface{} {
	switch bt.Size {
	case 1:
		raw := chunk[0]
		if uint64(raw) == bt.Invalid {
			return nil
		}
		if bt.Kind == basetype.KindInt {
			return int64(int8(raw))
		}
		return uint64(raw)
	case 2:
		raw := endian.Uint16(chunk)
		if uint64(raw) == bt.Invalid {
			return nil
		}
		if bt.Kind == basetype.KindInt {
			return int64(int16(raw))
		}
		return uint64(raw)
	case 4:
		raw := endian.Uint32(chunk)
		if uint64(raw) == bt.Invalid {
			return nil
		}
		switch bt.Kind {
		case basetype.KindInt:
			return int64(int32(raw))
		case basetype.KindFloat:
			return float64(math.Float32frombits(raw))
		default:
			return uint64(raw)
		}
	case 8:
		raw := endian.Uint64(chunk)
		if raw == bt.Invalid {
			return nil
		}
		switch bt.Kind {
		case basetype.KindInt:
			return int64(raw)
		case basetype.KindFloat:
			return math.Float64frombits(raw)
		default:
			return raw
		}
	}
	return nil
}
