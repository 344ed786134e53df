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
	"encoding/binary"
	"fmt"

	"github.com/marcelblijleven/fittie/profile/basetype"
)

// FieldDefinition binds one field number to its wire size and base type
// inside a definition message.
type FieldDefinition struct {
	Number   uint8
	Size     uint8
	BaseType basetype.BaseType
}

// DeveloperFieldDefinition binds a developer field number to a wire size
// and the developer data source it must be resolved against.
type DeveloperFieldDefinition struct {
	Number             uint8
	Size               uint8
	DeveloperDataIndex uint8
}

// DefinitionMessage is the record that binds a local message type to a
// global message number, field layout, and byte order for all the data
// records that follow until it is redefined.
type DefinitionMessage struct {
	Endian            binary.ByteOrder
	GlobalMessageType uint16
	Fields            []FieldDefinition
	DeveloperFields   []DeveloperFieldDefinition
}

func decodeDefinitionMessage(rh RecordHeader, s *byteStream) (*DefinitionMessage, error) {
	reserved, err := s.ReadByte()
	if err != nil {
		return nil, shortRead(s.Tell(), "definition reserved byte")
	}
	if reserved != 0 {
		return nil, invalidDefinition(s.Tell(), "reserved byte must be zero")
	}

	arch, err := s.ReadByte()
	if err != nil {
		return nil, shortRead(s.Tell(), "definition architecture byte")
	}
	var endian binary.ByteOrder
	switch arch {
	case 0:
		endian = binary.LittleEndian
	case 1:
		endian = binary.BigEndian
	default:
		return nil, invalidDefinition(s.Tell(), fmt.Sprintf("unknown architecture byte 0x%02X", arch))
	}

	gBuf := make([]byte, 2)
	if _, err := s.Read(gBuf); err != nil {
		return nil, shortRead(s.Tell(), "global message number")
	}
	globalMessageType := endian.Uint16(gBuf)

	nFields, err := s.ReadByte()
	if err != nil {
		return nil, shortRead(s.Tell(), "field definition count")
	}

	fields := make([]FieldDefinition, 0, nFields)
	for i := 0; i < int(nFields); i++ {
		triple := make([]byte, 3)
		if _, err := s.Read(triple); err != nil {
			return nil, shortRead(s.Tell(), "field definition")
		}
		number, size, code := triple[0], triple[1], triple[2]
		if number == 255 {
			return nil, invalidDefinition(s.Tell(), "field number 255 is reserved")
		}
		bt, ok := basetype.Lookup(code)
		if !ok {
			return nil, invalidDefinition(s.Tell(), fmt.Sprintf("unknown base type 0x%02X", code))
		}
		fields = append(fields, FieldDefinition{Number: number, Size: size, BaseType: bt})
	}

	var developerFields []DeveloperFieldDefinition
	if rh.IsDeveloperData {
		nDev, err := s.ReadByte()
		if err != nil {
			return nil, shortRead(s.Tell(), "developer field definition count")
		}
		developerFields = make([]DeveloperFieldDefinition, 0, nDev)
		for i := 0; i < int(nDev); i++ {
			triple := make([]byte, 3)
			if _, err := s.Read(triple); err != nil {
				return nil, shortRead(s.Tell(), "developer field definition")
			}
			developerFields = append(developerFields, DeveloperFieldDefinition{
				Number:             triple[0],
				Size:               triple[1],
				DeveloperDataIndex: triple[2],
			})
		}
	}

	return &DefinitionMessage{
		Endian:            endian,
		GlobalMessageType: globalMessageType,
		Fields:            fields,
		DeveloperFields:   developerFields,
	}, nil
}
