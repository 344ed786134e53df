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

const (
	recordHeaderCompressedMask           = 0x80
	recordHeaderDefinitionMask           = 0x40
	recordHeaderDeveloperDataMask        = 0x20
	recordHeaderReservedMask             = 0x10
	recordHeaderLocalTypeMask            = 0x0F
	recordHeaderCompressedLocalTypeMask  = 0x60
	recordHeaderCompressedLocalTypeShift = 5
	recordHeaderCompressedOffsetMask     = 0x1F
)

// RecordHeader is the one-byte header preceding every definition or data
// record.
type RecordHeader struct {
	IsDefinitionMessage   bool
	IsDeveloperData       bool
	LocalMessageType      uint8
	IsCompressedTimestamp bool

	// TimeOffset is only meaningful when IsCompressedTimestamp is true: a
	// 5-bit rolling offset (0..31) from the last full timestamp seen.
	TimeOffset uint8
}

func decodeRecordHeader(s *byteStream) (*RecordHeader, error) {
	b, err := s.ReadByte()
	if err != nil {
		return nil, shortRead(s.Tell(), "record header")
	}

	if b&recordHeaderCompressedMask != 0 {
		return &RecordHeader{
			IsCompressedTimestamp: true,
			LocalMessageType:      (b & recordHeaderCompressedLocalTypeMask) >> recordHeaderCompressedLocalTypeShift,
			TimeOffset:            b & recordHeaderCompressedOffsetMask,
		}, nil
	}

	if b&recordHeaderReservedMask != 0 {
		return nil, invalidRecordHeader(s.Tell(), "reserved bit set")
	}

	return &RecordHeader{
		IsDefinitionMessage: b&recordHeaderDefinitionMask != 0,
		IsDeveloperData:     b&recordHeaderDeveloperDataMask != 0,
		LocalMessageType:    b & recordHeaderLocalTypeMask,
	}, nil
}
