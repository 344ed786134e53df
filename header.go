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

import "encoding/binary"

// fitSignature is the 4-byte ".FIT" data type marker at the end of the
// header.
const fitSignature = ".FIT"

// FileHeader is the 12 or 14 byte header that opens every FIT stream.
type FileHeader struct {
	Length          uint8
	ProtocolVersion uint8
	ProfileVersion  uint16
	DataSize        uint32
	DataType        string

	// CRC is only populated when Length is 14. A stored value of zero is
	// permitted to mean "unchecked" and is never compared against the
	// computed CRC.
	CRC uint16
}

func decodeHeader(s *byteStream) (*FileHeader, error) {
	buf := make([]byte, 12)
	if _, err := s.Read(buf); err != nil {
		return nil, shortRead(s.Tell(), "file header")
	}

	h := &FileHeader{
		Length:          buf[0],
		ProtocolVersion: buf[1],
		ProfileVersion:  binary.LittleEndian.Uint16(buf[2:4]),
		DataSize:        binary.LittleEndian.Uint32(buf[4:8]),
		DataType:        string(buf[8:12]),
	}

	if h.Length != 12 && h.Length != 14 {
		return nil, invalidHeader(s.Tell(), "header length must be 12 or 14")
	}
	if h.DataType != fitSignature {
		return nil, invalidHeader(s.Tell(), "missing .FIT signature")
	}

	if h.Length == 14 {
		crcBuf := make([]byte, 2)
		if _, err := s.Read(crcBuf); err != nil {
			return nil, shortRead(s.Tell(), "header CRC")
		}
		h.CRC = binary.LittleEndian.Uint16(crcBuf)
		if h.CRC != 0 {
			if computed := crcCompute(buf); computed != h.CRC {
				return nil, badHeaderCRC(s.Tell(), "header CRC does not match computed value")
			}
		}
	}

	return h, nil
}
