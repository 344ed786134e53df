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
	"fmt"
	"io"

	"github.com/marcelblijleven/fittie/profile/message"
)

// DecodeFileType reads only as much of r as needed to determine a FIT
// stream's symbolic file type: the header, the first definition record,
// and the first data record. It fails unless the first definition names
// the file_id message (global message number 0), since that is the one
// record type every FIT file is required to lead with.
func DecodeFileType(r io.Reader) (string, error) {
	s := newByteStream(r)

	if _, err := decodeHeader(s); err != nil {
		return "", err
	}

	rh, err := decodeRecordHeader(s)
	if err != nil {
		return "", err
	}
	if rh.IsCompressedTimestamp || !rh.IsDefinitionMessage {
		return "", invalidDefinition(s.Tell(), "first record must be a file_id definition message")
	}

	def, err := decodeDefinitionMessage(*rh, s)
	if err != nil {
		return "", err
	}
	if def.GlobalMessageType != 0 {
		return "", invalidDefinition(s.Tell(), "first definition message must be file_id (global message 0)")
	}

	drh, err := decodeRecordHeader(s)
	if err != nil {
		return "", err
	}
	if drh.IsDefinitionMessage {
		return "", invalidDefinition(s.Tell(), "expected a file_id data record after its definition")
	}

	dm, err := decodeDataMessage(def, newDeveloperDataRegistry(), s)
	if err != nil {
		return "", err
	}

	v, ok := dm.Get("type")
	if !ok || v == nil {
		return "", fmt.Errorf("file_id message has no type field")
	}
	n, ok := toInt64(v)
	if !ok {
		return "", fmt.Errorf("file_id type field has unexpected value %v", v)
	}

	name, ok := message.FileTypeName(uint64(n))
	if !ok {
		return "", fmt.Errorf("unknown file type code %d", n)
	}
	return name, nil
}
