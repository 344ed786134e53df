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
	"errors"
	"fmt"
)

var (
	ErrInvalidHeader           error = errors.New("invalid file header")
	ErrBadHeaderCRC            error = errors.New("header CRC mismatch")
	ErrInvalidRecordHeader     error = errors.New("invalid record header")
	ErrInvalidDefinition       error = errors.New("invalid definition message")
	ErrMissingDefinition       error = errors.New("no definition message for local message type")
	ErrMissingFieldDescription error = errors.New("missing developer field description")
	ErrShortRead               error = errors.New("short read")
	ErrBadFileCRC              error = errors.New("file CRC mismatch")
)

// DecodeError wraps one of the sentinel errors above with the byte offset
// at which decoding failed and a short human-readable detail.
type DecodeError struct {
	Err    error
	Offset int64
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Err, e.Offset, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newDecodeError(err error, offset int64, detail string) error {
	return &DecodeError{Err: err, Offset: offset, Detail: detail}
}

func invalidHeader(offset int64, detail string) error {
	return newDecodeError(ErrInvalidHeader, offset, detail)
}

func badHeaderCRC(offset int64, detail string) error {
	return newDecodeError(ErrBadHeaderCRC, offset, detail)
}

func invalidRecordHeader(offset int64, detail string) error {
	return newDecodeError(ErrInvalidRecordHeader, offset, detail)
}

func invalidDefinition(offset int64, detail string) error {
	return newDecodeError(ErrInvalidDefinition, offset, detail)
}

func missingDefinition(offset int64, localMessageType uint8) error {
	return newDecodeError(ErrMissingDefinition, offset, fmt.Sprintf("local message type %d", localMessageType))
}

func missingFieldDescription(offset int64, developerDataIndex, fieldNumber uint8) error {
	return newDecodeError(ErrMissingFieldDescription, offset, fmt.Sprintf("developer_data_index %d, field %d", developerDataIndex, fieldNumber))
}

func shortRead(offset int64, detail string) error {
	return newDecodeError(ErrShortRead, offset, detail)
}

func badFileCRC(offset int64, detail string) error {
	return newDecodeError(ErrBadFileCRC, offset, detail)
}
