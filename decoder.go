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
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/marcelblijleven/fittie/profile/basetype"
	"github.com/marcelblijleven/fittie/profile/message"
)

// DecoderOptions configures a Decoder. The zero value decodes with CRC
// verification enabled.
type DecoderOptions struct {
	// SkipCRC disables the running CRC-16 and its check against the file
	// trailer, letting a caller consume known-good test fixtures. A
	// non-zero CRC in a 14-byte header is still verified.
	SkipCRC bool
}

var DefaultDecoderOptions = DecoderOptions{}

func (o *DecoderOptions) Merge(opts ...DecoderOptions) {
	for _, opt := range opts {
		o.SkipCRC = o.SkipCRC || opt.SkipCRC
	}
}

// DecodedFile is one complete decoded FIT stream: its header, every data
// message bucketed by message name, the final snapshot of local message
// type bindings, and the registered developer data sources.
type DecodedFile struct {
	Header           *FileHeader
	Messages         map[string][]*DataMessage
	LocalDefinitions map[uint8]*DefinitionMessage
	DeveloperData    map[uint8]DeveloperDataSource
}

// Decoder decodes one or more chained FIT streams out of a single
// io.Reader. A single physical file may concatenate several self-contained
// FIT streams back to back; Decode always returns a slice of length >= 1.
type Decoder struct {
	options DecoderOptions
}

// NewDecoder creates a Decoder, merging opts over DefaultDecoderOptions.
func NewDecoder(opts ...DecoderOptions) *Decoder {
	options := DefaultDecoderOptions
	options.Merge(opts...)
	return &Decoder{options: options}
}

// Decode reads r to exhaustion, decoding every chained FIT stream it
// contains. Cancellation via ctx is checked once per record and once per
// chained stream; there are no internal suspension points beyond that.
func (d *Decoder) Decode(ctx context.Context, r io.Reader) ([]*DecodedFile, error) {
	log := FromContext(ctx)
	s := newByteStream(r)

	var out []*DecodedFile
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		df, err := d.decodeOne(ctx, s)
		DecodeDurationSeconds.Observe(time.Since(start).Seconds())
		if err != nil {
			DecodeErrorsTotal.Inc()
			return nil, fmt.Errorf("decode chained FIT stream %d: %w", i, err)
		}
		FilesDecodedTotal.Inc()
		out = append(out, df)
		log.V(1).Info("decoded FIT stream", "index", i, "messageTypes", len(df.Messages))

		if s.AtEOF() {
			return out, nil
		}
	}
}

// Decode is a package-level convenience for NewDecoder(opts...).Decode
// against context.Background().
func Decode(r io.Reader, opts ...DecoderOptions) ([]*DecodedFile, error) {
	return NewDecoder(opts...).Decode(context.Background(), r)
}

func (d *Decoder) decodeOne(ctx context.Context, s *byteStream) (*DecodedFile, error) {
	log := FromContext(ctx)
	s.ResetCRC()
	s.calcCRC = !d.options.SkipCRC

	header, err := decodeHeader(s)
	if err != nil {
		return nil, err
	}
	bodyEnd := s.Tell() + int64(header.DataSize)

	localDefs := make(map[uint8]*DefinitionMessage, 16)
	devRegistry := newDeveloperDataRegistry()
	messages := make(map[string][]*DataMessage)

	var lastTimestamp uint32
	haveTimestamp := false

	for s.Tell() < bodyEnd {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rh, err := decodeRecordHeader(s)
		if err != nil {
			return nil, err
		}

		switch {
		case rh.IsCompressedTimestamp:
			def, ok := localDefs[rh.LocalMessageType]
			if !ok {
				return nil, missingDefinition(s.Tell(), rh.LocalMessageType)
			}
			dm, err := decodeDataMessage(def, devRegistry, s)
			if err != nil {
				return nil, err
			}
			if !haveTimestamp {
				log.V(1).Info("compressed timestamp record seen before any full timestamp, leaving timestamp unset",
					"localMessageType", rh.LocalMessageType)
			} else {
				lastTimestamp = applyCompressedOffset(lastTimestamp, rh.TimeOffset)
				if _, exists := dm.Fields["timestamp"]; !exists {
					dm.order = append(dm.order, "timestamp")
				}
				dm.Fields["timestamp"] = uint64(lastTimestamp)
			}
			bucketMessage(messages, def.GlobalMessageType, dm)

		case rh.IsDefinitionMessage:
			def, err := decodeDefinitionMessage(*rh, s)
			if err != nil {
				return nil, err
			}
			localDefs[rh.LocalMessageType] = def

		default:
			def, ok := localDefs[rh.LocalMessageType]
			if !ok {
				return nil, missingDefinition(s.Tell(), rh.LocalMessageType)
			}
			dm, err := decodeDataMessage(def, devRegistry, s)
			if err != nil {
				return nil, err
			}
			if ts, ok := dm.Get("timestamp"); ok {
				if n, ok := toInt64(ts); ok {
					lastTimestamp = uint32(n)
					haveTimestamp = true
				}
			}
			switch def.GlobalMessageType {
			case 207:
				if err := registerDeveloperDataID(dm, devRegistry); err != nil {
					return nil, err
				}
			case 206:
				if err := registerFieldDescription(dm, devRegistry); err != nil {
					return nil, err
				}
			}
			bucketMessage(messages, def.GlobalMessageType, dm)
		}
	}

	calculated := s.CRC()
	s.calcCRC = false
	crcBuf := make([]byte, 2)
	if _, err := s.Read(crcBuf); err != nil {
		return nil, shortRead(s.Tell(), "trailer CRC")
	}
	expected := binary.LittleEndian.Uint16(crcBuf)
	if !d.options.SkipCRC && expected != calculated {
		return nil, badFileCRC(s.Tell(), fmt.Sprintf("expected %d, computed %d", expected, calculated))
	}

	return &DecodedFile{
		Header:           header,
		Messages:         messages,
		LocalDefinitions: localDefs,
		DeveloperData:    devRegistry.Snapshot(),
	}, nil
}

// bucketMessage resolves gmt's canonical name via the profile and appends
// dm under it, falling back to "unknown_<N>" on a profile lookup miss. A
// miss is routine, not fatal: new or vendor-specific message numbers show
// up under a synthetic name rather than aborting the decode.
func bucketMessage(messages map[string][]*DataMessage, gmt uint16, dm *DataMessage) {
	name, known := message.NameOf(gmt)
	if !known {
		name = fmt.Sprintf("unknown_%d", gmt)
		ProfileMissesTotal.Inc()
	}
	messages[name] = append(messages[name], dm)
	MessagesDecodedTotal.WithLabelValues(name).Inc()
}

// registerDeveloperDataID stores a developer_data_id (207) message's
// fields as the identity of its developer_data_index.
func registerDeveloperDataID(dm *DataMessage, reg *developerDataRegistry) error {
	idxVal, ok := dm.Get("developer_data_index")
	if !ok {
		return fmt.Errorf("developer_data_id message missing developer_data_index")
	}
	idx, ok := toInt64(idxVal)
	if !ok {
		return fmt.Errorf("developer_data_id: unexpected developer_data_index value %v", idxVal)
	}

	identity := make(map[string]interface{}, len(dm.Fields))
	for k, v := range dm.Fields {
		identity[k] = v
	}
	reg.registerSource(uint8(idx), identity)
	return nil
}

// registerFieldDescription stores a field_description (206) message as a
// FieldDescription, resolvable by subsequent developer fields that name
// its (developer_data_index, field_definition_number) pair.
func registerFieldDescription(dm *DataMessage, reg *developerDataRegistry) error {
	idxVal, ok := dm.Get("developer_data_index")
	if !ok {
		return fmt.Errorf("field_description message missing developer_data_index")
	}
	idx, ok := toInt64(idxVal)
	if !ok {
		return fmt.Errorf("field_description: unexpected developer_data_index value %v", idxVal)
	}

	numVal, ok := dm.Get("field_definition_number")
	if !ok {
		return fmt.Errorf("field_description message missing field_definition_number")
	}
	num, ok := toInt64(numVal)
	if !ok {
		return fmt.Errorf("field_description: unexpected field_definition_number value %v", numVal)
	}

	name, _ := dm.Fields["field_name"].(string)

	var bt basetype.BaseType
	if btVal, ok := dm.Get("fit_base_type_id"); ok {
		if n, ok := toInt64(btVal); ok {
			bt, _ = basetype.Lookup(uint8(n))
		}
	}
	units, _ := dm.Fields["units"].(string)

	reg.registerDescription(uint8(idx), FieldDescription{
		DeveloperDataIndex:    uint8(idx),
		FieldDefinitionNumber: uint8(num),
		FieldName:             name,
		BaseType:              bt,
		Units:                 units,
	})
	return nil
}
