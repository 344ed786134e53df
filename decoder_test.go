package fit

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"testing"
)

// fileIDFixture returns a minimal, CRC-correct single FIT stream: a 12-byte
// header, a file_id definition and data record, and a trailer CRC-16
// computed over the whole stream.
func fileIDFixture() []byte {
	b, err := hex.DecodeString(
		"0c106408230000002e46495440000000000500010001028402028403048c0404860" +
			"0040f001600d204000028c60a25862f",
	)
	if err != nil {
		panic(err)
	}
	return b
}

func TestDecodeFileIDStreamWithCRC(t *testing.T) {
	files, err := Decode(bytes.NewReader(fileIDFixture()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}

	df := files[0]
	if df.Header.Length != 12 || df.Header.DataSize != 35 {
		t.Fatalf("unexpected header: %+v", df.Header)
	}

	fileIDs := df.Messages["file_id"]
	if len(fileIDs) != 1 {
		t.Fatalf("got %d file_id messages, want 1", len(fileIDs))
	}

	got, ok := fileIDs[0].Get("garmin_product")
	if !ok || got != uint64(22) {
		t.Fatalf("garmin_product = %v (ok=%v), want 22", got, ok)
	}
}

func TestDecodeRejectsBadTrailerCRC(t *testing.T) {
	b := fileIDFixture()
	b[len(b)-1] ^= 0xFF // corrupt the trailer CRC's high byte

	if _, err := Decode(bytes.NewReader(b)); err == nil {
		t.Fatal("expected a bad-file-CRC error")
	}
}

func TestDecodeSkipCRCAcceptsCorruptedTrailer(t *testing.T) {
	b := fileIDFixture()
	b[len(b)-1] ^= 0xFF

	if _, err := Decode(bytes.NewReader(b), DecoderOptions{SkipCRC: true}); err != nil {
		t.Fatalf("SkipCRC decode should tolerate a bad trailer CRC: %v", err)
	}
}

func TestDecodeChainedStreamsReturnsTwoFiles(t *testing.T) {
	single := fileIDFixture()
	chained := append(append([]byte{}, single...), single...)

	files, err := Decode(bytes.NewReader(chained))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
}

func TestDecodeMissingDefinitionIsFatal(t *testing.T) {
	// header only, declaring a 1-byte body, followed by a bare data record
	// for a local message type that was never defined.
	header := []byte{12, 16, 0x64, 0x08, 1, 0, 0, 0, '.', 'F', 'I', 'T'}
	body := []byte{0x00}
	crc := crcCompute(append(append([]byte{}, header...), body...))
	buf := append(append(append([]byte{}, header...), body...), byte(crc), byte(crc>>8))

	_, err := Decode(bytes.NewReader(buf))
	if err == nil {
		t.Fatal("expected a missing-definition error")
	}
}

func TestDecoderRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDecoder().Decode(ctx, bytes.NewReader(fileIDFixture()))
	if err == nil {
		t.Fatal("expected context cancellation to surface as an error")
	}
}

// developerFieldFixture builds a complete FIT stream's body that registers
// a developer_data_id (207) source and, if registerDescription is true, a
// field_description (206) for it, then reads one developer field through a
// definition whose header carries the developer-data bit. It returns the
// full header+body+trailer-CRC byte stream.
func developerFieldFixture(registerDescription bool) []byte {
	var body []byte

	// local 0: developer_data_id (207), one field: developer_data_index.
	body = append(body,
		0x40,       // definition, local 0
		0x00, 0x00, // reserved, architecture (little endian)
		0xCF, 0x00, // global message number 207
		0x01,       // one field
		3, 1, 0x02, // developer_data_index: field 3, size 1, uint8
	)
	body = append(body,
		0x00, // data, local 0
		5,    // developer_data_index = 5
	)

	if registerDescription {
		// local 1: field_description (206), four fields.
		body = append(body,
			0x41,       // definition, local 1
			0x00, 0x00, // reserved, architecture
			0xCE, 0x00, // global message number 206
			0x04,       // four fields
			0, 1, 0x02, // developer_data_index: field 0, size 1, uint8
			1, 1, 0x02, // field_definition_number: field 1, size 1, uint8
			2, 1, 0x02, // fit_base_type_id: field 2, size 1, uint8
			3, 7, 0x07, // field_name: field 3, size 7, string
		)
		body = append(body,
			0x01, // data, local 1
			5,    // developer_data_index = 5
			10,   // field_definition_number = 10
			0x84, // fit_base_type_id = uint16
		)
		body = append(body, 'w', 'i', 'd', 'g', 'e', 't', 0x00) // field_name = "widget"
	}

	// local 2: a definition whose header carries the developer-data bit,
	// declaring no standard fields and one developer field referencing
	// (developer_data_index=5, field_definition_number=10).
	body = append(body,
		0x62,       // definition + developer data, local 2
		0x00, 0x00, // reserved, architecture
		0x14, 0x00, // global message number 20 (record)
		0x00,       // zero standard fields
		0x01,       // one developer field
		10, 2, 5, // field 10, size 2, developer_data_index 5
	)
	body = append(body,
		0x02,       // data, local 2
		0x2A, 0x00, // developer field value = 42 (uint16 little endian)
	)

	header := []byte{12, 16, 0x64, 0x08, byte(len(body)), byte(len(body) >> 8), byte(len(body) >> 16), byte(len(body) >> 24), '.', 'F', 'I', 'T'}
	crc := crcCompute(append(append([]byte{}, header...), body...))
	return append(append(append([]byte{}, header...), body...), byte(crc), byte(crc>>8))
}

func TestDecodeResolvesDeveloperField(t *testing.T) {
	files, err := Decode(bytes.NewReader(developerFieldFixture(true)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	df := files[0]

	records := df.Messages["record"]
	if len(records) != 1 {
		t.Fatalf("got %d record messages, want 1", len(records))
	}

	got, ok := records[0].Get("widget")
	if !ok {
		t.Fatal("developer field \"widget\" missing from decoded message")
	}
	if got.(uint64) != 42 {
		t.Fatalf("widget = %v, want 42", got)
	}

	src, ok := df.DeveloperData[5]
	if !ok {
		t.Fatal("developer data source 5 not registered")
	}
	if src.Identity["developer_data_index"] != uint64(5) {
		t.Fatalf("unexpected developer data identity: %+v", src.Identity)
	}
	if _, ok := src.Descriptions[10]; !ok {
		t.Fatal("field description for field 10 not registered")
	}
}

func TestDecodeMissingFieldDescriptionIsFatal(t *testing.T) {
	_, err := Decode(bytes.NewReader(developerFieldFixture(false)))
	if err == nil {
		t.Fatal("expected a missing-field-description error")
	}
	if !errors.Is(err, ErrMissingFieldDescription) {
		t.Fatalf("got %v, want an error wrapping ErrMissingFieldDescription", err)
	}
}
