package fit

import (
	"bytes"
	"io"
)

// byteReader is a small helper shared by this package's tests to turn a
// literal byte slice into the io.Reader the decoder consumes.
func byteReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}
