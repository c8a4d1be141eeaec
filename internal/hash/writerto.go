package hash

import (
	"bytes"
	"encoding/binary"
	"io"
)

// WriterToWithDomain is implemented by values that can be written to a Hash.
//
// The domain separates values of different types whose encodings coincide.
type WriterToWithDomain interface {
	io.WriterTo

	// Domain returns a context string, unique for each implementor.
	Domain() string
}

// writeWithDomain writes len(domain) ‖ domain ‖ len(data) ‖ data, with 8 byte big-endian
// lengths, so that a sequence of writes determines each of its parts.
func writeWithDomain(w io.Writer, object WriterToWithDomain) error {
	var data bytes.Buffer
	if _, err := object.WriteTo(&data); err != nil {
		return err
	}
	domain := object.Domain()

	buf := make([]byte, 0, 16+len(domain)+data.Len())
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(domain)))
	buf = append(buf, domain...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(data.Len()))
	buf = append(buf, data.Bytes()...)
	_, err := w.Write(buf)
	return err
}

// BytesWithDomain annotates a chunk of data with a domain.
type BytesWithDomain struct {
	TheDomain string
	Bytes     []byte
}

// WriteTo implements io.WriterTo.
func (b BytesWithDomain) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes)
	return int64(n), err
}

// Domain implements WriterToWithDomain.
func (b BytesWithDomain) Domain() string {
	return b.TheDomain
}
