package transfer

import (
	"io"
	"mime/quotedprintable"
)

// NewQuotedPrintableEncoder quoted-printable encodes everything written to the
// returned io.WriteCloser onto w. Lines are broken with CRLF as
// mime/quotedprintable does. Close must be called to flush.
func NewQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	return &writer{qpw, qpw}
}

// NewQuotedPrintableDecoder decodes quoted-printable read from r.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(r)
}
