package message

import (
	"bytes"
	"io"

	"github.com/zostay/go-email-premailer/message/header"
	"github.com/zostay/go-email-premailer/message/transfer"
)

// Opaque is a leaf message: a header and a body, much like net/mail.Message.
type Opaque struct {
	// Header is the header of the message or part.
	header.Header

	// Reader holds the body content. It may be nil for an empty body.
	io.Reader

	// encoded is true when the bytes in Reader still carry the
	// Content-transfer-encoding. Parsing leaves them encoded unless
	// DecodeTransferEncoding is given. Bodies set with SetContent or
	// built with a Buffer are not encoded.
	encoded bool
}

// WriteTo writes the header and body to w. When the body is held decoded, the
// Content-transfer-encoding from the header is applied on the way out using
// the header's line break.
//
// The body is buffered in memory, so WriteTo may be called more than once.
func (m *Opaque) WriteTo(w io.Writer) (int64, error) {
	total, err := m.Header.WriteTo(w)
	if err != nil {
		return total, err
	}

	body, err := m.Content()
	if err != nil {
		return total, err
	}

	if !m.encoded && !m.isMultipartType() {
		cte, _ := m.GetTransferEncoding()
		body, err = transfer.EncodeBytes(cte, body, m.Break())
		if err != nil {
			return total, err
		}
	}

	n, err := w.Write(body)
	total += int64(n)
	return total, err
}

func (m *Opaque) isMultipartType() bool {
	ct, err := m.GetContentType()
	return err == nil && ct.Type() == "multipart"
}

// IsMultipart always returns false.
func (m *Opaque) IsMultipart() bool {
	return false
}

// IsEncoded returns true when reading the body returns the bytes exactly as
// they will be written, with the Content-transfer-encoding still applied. When
// false, the body has been decoded (or was never encoded) and WriteTo will
// encode it.
func (m *Opaque) IsEncoded() bool {
	return m.encoded
}

// GetHeader returns the header.
func (m *Opaque) GetHeader() *header.Header {
	return &m.Header
}

// GetReader returns the body reader. Reading from it directly consumes the
// body. Prefer Content.
func (m *Opaque) GetReader() io.Reader {
	return m.Reader
}

// GetParts always returns nil.
func (m *Opaque) GetParts() []Part {
	return nil
}

// Content reads the whole body and puts it back behind a fresh reader so it
// can be read again. The bytes are encoded when IsEncoded is true.
func (m *Opaque) Content() ([]byte, error) {
	if m.Reader == nil {
		return nil, nil
	}

	b, err := io.ReadAll(m.Reader)
	if err != nil {
		return nil, err
	}

	m.Reader = bytes.NewReader(b)
	return b, nil
}

// DecodedContent returns the body with any Content-transfer-encoding removed.
func (m *Opaque) DecodedContent() ([]byte, error) {
	b, err := m.Content()
	if err != nil || !m.encoded {
		return b, err
	}

	return io.ReadAll(transfer.ApplyTransferDecoding(&m.Header, bytes.NewReader(b)))
}

// SetContent replaces the body with decoded bytes. WriteTo will apply the
// Content-transfer-encoding named in the header.
func (m *Opaque) SetContent(b []byte) {
	m.Reader = bytes.NewReader(b)
	m.encoded = false
}
