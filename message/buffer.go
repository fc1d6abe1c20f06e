package message

import (
	"bytes"
	"errors"

	"github.com/zostay/go-email-premailer/message/header"
)

// DefaultMultipartContentType is used for a multipart Buffer whose header has
// no Content-type.
const DefaultMultipartContentType = "multipart/mixed"

// BufferMode tells whether a Buffer is collecting bytes or parts.
type BufferMode int

const (
	// ModeUnset indicates that the Buffer has not yet been modified.
	ModeUnset BufferMode = iota

	// ModeSingle indicates that the Buffer has been used as an io.Writer.
	ModeSingle

	// ModeMultipart indicates that parts have been added to the Buffer.
	ModeMultipart
)

var (
	// ErrPartsBuffer is the panic value of Write after Add has been called.
	ErrPartsBuffer = errors.New("message buffer is in parts mode")

	// ErrOpaqueBuffer is the panic value of Add after Write has been called.
	ErrOpaqueBuffer = errors.New("message buffer is in opaque mode")

	// ErrModeUnset is the panic value of Opaque and Multipart when nothing
	// has been written or added.
	ErrModeUnset = errors.New("no message has been built")

	// ErrParsesAsNotMultipart is returned by Multipart when written bytes do
	// not parse as a multipart message.
	ErrParsesAsNotMultipart = errors.New("cannot parse non-multipart message as multipart")
)

// Buffer builds a message. Set fields on the embedded Header, then either
// write the body to it as an io.Writer or Add parts to it, but not both.
// Finish with Opaque or Multipart.
//
//	var b message.Buffer
//	b.SetMediaType("text/plain")
//	_, _ = fmt.Fprintln(&b, "Hello")
//	msg := b.Opaque()
type Buffer struct {
	header.Header
	parts []Part
	buf   *bytes.Buffer
}

// Mode reports which way the Buffer is being used.
func (b *Buffer) Mode() BufferMode {
	switch {
	case b.parts != nil:
		return ModeMultipart
	case b.buf != nil:
		return ModeSingle
	default:
		return ModeUnset
	}
}

// SetMultipart switches the Buffer to ModeMultipart with room for capacity
// parts. It panics in ModeSingle.
func (b *Buffer) SetMultipart(capacity int) {
	if err := b.initParts(capacity); err != nil {
		panic(err)
	}
}

// SetSingle switches the Buffer to ModeSingle, which allows an empty body. It
// panics in ModeMultipart.
func (b *Buffer) SetSingle() {
	if err := b.initBuffer(); err != nil {
		panic(err)
	}
}

func (b *Buffer) initBuffer() error {
	if b.parts != nil {
		return ErrPartsBuffer
	}
	if b.buf == nil {
		b.buf = &bytes.Buffer{}
	}
	return nil
}

func (b *Buffer) initParts(capacity int) error {
	if capacity == 0 {
		capacity = 10
	}
	if b.buf != nil {
		return ErrOpaqueBuffer
	}
	if b.parts == nil {
		b.parts = make([]Part, 0, capacity)
	}
	return nil
}

// Add appends parts. It panics in ModeSingle.
func (b *Buffer) Add(msgs ...Part) {
	if err := b.initParts(0); err != nil {
		panic(err)
	}
	b.parts = append(b.parts, msgs...)
}

// Write appends decoded body bytes. It panics in ModeMultipart.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.initBuffer(); err != nil {
		panic(err)
	}
	return b.buf.Write(p)
}

// WriteString appends decoded body text. It panics in ModeMultipart.
func (b *Buffer) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

func (b *Buffer) prepareForMultipartOutput() {
	if _, err := b.GetMediaType(); errors.Is(err, header.ErrNoSuchField) {
		b.SetMediaType(DefaultMultipartContentType)
	}

	if _, err := b.GetBoundary(); errors.Is(err, header.ErrNoSuchFieldParameter) {
		_ = b.SetBoundary(GenerateBoundary())
	}
}

// Opaque returns the built message as an *Opaque. In ModeSingle the body is
// the written bytes, which WriteTo will transfer encode. In ModeMultipart the
// parts are serialized into the body, after making sure the Content-type is
// multipart with a boundary. It panics in ModeUnset.
//
// The Buffer should not be used afterward.
func (b *Buffer) Opaque() *Opaque {
	switch b.Mode() {
	case ModeSingle:
		return &Opaque{
			Header: b.Header,
			Reader: bytes.NewReader(b.buf.Bytes()),
		}
	case ModeMultipart:
		mm, _ := b.Multipart()

		buf := &bytes.Buffer{}
		_, _ = mm.writeBody(buf)

		return &Opaque{
			Header:  mm.Header,
			Reader:  bytes.NewReader(buf.Bytes()),
			encoded: true,
		}
	}
	panic(ErrModeUnset)
}

// Multipart returns the built message as a *Multipart. The Content-type is
// set to DefaultMultipartContentType if missing and a boundary is generated
// if missing. The message ends with a line break after the final boundary.
//
// In ModeSingle the written bytes are parsed one level deep. If they are not
// a multipart message, ErrParsesAsNotMultipart is returned. It panics in
// ModeUnset.
//
// The Buffer should not be used afterward.
func (b *Buffer) Multipart() (*Multipart, error) {
	if b.Mode() == ModeUnset {
		panic(ErrModeUnset)
	}

	b.prepareForMultipartOutput()

	if b.Mode() == ModeSingle {
		msg := &Opaque{Header: b.Header, Reader: bytes.NewReader(b.buf.Bytes()), encoded: true}
		pr := defaultParser.clone()
		WithoutRecursion()(pr)
		gmsg, err := pr.parse(msg, 0)
		if mm, isMultipart := gmsg.(*Multipart); isMultipart {
			return mm, err
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrParsesAsNotMultipart
	}

	return &Multipart{
		Header: b.Header,
		prefix: []byte{},
		suffix: b.Break().Bytes(),
		parts:  b.parts,
	}, nil
}
