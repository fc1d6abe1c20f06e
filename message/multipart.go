package message

import (
	"bytes"
	"io"

	"github.com/zostay/go-email-premailer/message/header"
)

// Part is one node of a message tree, either a branch or a leaf.
//
// A branch returns true from IsMultipart and its children from GetParts. Its
// GetReader returns nil.
//
// A leaf returns false from IsMultipart and its content from GetReader. Its
// GetParts returns nil. A leaf may still hold multipart content that was never
// split into parts.
type Part interface {
	io.WriterTo

	// IsMultipart returns true for a branch.
	IsMultipart() bool

	// IsEncoded returns true if GetReader returns the bytes with the
	// Content-transfer-encoding still applied. Always false for a branch.
	IsEncoded() bool

	// GetHeader returns the header of the part.
	GetHeader() *header.Header

	// GetReader returns the content of a leaf and nil for a branch.
	GetReader() io.Reader

	// GetParts returns the children of a branch and nil for a leaf.
	GetParts() []Part
}

// Generic is a Part used as a whole message rather than a sub-part. A Generic
// is always either a *Opaque or a *Multipart, so a type switch over those two
// types is exhaustive.
type Generic = Part

// Multipart is a message whose body has been split into parts. Its
// Content-type should be one of the multipart/* types with a boundary.
type Multipart struct {
	// Header is the header for the message.
	header.Header

	// prefix is the preamble before the first boundary and suffix is the
	// epilogue after the final boundary. They are kept for byte exact round
	// trips.
	//
	// A nil prefix means the input had no opening boundary and none is
	// written. A non-empty prefix must end in a line break.
	//
	// A nil suffix means the input had no final boundary and none is
	// written.
	prefix, suffix []byte

	parts []Part
}

// WriteTo writes the header, the preamble, each part between boundaries, the
// final boundary, and the epilogue to w. It fails with header.ErrNoSuchField or
// header.ErrNoSuchFieldParameter if the Content-type boundary is not set.
func (mm *Multipart) WriteTo(w io.Writer) (int64, error) {
	if _, err := mm.GetBoundary(); err != nil {
		return 0, err
	}

	n, err := mm.Header.WriteTo(w)
	if err != nil {
		return n, err
	}

	bn, err := mm.writeBody(w)
	return n + bn, err
}

// writeBody writes everything after the header.
func (mm *Multipart) writeBody(w io.Writer) (int64, error) {
	boundary, err := mm.GetBoundary()
	if err != nil {
		return 0, err
	}

	br := mm.Break().Bytes()
	dash := []byte("--" + boundary)

	var buf bytes.Buffer
	buf.Write(mm.prefix)
	for i, part := range mm.parts {
		if i > 0 {
			buf.Write(br)
		}
		if i > 0 || mm.prefix != nil {
			buf.Write(dash)
			buf.Write(br)
		}

		if _, err := part.WriteTo(&buf); err != nil {
			return 0, err
		}
	}

	if mm.suffix != nil {
		buf.Write(br)
		buf.Write(dash)
		buf.WriteString("--")
		buf.Write(mm.suffix)
	}

	return buf.WriteTo(w)
}

// IsMultipart always returns true.
func (mm *Multipart) IsMultipart() bool {
	return true
}

// IsEncoded always returns false.
func (mm *Multipart) IsEncoded() bool {
	return false
}

// GetHeader returns the header for the message.
func (mm *Multipart) GetHeader() *header.Header {
	return &mm.Header
}

// GetReader always returns nil.
func (mm *Multipart) GetReader() io.Reader {
	return nil
}

// GetParts returns the sub-parts of this message.
func (mm *Multipart) GetParts() []Part {
	return mm.parts
}

// ReplacePart swaps old for replacement in this multipart's direct children.
// Parts are matched by identity. It returns false and changes nothing when old
// is not a direct child.
func (mm *Multipart) ReplacePart(old, replacement Part) bool {
	for i, p := range mm.parts {
		if p == old {
			mm.parts[i] = replacement
			return true
		}
	}
	return false
}

// InsertPart places part before the direct child at index i. An i equal to
// the number of parts appends. It returns false and changes nothing when i is
// out of range.
func (mm *Multipart) InsertPart(i int, part Part) bool {
	if i < 0 || i > len(mm.parts) {
		return false
	}

	mm.parts = append(mm.parts, nil)
	copy(mm.parts[i+1:], mm.parts[i:])
	mm.parts[i] = part
	return true
}

// IndexOf returns the position of part among the direct children, or -1.
func (mm *Multipart) IndexOf(part Part) int {
	for i, p := range mm.parts {
		if p == part {
			return i
		}
	}
	return -1
}

func newMultipart(mt string, lb header.Break, parts []Part) *Multipart {
	m := &Multipart{
		prefix: []byte{},
		suffix: []byte{},
		parts:  parts,
	}
	m.SetBreak(lb)
	m.SetMediaType(mt)
	_ = m.SetBoundary(GenerateBoundary())
	return m
}

// MultipartAlternative returns a multipart/alternative with a fresh boundary
// holding the given parts. The line break is taken from the first part. The
// result has no preamble or epilogue, which suits nesting inside another
// multipart.
func MultipartAlternative(parts ...Part) *Multipart {
	return newMultipart("multipart/alternative", breakOf(parts), parts)
}

// MultipartMixed works like MultipartAlternative for multipart/mixed.
func MultipartMixed(parts ...Part) *Multipart {
	return newMultipart("multipart/mixed", breakOf(parts), parts)
}

func breakOf(parts []Part) header.Break {
	if len(parts) > 0 {
		return parts[0].GetHeader().Break()
	}
	return header.LF
}
