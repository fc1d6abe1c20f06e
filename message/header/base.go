package header

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/zostay/go-email-premailer/message/header/field"
)

// ErrIndexOutOfRange is returned when a field index is too large or too small.
var ErrIndexOutOfRange = errors.New("header field index is out of range")

// Base is the low-level storage of a header: an ordered list of fields, the
// line break used to write them, and the fold encoding used for fields that
// have been changed since parsing.
type Base struct {
	lbr    Break
	vf     *field.FoldEncoding
	fields []*field.Field
}

func (h *Base) initBase() {
	if h.lbr == "" {
		h.lbr = LF
	}
	if h.fields == nil {
		h.fields = make([]*field.Field, 0, 10)
	}
}

// Clone returns a deep copy of the header.
func (h *Base) Clone() *Base {
	fs := make([]*field.Field, len(h.fields))
	for i, f := range h.fields {
		fs[i] = f.Clone()
	}
	return &Base{lbr: h.lbr, vf: h.vf, fields: fs}
}

// FoldEncoding returns the fold encoding used when writing fields that are not
// raw.
func (h *Base) FoldEncoding() *field.FoldEncoding {
	if h.vf == nil {
		return field.DefaultFoldEncoding
	}
	return h.vf
}

// SetFoldEncoding changes the fold encoding.
func (h *Base) SetFoldEncoding(vf *field.FoldEncoding) {
	h.vf = vf
}

// Break returns the line break that ends each field and the header itself.
// It defaults to LF.
func (h *Base) Break() Break {
	if h.lbr == "" {
		return LF
	}
	return h.lbr
}

// SetBreak changes the line break.
func (h *Base) SetBreak(lbr Break) {
	h.lbr = lbr
}

// Len returns the number of fields.
func (h *Base) Len() int {
	return len(h.fields)
}

// GetField returns the nth field or nil.
func (h *Base) GetField(n int) *field.Field {
	if n < 0 || n >= len(h.fields) {
		return nil
	}
	return h.fields[n]
}

// GetFieldNamed returns the nth (0-indexed) field with the given name or nil.
// Names match case-insensitively.
func (h *Base) GetFieldNamed(name string, n int) *field.Field {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			if n == 0 {
				return f
			}
			n--
		}
	}
	return nil
}

// GetAllFieldsNamed returns all fields with the given name.
func (h *Base) GetAllFieldsNamed(name string) []*field.Field {
	fs := make([]*field.Field, 0, 2)
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			fs = append(fs, f)
		}
	}
	return fs
}

// GetIndexesNamed returns the indexes of fields with the given name.
func (h *Base) GetIndexesNamed(name string) []int {
	is := make([]int, 0, 2)
	for i, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			is = append(is, i)
		}
	}
	return is
}

// ListFields returns a copy of the field list. The fields themselves are
// shared.
func (h *Base) ListFields() []*field.Field {
	fs := make([]*field.Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// InsertBeforeField creates a field and inserts it at index n. Indexes out of
// range are clamped.
func (h *Base) InsertBeforeField(n int, name, body string) {
	h.insert(n, field.New(name, body))
}

// AppendField adds an existing field object to the end of the header. Raw
// fields are kept raw.
func (h *Base) AppendField(f *field.Field) {
	h.insert(len(h.fields), f)
}

func (h *Base) insert(n int, f *field.Field) {
	h.initBase()

	if n < 0 {
		n = 0
	}
	if n > len(h.fields) {
		n = len(h.fields)
	}

	h.fields = append(h.fields, nil)
	copy(h.fields[n+1:], h.fields[n:])
	h.fields[n] = f
}

// ClearFields removes every field.
func (h *Base) ClearFields() {
	h.initBase()
	h.fields = h.fields[:0]
}

// DeleteField removes the nth field.
func (h *Base) DeleteField(n int) error {
	if n < 0 || n >= len(h.fields) {
		return ErrIndexOutOfRange
	}

	copy(h.fields[n:], h.fields[n+1:])
	h.fields[len(h.fields)-1] = nil
	h.fields = h.fields[:len(h.fields)-1]

	return nil
}

// WriteTo writes the header, including the blank line that ends it. Raw fields
// are written exactly as parsed. Other fields are folded with FoldEncoding.
func (h *Base) WriteTo(w io.Writer) (int64, error) {
	lb := h.Break().Bytes()
	vf := h.FoldEncoding()

	var buf bytes.Buffer
	for _, f := range h.fields {
		if f.IsRaw() {
			buf.Write(f.Bytes())
			buf.Write(lb)
			continue
		}

		if _, err := vf.Fold(&buf, f.Bytes(), field.Break(lb)); err != nil {
			return 0, err
		}
	}
	buf.Write(lb)

	return buf.WriteTo(w)
}

// Bytes returns the header as written by WriteTo.
func (h *Base) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = h.WriteTo(&buf)
	return buf.Bytes()
}

// String returns the header as written by WriteTo.
func (h *Base) String() string {
	return string(h.Bytes())
}
