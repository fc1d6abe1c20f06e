package field

import "bytes"

// Field is a single header field. The logical name and body live in Base. A
// field parsed from an existing message also keeps the original bytes in Raw
// so the header can be written back out exactly as it arrived.
//
// Name() and Body() always read from Base. String() and Bytes() prefer Raw and
// fall back to Base. Calling SetName() or SetBody() drops Raw, which means the
// field will be regenerated (and folded) on output.
type Field struct {
	Base
	*Raw
}

// New constructs a new field with no original value.
func New(name, body string) *Field {
	return &Field{Base{name, body}, nil}
}

// String returns the Raw.String() if Raw is not nil. It returns the
// Base.String() otherwise.
func (f *Field) String() string {
	if f.Raw != nil {
		return f.Raw.String()
	}
	return f.Base.String()
}

// Bytes returns the Raw.Bytes() if Raw is not nil. It returns the Base.Bytes()
// otherwise.
func (f *Field) Bytes() []byte {
	if f.Raw != nil {
		return f.Raw.Bytes()
	}
	return f.Base.Bytes()
}

// Name returns the Base.Name().
func (f *Field) Name() string {
	return f.Base.Name()
}

// Body returns the Base.Body().
func (f *Field) Body() string {
	return f.Base.Body()
}

// IsRaw returns true when the field will be output from its original bytes.
func (f *Field) IsRaw() bool {
	return f.Raw != nil
}

// SetName sets the name of the field. Raw is cleared.
func (f *Field) SetName(n string) {
	f.Raw = nil
	f.Base.SetName(n)
}

// SetBody sets the body of the field. Raw is cleared.
func (f *Field) SetBody(b string) {
	f.Raw = nil
	f.Base.SetBody(b)
}

// SetRaw replaces Raw with the given bytes. The logical name and body are left
// alone.
func (f *Field) SetRaw(o []byte) {
	ix := bytes.IndexRune(o, ':')
	if ix < 0 {
		ix = len(o)
	}
	f.Raw = &Raw{o, ix}
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	c := &Field{Base: f.Base}
	if f.Raw != nil {
		raw := make([]byte, len(f.Raw.field))
		copy(raw, f.Raw.field)
		c.Raw = &Raw{raw, f.Raw.colon}
	}
	return c
}
