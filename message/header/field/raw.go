package field

// Raw holds the original bytes of a parsed field, without the trailing line
// break. Objects of this type are immutable.
type Raw struct {
	field []byte
	colon int
}

// String returns the Raw as a string.
func (f *Raw) String() string {
	return string(f.field)
}

// Bytes returns the Raw.
func (f *Raw) Bytes() []byte {
	return f.field
}
