package param

import (
	"fmt"
	"mime"
	"sort"
	"strings"
)

const (
	// Charset is the charset parameter of Content-type.
	Charset = "charset"

	// Boundary is the boundary parameter of a multipart Content-type.
	Boundary = "boundary"

	// Filename is the filename parameter of Content-disposition.
	Filename = "filename"
)

// Value is a parsed parameterized header body, as found in Content-type and
// Content-disposition. A Value is immutable. Use Modify to derive a changed
// copy.
type Value struct {
	v  string
	ps map[string]string
}

// Parse parses a header body into a Value.
func Parse(v string) (*Value, error) {
	mt, ps, err := mime.ParseMediaType(v)
	if err != nil {
		return nil, err
	}

	return &Value{mt, ps}, nil
}

// New creates a Value. Any parameter maps given are merged in order.
func New(v string, ps ...map[string]string) *Value {
	pv := &Value{v, map[string]string{}}
	for _, p := range ps {
		for k, val := range p {
			pv.ps[k] = val
		}
	}
	return pv
}

// Modifier is a change applied by Modify.
type Modifier func(*Value)

// Change replaces the primary value.
func Change(value string) Modifier {
	return func(pv *Value) {
		pv.v = value
	}
}

// Set sets the named parameter.
func Set(name, value string) Modifier {
	return func(pv *Value) {
		pv.ps[name] = value
	}
}

// Delete removes the named parameter.
func Delete(name string) Modifier {
	return func(pv *Value) {
		delete(pv.ps, name)
	}
}

// Modify clones pv and applies the changes to the clone:
//
//	v, _ := param.Parse("text/html; charset=latin1")
//	nv := param.Modify(v, param.Set(param.Charset, "utf-8"))
func Modify(pv *Value, changes ...Modifier) *Value {
	c := pv.Clone()
	for _, change := range changes {
		change(c)
	}
	return c
}

// Value returns the primary value, the part before the first semicolon.
func (pv *Value) Value() string {
	return pv.v
}

// Disposition is a synonym for Value, meant for Content-disposition.
func (pv *Value) Disposition() string {
	return pv.v
}

// Presentation is a synonym for Value, meant for Content-disposition.
func (pv *Value) Presentation() string {
	return pv.v
}

// MediaType is a synonym for Value, meant for Content-type.
func (pv *Value) MediaType() string {
	return pv.v
}

// Type returns the media type before the slash, or "" if there is no slash.
func (pv *Value) Type() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[:ix]
	}
	return ""
}

// Subtype returns the media type after the slash, or "" if there is no slash.
func (pv *Value) Subtype() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[ix+1:]
	}
	return ""
}

// Parameters returns the parameter map. Do not modify it.
func (pv *Value) Parameters() map[string]string {
	return pv.ps
}

// Parameter returns the named parameter.
func (pv *Value) Parameter(k string) string {
	return pv.ps[k]
}

// Filename returns the filename parameter.
func (pv *Value) Filename() string {
	return pv.ps[Filename]
}

// Charset returns the charset parameter.
func (pv *Value) Charset() string {
	return pv.ps[Charset]
}

// Boundary returns the boundary parameter.
func (pv *Value) Boundary() string {
	return pv.ps[Boundary]
}

// String serializes the value with its parameters, quoting parameter values
// where RFC 2045 requires it.
func (pv *Value) String() string {
	if s := mime.FormatMediaType(pv.v, pv.ps); s != "" {
		return s
	}

	pks := make([]string, 0, len(pv.ps))
	for k := range pv.ps {
		pks = append(pks, k)
	}
	sort.Strings(pks)

	parts := make([]string, len(pv.ps)+1)
	parts[0] = pv.v
	for n, k := range pks {
		parts[n+1] = fmt.Sprintf("%s=%q", k, pv.ps[k])
	}

	return strings.Join(parts, "; ")
}

// Bytes returns String as bytes.
func (pv *Value) Bytes() []byte {
	return []byte(pv.String())
}

// Clone returns a deep copy.
func (pv *Value) Clone() *Value {
	c := &Value{v: pv.v, ps: make(map[string]string, len(pv.ps))}
	for k, v := range pv.ps {
		c.ps[k] = v
	}
	return c
}
