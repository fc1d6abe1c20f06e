package field

import "bytes"

// BadStartError is returned when the header begins with text that does not
// look like a header field. The skipped text is kept in BadStart.
type BadStartError struct {
	BadStart []byte
}

// Error returns the error message.
func (err *BadStartError) Error() string {
	return "header starts with text that does not appear to be a header"
}

// Line is the unparsed content of one header field, continuations included.
type Line []byte

// Lines is the unparsed content of zero or more header fields.
type Lines []Line

// ParseLines splits header bytes into field lines. A line that starts with a
// space or tab, or that has no colon, continues the previous field. Such lines
// at the very start of input are dropped and reported in a BadStartError,
// though the remaining Lines are still returned.
func ParseLines(m, lb []byte) (Lines, error) {
	h := make(Lines, 0, len(m)/80+1)
	var err *BadStartError
	for _, line := range bytes.SplitAfter(m, lb) {
		if len(line) == 0 {
			break
		}

		if line[0] == '\t' || line[0] == ' ' || bytes.IndexByte(line, ':') < 0 {
			if len(h) == 0 {
				if err == nil {
					err = &BadStartError{}
				}
				err.BadStart = append(err.BadStart, line...)
				continue
			}

			h[len(h)-1] = append(h[len(h)-1], line...)
			continue
		}

		h = append(h, line)
	}

	if err != nil {
		return h, err
	}
	return h, nil
}

// Parse turns one field line into a Field. The trailing line break is removed.
// The body is unfolded, trimmed and MIME word decoded. When decoding fails the
// encoded body is kept. The original bytes are kept as Raw.
func Parse(f Line, lb []byte) *Field {
	rawField := bytes.TrimSuffix(f, lb)

	off := 1
	ix := bytes.IndexByte(rawField, ':')
	if ix < 0 {
		ix = len(rawField)
		off = 0
	}

	name := string(DefaultFoldEncoding.Unfold(rawField[:ix]))
	body := string(bytes.TrimSpace(DefaultFoldEncoding.Unfold(rawField[ix+off:])))
	if decBody, err := Decode(body); err == nil {
		body = decBody
	}

	return &Field{
		Base: Base{name, body},
		Raw:  &Raw{rawField, ix},
	}
}
