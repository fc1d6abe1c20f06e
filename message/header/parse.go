package header

import (
	"errors"

	"github.com/zostay/go-email-premailer/message/header/field"
)

// Parse parses m as a complete header using the line break lb. The blank line
// that ends a header should not be included.
//
// Every parsed field keeps its original bytes, so writing the header back out
// reproduces m exactly until a field is changed. A leading run of junk lines is
// dropped and reported with a *field.BadStartError alongside the header.
func Parse(m []byte, lb Break) (*Header, error) {
	lines, err := field.ParseLines(m, lb.Bytes())

	var badStartErr *field.BadStartError
	var finalErr error
	if errors.As(err, &badStartErr) {
		finalErr = badStartErr
	} else if err != nil {
		return nil, err
	}

	fields := make([]*field.Field, len(lines))
	for i, line := range lines {
		fields[i] = field.Parse(line, lb.Bytes())
	}

	h := &Header{
		Base: Base{
			lbr:    lb,
			fields: fields,
		},
	}

	return h, finalErr
}
