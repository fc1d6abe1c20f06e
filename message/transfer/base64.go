package transfer

import (
	"encoding/base64"
	"io"
)

const defaultBase64LineLength = 76

var defaultBase64LineBreak = []byte{'\n'}

// newlineWriter inserts lbr after every `every` bytes written through it.
type newlineWriter struct {
	every int
	acc   int
	lbr   []byte
	w     io.Writer
}

func (nw *newlineWriter) Write(b []byte) (int, error) {
	n := 0
	for len(b) > 0 {
		// the break is held back until more data arrives so that the
		// output never ends with one
		if nw.acc == nw.every {
			if _, err := nw.w.Write(nw.lbr); err != nil {
				return n, err
			}
			nw.acc = 0
		}

		room := nw.every - nw.acc
		if room > len(b) {
			room = len(b)
		}

		wn, err := nw.w.Write(b[:room])
		n += wn
		if err != nil {
			return n, err
		}

		b = b[room:]
		nw.acc += room
	}

	return n, nil
}

// NewBase64Encoder base64 encodes everything written to the returned
// io.WriteCloser onto w, in lines of 76 characters separated by LF. There is
// no break after the last line. Close must be called to flush the final
// block.
func NewBase64Encoder(w io.Writer) io.WriteCloser {
	return NewBase64EncoderWithBreak(w, defaultBase64LineBreak)
}

// NewBase64EncoderWithBreak works like NewBase64Encoder with the given line
// break.
func NewBase64EncoderWithBreak(w io.Writer, lbr []byte) io.WriteCloser {
	enc := base64.NewEncoder(base64.StdEncoding, &newlineWriter{
		every: defaultBase64LineLength,
		lbr:   lbr,
		w:     w,
	})
	return &writer{enc, enc}
}

// NewBase64Decoder decodes base64 read from r. Line breaks are ignored.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}
