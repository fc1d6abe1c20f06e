package message

import (
	"bytes"
	"errors"
	"io"

	"github.com/zostay/go-email-premailer/message/header"
)

const (
	// DefaultMaxMultipartDepth is how deep Parse descends into nested
	// multiparts by default.
	DefaultMaxMultipartDepth = 10

	// DefaultMaxHeaderLength is the largest header, in bytes, that Parse
	// accepts by default.
	DefaultMaxHeaderLength = 64 * 1024
)

var (
	// ErrNoBoundary is returned by Parse when a multipart Content-type has no
	// boundary parameter.
	ErrNoBoundary = errors.New("the boundary parameter is missing from Content-type")

	// ErrLargeHeader is returned by Parse when a header is longer than the
	// WithMaxHeaderLength setting.
	ErrLargeHeader = errors.New("the header exceeds the maximum parse length")
)

// splits are the header/body separators, in order of preference.
var splits = [][]byte{
	[]byte("\x0d\x0a\x0d\x0a"), // \r\n\r\n
	[]byte("\x0a\x0d\x0a\x0d"), // \n\r\n\r, extremely unlikely, possibly never
	[]byte("\x0a\x0a"),         // \n\n
	[]byte("\x0d\x0d"),         // \r\r
}

type parser struct {
	maxHeaderLen int
	maxDepth     int
	decode       bool
}

func (pr *parser) clone() *parser {
	p := *pr
	return &p
}

var defaultParser = &parser{
	maxHeaderLen: DefaultMaxHeaderLength,
	maxDepth:     DefaultMaxMultipartDepth,
}

// ParseOption changes how Parse works.
type ParseOption func(pr *parser)

// WithMaxHeaderLength sets the largest header Parse accepts before failing
// with ErrLargeHeader. A value of 0 or less removes the limit.
func WithMaxHeaderLength(n int) ParseOption {
	return func(pr *parser) { pr.maxHeaderLen = n }
}

// DecodeTransferEncoding makes Parse decode the Content-transfer-encoding of
// every leaf. By default leaves are kept encoded so that the message writes
// back out byte for byte.
func DecodeTransferEncoding() ParseOption {
	return func(pr *parser) { pr.decode = true }
}

// WithMaxDepth sets how many levels of nested multiparts Parse splits.
func WithMaxDepth(maxDepth int) ParseOption {
	return func(pr *parser) { pr.maxDepth = maxDepth }
}

// WithoutMultipart makes Parse always return an *Opaque.
func WithoutMultipart() ParseOption {
	return func(pr *parser) { pr.maxDepth = 0 }
}

// WithoutRecursion splits only the top level multipart.
func WithoutRecursion() ParseOption {
	return func(pr *parser) { pr.maxDepth = 1 }
}

// WithUnlimitedRecursion splits nested multiparts at any depth.
func WithUnlimitedRecursion() ParseOption {
	return func(pr *parser) { pr.maxDepth = -1 }
}

// searchForSplit finds the end of the header. It returns the offset of the
// first body byte and the line break in use, or -1 when there is no blank
// line. A sub-part may begin with a line break, which means its header is
// empty.
func searchForSplit(buf []byte, subpart bool) (pos int, crlf []byte) {
	if subpart {
		for _, s := range splits {
			half := s[:len(s)/2]
			if bytes.HasPrefix(buf, half) {
				return len(half), half
			}
		}
	}

	pos = -1
	for _, s := range splits {
		if ix := bytes.Index(buf, s); ix > -1 && (pos < 0 || ix+len(s) < pos) {
			pos = ix + len(s)
			crlf = s[:len(s)/2]
		}
	}
	if pos >= 0 {
		return pos, crlf
	}

	// no body at all, so guess the break from whatever line ends we see
	for _, s := range splits {
		half := s[:len(s)/2]
		if bytes.Contains(buf, half) {
			return -1, half
		}
	}
	return -1, header.LF.Bytes()
}

// parseToOpaque splits data into header and body.
func (pr *parser) parseToOpaque(data []byte, subpart bool) (*Opaque, error) {
	pos, crlf := searchForSplit(data, subpart)

	var hdr, body []byte
	if pos < 0 {
		hdr = data
	} else {
		hdr, body = data[:pos-len(crlf)], data[pos:]
	}

	if pr.maxHeaderLen > 0 && len(hdr) > pr.maxHeaderLen {
		return nil, ErrLargeHeader
	}

	head, err := header.Parse(hdr, header.Break(crlf))
	if err != nil {
		return nil, err
	}

	msg := &Opaque{Header: *head, encoded: true}
	if body != nil {
		msg.Reader = bytes.NewReader(body)
	}

	if pr.decode {
		decoded, err := msg.DecodedContent()
		if err != nil {
			return nil, err
		}
		msg.SetContent(decoded)
	}

	return msg, nil
}

// Parse reads the whole message from r and returns it as a Generic.
//
// The header ends at the first blank line. The line break found there is used
// for the header fields and for any multipart boundaries. When the
// Content-type is multipart/* the body is split on the boundary and each part
// is parsed the same way, down to the WithMaxDepth setting. Preamble and
// epilogue bytes are kept, so writing the result reproduces the input.
//
// Leaves keep their Content-transfer-encoding unless DecodeTransferEncoding is
// given.
//
// When a part cannot be parsed, the enclosing message is returned as an
// *Opaque along with the error.
func Parse(r io.Reader, opts ...ParseOption) (Generic, error) {
	pr := defaultParser.clone()
	for _, opt := range opts {
		opt(pr)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	msg, err := pr.parseToOpaque(data, false)
	if err != nil {
		return nil, err
	}

	return pr.parse(msg, 0)
}

// parse turns msg into a *Multipart when it has a multipart Content-type and
// the depth allows it.
func (pr *parser) parse(msg *Opaque, depth int) (Generic, error) {
	if pr.maxDepth >= 0 && depth >= pr.maxDepth {
		return msg, nil
	}

	pv, err := msg.GetContentType()
	if err != nil || pv.Type() != "multipart" {
		return msg, nil
	}

	boundary := pv.Boundary()
	if boundary == "" {
		return msg, ErrNoBoundary
	}

	body, err := msg.Content()
	if err != nil {
		return msg, err
	}

	prefix, chunks, suffix := splitParts(body, []byte(boundary), msg.Break().Bytes())

	parts := make([]Part, 0, len(chunks))
	for _, chunk := range chunks {
		opMsg, err := pr.parseToOpaque(chunk, true)
		if err != nil {
			return msg, err
		}

		part, err := pr.parse(opMsg, depth+1)
		if err != nil {
			return msg, err
		}

		parts = append(parts, part)
	}

	return &Multipart{
		Header: msg.Header,
		prefix: prefix,
		suffix: suffix,
		parts:  parts,
	}, nil
}

// splitParts breaks a multipart body into preamble, parts, and epilogue.
//
// The break before each boundary delimiter belongs to the delimiter, not the
// part before it. The break after the opening boundary of the preamble case
// stays with the preamble. A nil prefix means no opening delimiter was found.
// A nil suffix means no closing delimiter was found.
func splitParts(body, boundary, br []byte) (prefix []byte, parts [][]byte, suffix []byte) {
	dash := append([]byte("--"), boundary...)
	delim := append(append([]byte{}, br...), dash...)

	rest := body
	switch {
	case bytes.HasPrefix(body, append(append([]byte{}, dash...), br...)):
		prefix = []byte{}
		rest = body[len(dash)+len(br):]
	default:
		if ix := indexDelimiter(body, delim, br, false); ix >= 0 {
			prefix = body[:ix+len(br)]
			rest = body[ix+len(delim)+len(br):]
		}
	}

	for {
		ix := indexDelimiter(rest, delim, br, true)
		if ix < 0 {
			return prefix, append(parts, rest), nil
		}

		parts = append(parts, rest[:ix])
		after := rest[ix+len(delim):]
		if bytes.HasPrefix(after, []byte("--")) {
			return prefix, parts, append([]byte{}, after[2:]...)
		}
		rest = after[len(br):]
	}
}

// indexDelimiter finds the next delimiter line. An opening or middle delimiter
// is followed by a break. When final is true a closing delimiter, followed by
// "--", also matches. Text that merely begins with the delimiter does not.
func indexDelimiter(data, delim, br []byte, final bool) int {
	off := 0
	for {
		ix := bytes.Index(data[off:], delim)
		if ix < 0 {
			return -1
		}
		ix += off

		after := data[ix+len(delim):]
		if bytes.HasPrefix(after, br) || (final && bytes.HasPrefix(after, []byte("--"))) {
			return ix
		}
		off = ix + 1
	}
}
