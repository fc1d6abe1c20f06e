package transfer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/zostay/go-email-premailer/message/header"
)

const (
	None            = ""                 // bytes will be left as-is
	Bit7            = "7bit"             // bytes will be left as-is
	Bit8            = "8bit"             // bytes will be left as-is
	Binary          = "binary"           // bytes will be left as-is
	QuotedPrintable = "quoted-printable" // bytes will be transformed between quoted-printable and binary data
	Base64          = "base64"           // bytes will be transformed between base64 and binary data
)

// MaxLineLength is the longest line, without its break, that RFC 5322 permits
// in a body that is not transfer encoded.
const MaxLineLength = 998

// Transcoding is the encoder and decoder for one transfer encoding.
type Transcoding struct {
	// Encoder wraps w so that binary data written to it arrives on w encoded.
	// Close must be called when finished.
	Encoder func(w io.Writer) io.WriteCloser

	// Decoder wraps r so that encoded data read from r is returned decoded.
	Decoder func(r io.Reader) io.Reader
}

// AsIsTranscoder leaves bytes alone in both directions.
var AsIsTranscoder = Transcoding{NewAsIsEncoder, NewAsIsDecoder}

// Transcodings maps each supported Content-transfer-encoding to its
// Transcoding. Keys are lowercase.
var Transcodings = map[string]Transcoding{
	None:            AsIsTranscoder,
	Bit7:            AsIsTranscoder,
	Bit8:            AsIsTranscoder,
	Binary:          AsIsTranscoder,
	QuotedPrintable: {NewQuotedPrintableEncoder, NewQuotedPrintableDecoder},
	Base64:          {NewBase64Encoder, NewBase64Decoder},
}

// Normalize lowercases and trims a Content-transfer-encoding value.
func Normalize(cte string) string {
	return strings.ToLower(strings.TrimSpace(cte))
}

func lookup(h *header.Header) (Transcoding, bool) {
	cte, err := h.GetTransferEncoding()
	if err != nil {
		return AsIsTranscoder, false
	}

	tc, hasCode := Transcodings[Normalize(cte)]
	return tc, hasCode
}

// ApplyTransferEncoding returns an io.WriteCloser that encodes according to the
// Content-transfer-encoding of h. Unknown or missing encodings pass bytes
// through. Close must be called when finished.
func ApplyTransferEncoding(h *header.Header, w io.Writer) io.WriteCloser {
	if tc, hasCode := lookup(h); hasCode {
		return tc.Encoder(w)
	}
	return &writer{w, nil}
}

// ApplyTransferDecoding returns an io.Reader that decodes according to the
// Content-transfer-encoding of h. Multipart content is never decoded. Unknown
// or missing encodings pass bytes through.
func ApplyTransferDecoding(h *header.Header, r io.Reader) io.Reader {
	ct, err := h.GetContentType()
	if err == nil && ct.Type() == "multipart" {
		return r
	}

	if tc, hasCode := lookup(h); hasCode {
		return tc.Decoder(r)
	}

	return r
}

// EncodeBytes encodes b with the named transfer encoding and returns the
// encoded bytes using lb for every line break, including any break the
// encoder inserts. Encodings other than base64 and quoted-printable leave b
// unchanged.
func EncodeBytes(cte string, b []byte, lb header.Break) ([]byte, error) {
	var buf bytes.Buffer

	var wc io.WriteCloser
	switch Normalize(cte) {
	case Base64:
		wc = NewBase64EncoderWithBreak(&buf, lb.Bytes())
	case QuotedPrintable:
		wc = NewQuotedPrintableEncoder(&buf)
	default:
		return b, nil
	}

	if _, err := wc.Write(b); err != nil {
		return nil, fmt.Errorf("unable to apply %s transfer encoding: %w", cte, err)
	}
	if err := wc.Close(); err != nil {
		return nil, fmt.Errorf("unable to apply %s transfer encoding: %w", cte, err)
	}

	out := buf.Bytes()
	if Normalize(cte) == QuotedPrintable && lb != header.CRLF {
		out = bytes.ReplaceAll(out, header.CRLF.Bytes(), lb.Bytes())
	}

	return out, nil
}

// NeedsEncoding reports whether b cannot be sent without a transfer encoding,
// meaning it has bytes outside of 7-bit ASCII, NUL bytes, or a line longer
// than MaxLineLength.
func NeedsEncoding(b []byte) bool {
	lineLen := 0
	for _, c := range b {
		switch {
		case c == '\n':
			lineLen = 0
			continue
		case c == '\r':
			continue
		case c == 0 || c > 0x7f:
			return true
		}

		lineLen++
		if lineLen > MaxLineLength {
			return true
		}
	}
	return false
}
