package field

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Encoder turns a unicode string into bytes in the named charset. Characters
// that do not fit the target charset should be substituted, not rejected. An
// unsupported charset returns an error.
type Encoder func(charset, s string) ([]byte, error)

// Decoder turns bytes in the named charset into a unicode string. Invalid input
// bytes become unicode.ReplacementChar. An unsupported charset returns an
// error.
type Decoder func(charset string, b []byte) (string, error)

var (
	// CharsetEncoder is used when writing strings out in a declared charset.
	// Importing the encoding package replaces it with one that knows every
	// IANA charset:
	//  import _ "github.com/zostay/go-email-premailer/message/header/encoding"
	CharsetEncoder Encoder = DefaultCharsetEncoder

	// CharsetDecoder is used when reading header words and text bodies into
	// unicode. The encoding package replaces it the same way CharsetEncoder
	// is replaced.
	CharsetDecoder Decoder = DefaultCharsetDecoder
)

// DefaultCharsetEncoder handles us-ascii, iso-8859-1, and utf-8. Anything else
// is an error. When writing us-ascii, characters outside of ASCII become the
// ASCII SUB character, "\x1a".
func DefaultCharsetEncoder(charset, s string) ([]byte, error) {
	switch strings.ToLower(charset) {
	case "us-ascii", "":
		var buf bytes.Buffer
		for _, c := range s {
			if c > unicode.MaxASCII {
				buf.WriteByte('\x1a')
			} else {
				buf.WriteRune(c)
			}
		}
		return buf.Bytes(), nil
	case "iso-8859-1", "latin1":
		var buf bytes.Buffer
		for _, c := range s {
			if c > unicode.MaxLatin1 {
				buf.WriteByte('\x1a')
			} else {
				buf.WriteByte(byte(c))
			}
		}
		return buf.Bytes(), nil
	case "utf-8", "utf8":
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("unsupported byte encoding %q", charset)
	}
}

// DefaultCharsetDecoder handles us-ascii, iso-8859-1, and utf-8. Anything else
// is an error.
//
// For us-ascii, every byte above 0x7f becomes unicode.ReplacementChar. For
// utf-8, invalid sequences become unicode.ReplacementChar.
func DefaultCharsetDecoder(charset string, b []byte) (string, error) {
	var s strings.Builder
	switch strings.ToLower(charset) {
	case "us-ascii", "":
		for _, c := range b {
			if c > unicode.MaxASCII {
				s.WriteRune(unicode.ReplacementChar)
			} else {
				s.WriteByte(c)
			}
		}
	case "iso-8859-1", "latin1":
		for _, c := range b {
			s.WriteRune(rune(c))
		}
	case "utf-8", "utf8":
		for len(b) > 0 {
			r, size := utf8.DecodeRune(b)
			s.WriteRune(r)
			b = b[size:]
		}
	default:
		return "", fmt.Errorf("unsupported byte encoding %q", charset)
	}
	return s.String(), nil
}

// CharsetDecoderToCharsetReader adapts a Decoder to the CharsetReader
// signature used by mime.WordDecoder.
func CharsetDecoderToCharsetReader(decode Decoder) func(string, io.Reader) (io.Reader, error) {
	return func(charset string, r io.Reader) (io.Reader, error) {
		bs, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		s, err := decode(charset, bs)
		if err != nil {
			return nil, err
		}

		return strings.NewReader(s), nil
	}
}
