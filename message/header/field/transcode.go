package field

import (
	"mime"
	"strings"
	"unicode"
)

// Encode prepares a field body for output. Bodies that are pure printable
// ASCII are returned as is. Anything else is MIME word encoded with b-type
// (Base-64) encoding and the utf-8 charset.
func Encode(body string) string {
	if isPlainASCII(body) {
		return body
	}
	return mime.BEncoding.Encode("utf-8", body)
}

func isPlainASCII(s string) bool {
	for _, c := range s {
		if c > unicode.MaxASCII || (c < ' ' && c != '\t') {
			return false
		}
	}
	return true
}

// Decode looks for MIME encoded words in a field body and turns them into
// unicode using CharsetDecoder.
func Decode(body string) (string, error) {
	if !strings.Contains(body, "=?") {
		return body, nil
	}

	dec := &mime.WordDecoder{
		CharsetReader: CharsetDecoderToCharsetReader(CharsetDecoder),
	}
	return dec.DecodeHeader(body)
}
