// Package encoding swaps the charset encoder and decoder used by the field
// package for versions backed by golang.org/x/text/encoding/ianaindex. Import
// it for its side effect:
//
//	import _ "github.com/zostay/go-email-premailer/message/header/encoding"
//
// Binaries get larger, but header words and text bodies in nearly any charset
// seen in real mail can then be read.
package encoding

import (
	"fmt"

	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/zostay/go-email-premailer/message/header/field"
)

func init() {
	field.CharsetEncoder = CharsetEncoder
	field.CharsetDecoder = CharsetDecoder
}

// CharsetEncoder encodes s into any charset known to the IANA index.
func CharsetEncoder(charset, s string) ([]byte, error) {
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return nil, err
	}

	if e == nil {
		return nil, fmt.Errorf("no encoding found for charset %q", charset)
	}

	es, err := e.NewEncoder().String(s)
	if err != nil {
		return nil, err
	}

	return []byte(es), nil
}

// CharsetDecoder decodes b from any charset known to the IANA index. Charsets
// the index does not know fall back to field.DefaultCharsetDecoder.
func CharsetDecoder(charset string, b []byte) (string, error) {
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		if s, derr := field.DefaultCharsetDecoder(charset, b); derr == nil {
			return s, nil
		}
		return "", err
	}

	if e == nil {
		return "", fmt.Errorf("no encoding found for charset %q", charset)
	}

	eb, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(eb), nil
}
