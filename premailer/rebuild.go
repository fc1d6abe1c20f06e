package premailer

import (
	"strings"

	"github.com/zostay/go-email-premailer/message"
	"github.com/zostay/go-email-premailer/message/header"
	"github.com/zostay/go-email-premailer/message/header/field"
	"github.com/zostay/go-email-premailer/message/transfer"
)

// rewrite holds the new bodies, already using the line break of the HTML
// part. A nil text means no text part is added.
type rewrite struct {
	html []byte
	text []byte
}

// decodeBody returns the body of part as UTF-8 text.
func decodeBody(part *message.Opaque) (string, error) {
	b, err := part.DecodedContent()
	if err != nil {
		return "", err
	}

	cs, err := part.GetCharset()
	if err != nil || isUTF8(cs) {
		return string(b), nil
	}

	return field.CharsetDecoder(cs, b)
}

func isUTF8(cs string) bool {
	switch strings.ToLower(cs) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return true
	default:
		return false
	}
}

// withBreak converts every line ending in s to lb.
func withBreak(s string, lb header.Break) []byte {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if lb != header.LF {
		s = strings.ReplaceAll(s, "\n", string(lb))
	}
	return []byte(s)
}

// rebuild applies rw to msg and returns the message to deliver. Nothing is
// changed if an error is returned.
func rebuild(msg message.Generic, html *message.Opaque, rw *rewrite) (message.Generic, error) {
	if rw.text == nil {
		setBody(html, rw.html)
		return msg, nil
	}

	text := newTextPart(rw.text, html.Break())

	if msg == message.Generic(html) {
		root := promote(html, text)
		setBody(html, rw.html)
		return root, nil
	}

	parent := parentOf(msg, html)
	if parent == nil {
		return msg, ErrPartVanished
	}

	if isAlternative(parent) {
		if !parent.InsertPart(parent.IndexOf(html), text) {
			return msg, ErrPartVanished
		}
	} else {
		alt := message.MultipartAlternative(text, html)
		if !parent.ReplacePart(html, alt) {
			return msg, ErrPartVanished
		}
	}

	setBody(html, rw.html)
	return msg, nil
}

// isAlternative reports whether the text part can join the HTML part's own
// parent rather than a new multipart/alternative.
func isAlternative(mm *message.Multipart) bool {
	return mediaType(mm) == "multipart/alternative"
}

// setBody replaces the body of part with UTF-8 content. A base64 or
// quoted-printable transfer encoding is kept. Otherwise quoted-printable is
// chosen only when the content needs it.
func setBody(part *message.Opaque, body []byte) {
	if cs, _ := part.GetCharset(); !strings.EqualFold(cs, "utf-8") {
		_ = part.SetCharset("utf-8")
	}
	setTransferEncoding(&part.Header, body)
	part.SetContent(body)
}

func setTransferEncoding(h *header.Header, body []byte) {
	cte, _ := h.GetTransferEncoding()
	switch transfer.Normalize(cte) {
	case transfer.Base64, transfer.QuotedPrintable:
		return
	}

	if transfer.NeedsEncoding(body) {
		h.SetTransferEncoding(transfer.QuotedPrintable)
	}
}

func newTextPart(body []byte, lb header.Break) *message.Opaque {
	b := &message.Buffer{}
	b.SetBreak(lb)
	b.SetMediaType("text/plain")
	_ = b.SetCharset("utf-8")
	setTransferEncoding(&b.Header, body)
	_, _ = b.Write(body)
	return b.Opaque()
}

// promote turns a single HTML leaf message into a multipart/alternative. The
// new root takes every header field except the Content-* fields, which stay
// with the HTML part.
func promote(html *message.Opaque, text *message.Opaque) *message.Multipart {
	b := &message.Buffer{}
	b.SetBreak(html.Break())
	b.SetFoldEncoding(html.FoldEncoding())

	moved := map[string]struct{}{}
	for _, f := range html.ListFields() {
		if isContentField(f.Name()) {
			continue
		}
		b.AppendField(f.Clone())
		moved[strings.ToLower(f.Name())] = struct{}{}
	}

	for name := range moved {
		_ = html.Delete(name)
	}

	b.SetMediaType("multipart/alternative")
	_ = b.SetBoundary(message.GenerateBoundary())
	b.Add(text, html)

	mm, _ := b.Multipart()
	return mm
}

func isContentField(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "content-")
}
