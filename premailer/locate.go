package premailer

import (
	"errors"
	"strings"

	"github.com/zostay/go-email-premailer/message"
	"github.com/zostay/go-email-premailer/message/header"
	"github.com/zostay/go-email-premailer/message/walk"
)

// FindHTMLPart returns the text/html body of msg, which may be msg itself. It
// returns nil when there is none and ErrManyParts when there is more than one.
// Attachments are never body parts.
func FindHTMLPart(msg message.Generic) (*message.Opaque, error) {
	return findPart(msg, "text/html")
}

// FindTextPart works like FindHTMLPart for the text/plain body. A leaf
// without a Content-type is text/plain.
func FindTextPart(msg message.Generic) (*message.Opaque, error) {
	return findPart(msg, "text/plain")
}

func findPart(msg message.Generic, mt string) (*message.Opaque, error) {
	var found *message.Opaque
	err := walk.AndProcessOpaque(
		func(part message.Part, _ []message.Part) error {
			op, isOpaque := part.(*message.Opaque)
			if !isOpaque || isAttachment(part) || mediaType(part) != mt {
				return nil
			}

			if found != nil {
				return ErrManyParts
			}

			found = op
			return nil
		}, msg)
	if err != nil {
		return nil, err
	}

	return found, nil
}

func mediaType(part message.Part) string {
	mt, err := part.GetHeader().GetMediaType()
	if errors.Is(err, header.ErrNoSuchField) {
		return "text/plain"
	}
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

func isAttachment(part message.Part) bool {
	d, err := part.GetHeader().GetPresentation()
	return err == nil && strings.EqualFold(d, "attachment")
}

// parentOf returns the multipart directly holding part, or nil.
func parentOf(msg message.Generic, part message.Part) *message.Multipart {
	var parent *message.Multipart
	_ = walk.AndProcess(
		func(p message.Part, parents []message.Part) error {
			if p != part || len(parents) == 0 {
				return nil
			}

			parent, _ = parents[len(parents)-1].(*message.Multipart)
			return walk.ErrStop
		}, msg)
	return parent
}
