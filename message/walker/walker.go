package walker

import (
	"github.com/zostay/go-email-premailer/message"
)

// Parts is a function called for each part of a message. The depth is 0 for
// the message itself and i is the index of the part within its parent.
type Parts func(depth, i int, part message.Part) error

// Walk performs a depth first search for all the parts of a message starting
// with the message itself. It calls the Parts function for each part of the
// message. If it returns an error, processing stops immediately and the error
// is returned.
func (w Parts) Walk(msg message.Generic) error {
	type part struct {
		depth int
		i     int
		part  message.Part
	}

	openStack := make([]part, 0, 10)

	pushStack := func(depth int, msg message.Part) {
		parts := msg.GetParts()
		for i := len(parts) - 1; i >= 0; i-- {
			openStack = append(openStack, part{depth, i, parts[i]})
		}
	}

	popStack := func() part {
		end := len(openStack) - 1
		p := openStack[end]
		openStack = openStack[:end]
		return p
	}

	openStack = append(openStack, part{0, 0, msg})
	for len(openStack) > 0 {
		p := popStack()
		if err := w(p.depth, p.i, p.part); err != nil {
			return err
		}
		pushStack(p.depth+1, p.part)
	}

	return nil
}

// WalkOpaque works like Walk, but only calls w for leaf parts.
func (w Parts) WalkOpaque(msg message.Generic) error {
	var opw Parts = func(depth, i int, part message.Part) error {
		if !part.IsMultipart() {
			return w(depth, i, part)
		}
		return nil
	}
	return opw.Walk(msg)
}

// WalkMultipart works like Walk, but only calls w for branch parts.
func (w Parts) WalkMultipart(msg message.Generic) error {
	var mlw Parts = func(depth, i int, part message.Part) error {
		if part.IsMultipart() {
			return w(depth, i, part)
		}
		return nil
	}
	return mlw.Walk(msg)
}
