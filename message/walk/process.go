package walk

import (
	"errors"

	"github.com/zostay/go-email-premailer/message"
)

// ErrStop may be returned by a Processor to end the walk early. AndProcess
// then returns nil.
var ErrStop = errors.New("stop walking")

// Processor is a callback for AndProcess and friends.
//
// The Processor is given a part and its ancestry, nearest ancestor last. If
// len(parents) is zero, then this is the part the walk started from, which
// might not be the root message. The direct parent of any other part is
// always a *message.Multipart holding it, so parents[len(parents)-1] is where
// a replacement belongs.
type Processor func(part message.Part, parents []message.Part) error

// AndProcess walks the part tree depth first in document order and calls the
// Processor for every part, branches before their children. A Processor error
// stops the walk and is returned, except ErrStop, which stops it quietly.
func AndProcess(
	processor Processor,
	msg message.Part,
) error {
	parents := make([]message.Part, 0, 10)
	err := andProcess(processor, msg, parents)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func andProcess(
	processor Processor,
	part message.Part,
	parents []message.Part,
) error {
	err := processor(part, parents)
	if err != nil {
		return err
	}

	if part.IsMultipart() {
		parents = append(parents, part)
		for _, subPart := range part.GetParts() {
			err := andProcess(processor, subPart, parents)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// AndProcessOpaque works like AndProcess, but only calls the Processor for
// leaf parts.
func AndProcessOpaque(
	processor Processor,
	msg message.Part,
) error {
	return AndProcess(
		func(part message.Part, parents []message.Part) error {
			if part.IsMultipart() {
				return nil
			}
			return processor(part, parents)
		}, msg)
}

// AndProcessMultipart works like AndProcess, but only calls the Processor for
// branch parts.
func AndProcessMultipart(
	processor Processor,
	msg message.Part,
) error {
	return AndProcess(
		func(part message.Part, parents []message.Part) error {
			if !part.IsMultipart() {
				return nil
			}
			return processor(part, parents)
		}, msg)
}
