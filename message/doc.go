// Package message parses, edits, and writes email messages.
//
// Parse reads a message into a tree of parts. A leaf is an *Opaque holding a
// header and a body. A branch is a *Multipart holding a header and its
// sub-parts. Parsing keeps the preamble, epilogue, line breaks, and raw header
// text, so a message that is parsed and written back out without changes is
// identical to the input:
//
//	msg, err := message.Parse(r)
//	if err != nil {
//	  return err
//	}
//
//	_, err = msg.WriteTo(w)
//
// Leaf bodies are kept transfer encoded after parsing. Use
// Opaque.DecodedContent to read them decoded and Opaque.SetContent to replace
// them. Replaced content is encoded again on output according to the
// Content-transfer-encoding of the part.
//
// New messages and parts are built with a Buffer. Write to it for a leaf or
// Add parts to it for a branch, then call Opaque or Multipart.
package message
