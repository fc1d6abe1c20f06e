// Package premailer rewrites the HTML body of an outgoing message just before
// it is delivered. CSS rules from <style> blocks are inlined into style
// attributes, and a text/plain alternative is generated from the HTML when the
// message does not already carry one.
//
// A Hook is built once, at startup, and shared:
//
//	h := premailer.New(premailer.WithConfig(cfg), premailer.WithLogger(log))
//
//	msg, err := h.DeliveringMessage(msg)
//	if err != nil {
//	  return err
//	}
//
// DeliveringMessage changes the message in place and returns the message to
// deliver. That is the same message in every case except one: when the whole
// message is a single text/html leaf and a text alternative is generated, a
// new multipart/alternative root is returned that carries the original
// top-level header fields.
//
// Attachments and every part other than the HTML and text bodies are left
// exactly as they were. A message carrying a true Skip-Premailer header is
// only changed by removing that header.
package premailer
