// Package email is the root of go-email-premailer, a delivery hook that
// prepares HTML email for mail clients that ignore <style> blocks.
//
// The hook itself lives in the premailer package. It works on the message
// model in the message package, which parses a message into a tree of
// message.Opaque leaves and message.Multipart branches and writes it back out
// byte for byte, changing only the parts that were edited. Header fields are
// handled by message/header and its sub-packages, and transfer encodings by
// message/transfer.
//
// The premailer command in cmd/premailer runs the hook on a message file from
// the command line, which is handy for checking how a template will be sent.
package email
