// Package transfer applies and removes Content-transfer-encoding. Only
// quoted-printable and base64 change any bytes. 7bit, 8bit, binary, and a
// missing header all leave bytes as they are.
//
// In this package "decoded" means the bytes as they are in their charset and
// "encoded" means the bytes as they appear in the message after the transfer
// encoding is applied.
package transfer
