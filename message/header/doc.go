// Package header reads and changes email message headers. Low-level access
// works on field.Field objects through Base. Header adds typed getters and
// setters for the fields a mail hook cares about, such as Content-type,
// Content-disposition, Content-transfer-encoding, the address fields, and
// Date.
//
// Parse keeps each field's original bytes so that an unchanged header is
// written back byte for byte.
package header
