package message_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-email-premailer/message"
	"github.com/zostay/go-email-premailer/message/header"
)

const mixedMsg = "From: sterling@example.com\r\n" +
	"To: steve@example.com\r\n" +
	"Subject: Newsletter\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/mixed; boundary=\"outer\"\r\n" +
	"\r\n" +
	"This is a multi-part message in MIME format.\r\n" +
	"--outer\r\n" +
	"Content-Type: multipart/alternative; boundary=inner\r\n" +
	"\r\n" +
	"--inner\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Hello.\r\n" +
	"--inner\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"Content-Transfer-Encoding: quoted-printable\r\n" +
	"\r\n" +
	"<p>Hello=2E</p>\r\n" +
	"--inner--\r\n" +
	"--outer\r\n" +
	"Content-Type: application/pdf\r\n" +
	"Content-Disposition: attachment; filename=\"report.pdf\"\r\n" +
	"Content-Transfer-Encoding: base64\r\n" +
	"\r\n" +
	"JVBERi0xLjQK\r\n" +
	"--outer--\r\n" +
	"epilogue\r\n"

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	m, err := message.Parse(strings.NewReader(mixedMsg))
	require.NoError(t, err)

	mm, isMultipart := m.(*message.Multipart)
	require.True(t, isMultipart)
	assert.Equal(t, header.CRLF, mm.Break())
	require.Len(t, mm.GetParts(), 2)

	alt, isMultipart := mm.GetParts()[0].(*message.Multipart)
	require.True(t, isMultipart)
	require.Len(t, alt.GetParts(), 2)

	html, isOpaque := alt.GetParts()[1].(*message.Opaque)
	require.True(t, isOpaque)
	assert.True(t, html.IsEncoded())

	content, err := html.Content()
	assert.NoError(t, err)
	assert.Equal(t, "<p>Hello=2E</p>", string(content))

	decoded, err := html.DecodedContent()
	assert.NoError(t, err)
	assert.Equal(t, "<p>Hello.</p>", string(decoded))

	var buf bytes.Buffer
	n, err := m.WriteTo(&buf)
	assert.NoError(t, err)
	assert.Equal(t, int64(len(mixedMsg)), n)
	assert.Equal(t, mixedMsg, buf.String())

	// a second write produces the same bytes
	buf.Reset()
	_, err = m.WriteTo(&buf)
	assert.NoError(t, err)
	assert.Equal(t, mixedMsg, buf.String())
}

func TestParse_Simple(t *testing.T) {
	t.Parallel()

	const simple = "Subject: hi\n\nHello World\n"

	m, err := message.Parse(strings.NewReader(simple))
	require.NoError(t, err)

	op, isOpaque := m.(*message.Opaque)
	require.True(t, isOpaque)
	assert.Equal(t, header.LF, op.Break())

	var buf bytes.Buffer
	_, err = op.WriteTo(&buf)
	assert.NoError(t, err)
	assert.Equal(t, simple, buf.String())
}

func TestParse_NoFinalBoundary(t *testing.T) {
	t.Parallel()

	const msg = "Content-Type: multipart/mixed; boundary=b\n" +
		"\n" +
		"--b\n" +
		"Content-Type: text/plain\n" +
		"\n" +
		"one\n" +
		"--b\n" +
		"\n" +
		"two, with an empty header\n"

	m, err := message.Parse(strings.NewReader(msg))
	require.NoError(t, err)
	require.Len(t, m.GetParts(), 2)
	assert.Equal(t, 0, m.GetParts()[1].GetHeader().Len())

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	assert.NoError(t, err)
	assert.Equal(t, msg, buf.String())
}

func TestParse_BoundaryLookalike(t *testing.T) {
	t.Parallel()

	const msg = "Content-Type: multipart/mixed; boundary=b\n" +
		"\n" +
		"--b\n" +
		"\n" +
		"one\n" +
		"--bogus line inside the part\n" +
		"--b--"

	m, err := message.Parse(strings.NewReader(msg))
	require.NoError(t, err)
	require.Len(t, m.GetParts(), 1)

	op := m.GetParts()[0].(*message.Opaque)
	content, err := op.Content()
	assert.NoError(t, err)
	assert.Equal(t, "one\n--bogus line inside the part", string(content))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	assert.NoError(t, err)
	assert.Equal(t, msg, buf.String())
}

func TestParse_NoBoundary(t *testing.T) {
	t.Parallel()

	m, err := message.Parse(strings.NewReader("Content-Type: multipart/mixed\n\nbody\n"))
	assert.ErrorIs(t, err, message.ErrNoBoundary)
	_, isOpaque := m.(*message.Opaque)
	assert.True(t, isOpaque)
}

func TestParse_Options(t *testing.T) {
	t.Parallel()

	m, err := message.Parse(strings.NewReader(mixedMsg), message.WithoutMultipart())
	require.NoError(t, err)
	assert.False(t, m.IsMultipart())

	m, err = message.Parse(strings.NewReader(mixedMsg), message.WithoutRecursion())
	require.NoError(t, err)
	require.True(t, m.IsMultipart())
	assert.False(t, m.GetParts()[0].IsMultipart())

	m, err = message.Parse(strings.NewReader(mixedMsg), message.WithMaxDepth(1))
	require.NoError(t, err)
	require.True(t, m.IsMultipart())
	assert.False(t, m.GetParts()[0].IsMultipart())

	m, err = message.Parse(strings.NewReader(mixedMsg), message.WithMaxDepth(2))
	require.NoError(t, err)
	require.True(t, m.GetParts()[0].IsMultipart())
	assert.Len(t, m.GetParts()[0].GetParts(), 2)

	m, err = message.Parse(strings.NewReader(mixedMsg), message.DecodeTransferEncoding())
	require.NoError(t, err)
	html := m.GetParts()[0].GetParts()[1].(*message.Opaque)
	assert.False(t, html.IsEncoded())
	content, err := html.Content()
	assert.NoError(t, err)
	assert.Equal(t, "<p>Hello.</p>", string(content))

	_, err = message.Parse(strings.NewReader(mixedMsg), message.WithMaxHeaderLength(20))
	assert.ErrorIs(t, err, message.ErrLargeHeader)
}
