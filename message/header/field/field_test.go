package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-email-premailer/message/header/field"
)

func TestNew(t *testing.T) {
	t.Parallel()

	f := field.New("Subject", "testing")

	assert.Equal(t, "Subject: testing", f.String())
	assert.Equal(t, []byte("Subject: testing"), f.Bytes())
	assert.Equal(t, "Subject", f.Name())
	assert.Equal(t, "testing", f.Body())
	assert.False(t, f.IsRaw())

	f.SetName("X-Subject")
	assert.Equal(t, "X-Subject: testing", f.String())

	f.SetBody("foo bar baz")
	assert.Equal(t, "X-Subject: foo bar baz", f.String())
	assert.Equal(t, "foo bar baz", f.Body())

	f.SetRaw([]byte("sUBJECT: TESTING"))
	assert.True(t, f.IsRaw())
	assert.Equal(t, "sUBJECT: TESTING", f.String())
	assert.Equal(t, "X-Subject", f.Name())
	assert.Equal(t, "foo bar baz", f.Body())

	f.SetName("Subject")
	assert.False(t, f.IsRaw())
	assert.Equal(t, "Subject: foo bar baz", f.String())
}

func TestField_Clone(t *testing.T) {
	t.Parallel()

	f := field.Parse(field.Line("Subject: hello\r\n"), []byte("\r\n"))
	c := f.Clone()
	assert.Equal(t, f.String(), c.String())

	c.SetBody("goodbye")
	assert.Equal(t, "Subject: hello", f.String())
	assert.Equal(t, "Subject: goodbye", c.String())
}

func TestParse(t *testing.T) {
	t.Parallel()

	f := field.Parse(field.Line("Subject: =?utf-8?Q?caf=C3=A9?=\n  au lait\n"), []byte("\n"))
	assert.Equal(t, "Subject", f.Name())
	assert.Equal(t, "café  au lait", f.Body())
	assert.Equal(t, "Subject: =?utf-8?Q?caf=C3=A9?=\n  au lait", f.String())

	f = field.Parse(field.Line("nonsense"), []byte("\n"))
	assert.Equal(t, "nonsense", f.Name())
	assert.Equal(t, "", f.Body())
}

func TestParseLines(t *testing.T) {
	t.Parallel()

	lines, err := field.ParseLines([]byte(" junk\nA: 1\nB: 2\n  more\nno colon here\nC: 3\n"), []byte("\n"))
	var bse *field.BadStartError
	assert.ErrorAs(t, err, &bse)
	assert.Equal(t, []byte(" junk\n"), bse.BadStart)
	assert.Equal(t, field.Lines{
		field.Line("A: 1\n"),
		field.Line("B: 2\n  more\nno colon here\n"),
		field.Line("C: 3\n"),
	}, lines)

	lines, err = field.ParseLines([]byte("A: 1\r\nB: 2\r\n"), []byte("\r\n"))
	assert.NoError(t, err)
	assert.Len(t, lines, 2)
}
