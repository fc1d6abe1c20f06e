package field_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-email-premailer/message/header/field"
)

func TestNewFoldEncoding(t *testing.T) {
	t.Parallel()

	_, err := field.NewFoldEncoding("x", 80, 100)
	assert.ErrorIs(t, err, field.ErrFoldIndentSpace)

	_, err = field.NewFoldEncoding("", 80, 100)
	assert.ErrorIs(t, err, field.ErrFoldIndentTooShort)

	_, err = field.NewFoldEncoding(" ", field.DoNotFold, 100)
	assert.ErrorIs(t, err, field.ErrDoNotFold)

	_, err = field.NewFoldEncoding("    ", 4, 100)
	assert.ErrorIs(t, err, field.ErrFoldIndentTooLong)

	_, err = field.NewFoldEncoding(" ", 100, 80)
	assert.ErrorIs(t, err, field.ErrFoldLengthTooLong)

	_, err = field.NewFoldEncoding(" ", 2, 80)
	assert.ErrorIs(t, err, field.ErrFoldLengthTooShort)

	vf, err := field.NewFoldEncoding("\t", field.DoNotFold, field.DoNotFold)
	assert.NoError(t, err)
	assert.NotNil(t, vf)
}

func TestFoldEncoding_Fold(t *testing.T) {
	t.Parallel()

	vf, err := field.NewFoldEncoding(" ", 20, 40)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := vf.Fold(&buf, []byte("Subject: short"), field.Break("\n"))
	assert.NoError(t, err)
	assert.Equal(t, int64(15), n)
	assert.Equal(t, "Subject: short\n", buf.String())

	buf.Reset()
	_, err = vf.Fold(&buf, []byte("Subject: one two three four five six"), field.Break("\r\n"))
	assert.NoError(t, err)
	assert.Equal(t, "Subject: one two\r\n three four five six\r\n", buf.String())

	buf.Reset()
	long := "X-Token: " + strings.Repeat("a", 50)
	_, err = vf.Fold(&buf, []byte(long), field.Break("\n"))
	assert.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 40)
	}
	assert.Equal(t, long, strings.ReplaceAll(strings.ReplaceAll(buf.String(), "\n ", ""), "\n", ""))
}

func TestFoldEncoding_Unfold(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]byte("Received: by example.com;        Fri, 30 Jan 2015"),
		field.DefaultFoldEncoding.Unfold([]byte("Received: by example.com;\r\n        Fri, 30 Jan 2015")),
	)
}

func TestDoNotFoldEncoding(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	long := "X-Long: " + strings.Repeat("word ", 100)
	_, err := field.DoNotFoldEncoding.Fold(&buf, []byte(long), field.Break("\n"))
	assert.NoError(t, err)
	assert.Equal(t, long+"\n", buf.String())
}
