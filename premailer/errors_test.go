package premailer_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-email-premailer/premailer"
)

func TestError(t *testing.T) {
	t.Parallel()

	err := error(&premailer.Error{Kind: premailer.ErrInlining, Cause: io.ErrUnexpectedEOF})

	assert.EqualError(t, err, "unable to inline CSS: unexpected EOF")
	assert.ErrorIs(t, err, premailer.ErrInlining)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.NotErrorIs(t, err, premailer.ErrTextGeneration)

	var perr *premailer.Error
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, premailer.ErrInlining, perr.Kind)
}
