package field

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

const (
	DefaultFoldIndent          = " " // indent placed before folded lines
	DefaultPreferredFoldLength = 80  // preferred maximum header line length
	DefaultForcedFoldLength    = 998 // lines are broken by force past this point

	DoNotFold = -1 // used for both lengths to disable folding
)

var (
	// DefaultFoldEncoding folds at 80 bytes when possible and always before
	// 998 bytes.
	DefaultFoldEncoding = &FoldEncoding{
		DefaultFoldIndent,
		DefaultPreferredFoldLength,
		DefaultForcedFoldLength,
	}

	// DoNotFoldEncoding never folds.
	DoNotFoldEncoding = &FoldEncoding{
		DefaultFoldIndent,
		DoNotFold,
		DoNotFold,
	}
)

var (
	// ErrFoldIndentSpace is returned by NewFoldEncoding when the indent
	// contains something other than spaces and tabs.
	ErrFoldIndentSpace = errors.New("fold indent may only contains spaces and tabs")

	// ErrFoldIndentTooShort is returned by NewFoldEncoding when the indent is
	// empty.
	ErrFoldIndentTooShort = errors.New("fold indent must contain at least one space or tab")

	// ErrFoldIndentTooLong is returned by NewFoldEncoding when the indent is
	// not shorter than the preferred fold length.
	ErrFoldIndentTooLong = errors.New("fold indent must be shorter than the preferred fold length")

	// ErrFoldLengthTooLong is returned by NewFoldEncoding when the preferred
	// length exceeds the forced length.
	ErrFoldLengthTooLong = errors.New("preferred fold length must be no longer than the forced fold length")

	// ErrFoldLengthTooShort is returned by NewFoldEncoding when either length
	// is under 3 bytes.
	ErrFoldLengthTooShort = errors.New("preferred fold length and forced fold length cannot be too short")

	// ErrDoNotFold is returned by NewFoldEncoding when only one of the two
	// lengths is DoNotFold.
	ErrDoNotFold = errors.New("preferred fold length and forced fold length must both be -1 if either are -1")
)

// Break is the line break used when writing a folded field.
type Break []byte

// FoldEncoding describes how header fields are folded on output.
type FoldEncoding struct {
	foldIndent          string
	preferredFoldLength int
	forcedFoldLength    int
}

// NewFoldEncoding checks the settings and returns a FoldEncoding. The indent
// must be one or more spaces or tabs and shorter than the preferred length.
// The preferred length must not exceed the forced length. Pass DoNotFold for
// both lengths to disable folding.
func NewFoldEncoding(
	foldIndent string,
	preferredFoldLength,
	forcedFoldLength int,
) (*FoldEncoding, error) {
	if strings.IndexFunc(foldIndent, func(c rune) bool { return !isSpace(c) }) >= 0 {
		return nil, ErrFoldIndentSpace
	}

	if len(foldIndent) < 1 {
		return nil, ErrFoldIndentTooShort
	}

	if (preferredFoldLength == DoNotFold) != (forcedFoldLength == DoNotFold) {
		return nil, ErrDoNotFold
	}

	if preferredFoldLength != DoNotFold {
		if preferredFoldLength < 3 || forcedFoldLength < 3 {
			return nil, ErrFoldLengthTooShort
		}

		if len(foldIndent) >= preferredFoldLength {
			return nil, ErrFoldIndentTooLong
		}

		if preferredFoldLength > forcedFoldLength {
			return nil, ErrFoldLengthTooLong
		}
	}

	return &FoldEncoding{foldIndent, preferredFoldLength, forcedFoldLength}, nil
}

func isCRLF(c rune) bool  { return c == '\r' || c == '\n' }
func isSpace(c rune) bool { return c == ' ' || c == '\t' }

// Unfold removes the line breaks from a folded field, leaving the indent of
// continuation lines in place.
func (vf *FoldEncoding) Unfold(f []byte) []byte {
	uf := make([]byte, 0, len(f))
	for _, b := range f {
		if !isCRLF(rune(b)) {
			uf = append(uf, b)
		}
	}
	return uf
}

// Fold writes a complete field line to out, breaking it into continuation
// lines where it runs past the preferred length. Breaks are placed before
// whitespace whenever possible. A run of text with no whitespace is broken by
// force only once it passes the forced length. Every written line, including
// the last, ends with lb.
func (vf *FoldEncoding) Fold(out io.Writer, f []byte, lb Break) (int64, error) {
	var buf bytes.Buffer
	if vf.preferredFoldLength == DoNotFold || len(f) <= vf.preferredFoldLength {
		buf.Write(f)
		buf.Write(lb)
		return buf.WriteTo(out)
	}

	// Never fold before the first word of the body.
	start := bytes.IndexByte(f, ':') + 1
	for start < len(f) && isSpace(rune(f[start])) {
		start++
	}

	line := f
	first := true
	for len(line) > 0 {
		width := vf.preferredFoldLength
		if !first {
			width -= len(vf.foldIndent)
		}

		if len(line) <= width {
			vf.writeLine(&buf, line, first, lb)
			break
		}

		cut := -1
		minCut := 1
		if first {
			minCut = start + 1
		}

		// last whitespace inside the preferred width
		if minCut < width {
			if ix := bytes.LastIndexFunc(line[minCut:width], isSpace); ix >= 0 {
				cut = ix + minCut
			}
		}

		// failing that, the first whitespace after it, if not too far out
		if cut < 0 && minCut < len(line) {
			if ix := bytes.IndexFunc(line[minCut:], isSpace); ix >= 0 && ix+minCut < vf.forcedFoldLength {
				cut = ix + minCut
			}
		}

		// failing that, a hard break
		if cut < 0 {
			if len(line) <= vf.forcedFoldLength {
				vf.writeLine(&buf, line, first, lb)
				break
			}
			cut = vf.forcedFoldLength - len(vf.foldIndent)
		}

		vf.writeLine(&buf, line[:cut], first, lb)
		line = bytes.TrimLeft(line[cut:], " \t")
		first = false
	}

	return buf.WriteTo(out)
}

func (vf *FoldEncoding) writeLine(buf *bytes.Buffer, line []byte, first bool, lb Break) {
	if !first {
		buf.WriteString(vf.foldIndent)
	}
	buf.Write(line)
	buf.Write(lb)
}
