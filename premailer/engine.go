package premailer

import (
	"github.com/jaytaylor/html2text"
	gopremailer "github.com/vanng822/go-premailer/premailer"
)

// CSSInliner rewrites an HTML document so that the rules of its <style>
// blocks are applied through style attributes.
type CSSInliner interface {
	InlineString(html string, opts CSSOptions) (string, error)
}

// TextConverter renders an HTML document as plain text.
type TextConverter interface {
	Convert(html string, opts TextOptions) (string, error)
}

// CSSInlinerFunc adapts a function to CSSInliner.
type CSSInlinerFunc func(html string, opts CSSOptions) (string, error)

// InlineString calls f.
func (f CSSInlinerFunc) InlineString(html string, opts CSSOptions) (string, error) {
	return f(html, opts)
}

// TextConverterFunc adapts a function to TextConverter.
type TextConverterFunc func(html string, opts TextOptions) (string, error)

// Convert calls f.
func (f TextConverterFunc) Convert(html string, opts TextOptions) (string, error) {
	return f(html, opts)
}

// Premailer is the default CSSInliner, backed by go-premailer.
type Premailer struct{}

// InlineString inlines the CSS of html.
func (Premailer) InlineString(html string, opts CSSOptions) (string, error) {
	o := gopremailer.NewOptions()
	o.RemoveClasses = opts.RemoveClasses
	o.CssToAttributes = opts.CSSToAttributes
	o.KeepBangImportant = opts.KeepBangImportant

	p, err := gopremailer.NewPremailerFromString(html, o)
	if err != nil {
		return "", err
	}

	return p.Transform()
}

// HTML2Text is the default TextConverter, backed by html2text.
type HTML2Text struct{}

// Convert renders html as text.
func (HTML2Text) Convert(html string, opts TextOptions) (string, error) {
	return html2text.FromString(html, html2text.Options{
		PrettyTables: opts.PrettyTables,
		OmitLinks:    opts.OmitLinks,
	})
}
