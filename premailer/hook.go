package premailer

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zostay/go-email-premailer/message"
	"github.com/zostay/go-email-premailer/message/header"
	_ "github.com/zostay/go-email-premailer/message/header/encoding"
)

// SkipHeader names the header field that turns the Hook off for one message.
const SkipHeader = "Skip-Premailer"

// Hook inlines CSS and generates text parts for outgoing messages. It is not
// changed after New, so one Hook may serve many goroutines, each working on
// its own message.
type Hook struct {
	config    Config
	inliner   CSSInliner
	converter TextConverter
	logger    zerolog.Logger
}

// Option configures a Hook in New.
type Option func(h *Hook)

// WithConfig sets the configuration. The default is DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(h *Hook) { h.config = cfg }
}

// WithCSSInliner replaces the Premailer engine.
func WithCSSInliner(i CSSInliner) Option {
	return func(h *Hook) { h.inliner = i }
}

// WithTextConverter replaces the HTML2Text engine.
func WithTextConverter(c TextConverter) Option {
	return func(h *Hook) { h.converter = c }
}

// WithLogger sets the logger. Nothing is logged by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Hook) { h.logger = logger }
}

// New returns a Hook.
func New(opts ...Option) *Hook {
	h := &Hook{
		config:    DefaultConfig(),
		inliner:   Premailer{},
		converter: HTML2Text{},
		logger:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Config returns a copy of the configuration.
func (h *Hook) Config() Config {
	return h.config
}

// WithOverrides returns a new Hook whose configuration has o merged over this
// one's. The receiver is not changed.
func (h *Hook) WithOverrides(o Overrides) (*Hook, error) {
	cfg, err := h.config.Merge(o)
	if err != nil {
		return nil, err
	}

	scoped := *h
	scoped.config = cfg
	return &scoped, nil
}

// ShouldSkip returns true when msg has a true Skip-Premailer header or has no
// HTML body.
func (h *Hook) ShouldSkip(msg message.Generic) bool {
	if v, present := skipMarker(msg.GetHeader()); present && isTruthy(v) {
		return true
	}

	html, err := FindHTMLPart(msg)
	return err == nil && html == nil
}

// DeliveringMessage transforms msg and returns the message to deliver.
//
// On error the message is returned unchanged: every body is read and both
// engines have run before anything is modified.
func (h *Hook) DeliveringMessage(msg message.Generic) (message.Generic, error) {
	return h.deliver(msg, h.config)
}

// DeliveringMessageWith works like DeliveringMessage with o merged over the
// configuration for this one call.
func (h *Hook) DeliveringMessageWith(msg message.Generic, o Overrides) (message.Generic, error) {
	cfg, err := h.config.Merge(o)
	if err != nil {
		return msg, err
	}

	return h.deliver(msg, cfg)
}

func (h *Hook) deliver(msg message.Generic, cfg Config) (message.Generic, error) {
	logger := h.logger.With().Str("message_id", messageID(msg)).Logger()

	v, hasMarker := skipMarker(msg.GetHeader())
	if hasMarker && isTruthy(v) {
		_ = msg.GetHeader().Delete(SkipHeader)
		logger.Debug().Str("reason", "skip header").Msg("message not transformed")
		return msg, nil
	}

	html, err := FindHTMLPart(msg)
	if err != nil {
		return msg, err
	}

	if html == nil {
		logger.Debug().Str("reason", "no html part").Msg("message not transformed")
		return msg, nil
	}

	text, err := FindTextPart(msg)
	if err != nil {
		return msg, err
	}

	rw, err := h.prepare(logger, cfg, html, text == nil)
	if err != nil {
		return msg, err
	}

	out, err := rebuild(msg, html, rw)
	if err != nil {
		return msg, err
	}

	if hasMarker {
		_ = out.GetHeader().Delete(SkipHeader)
	}

	logger.Debug().
		Bool("text_generated", rw.text != nil).
		Bool("root_replaced", out != msg).
		Msg("message transformed")

	return out, nil
}

// prepare does all the reading and converting, leaving msg untouched.
func (h *Hook) prepare(
	logger zerolog.Logger,
	cfg Config,
	html *message.Opaque,
	wantText bool,
) (*rewrite, error) {
	original, err := decodeBody(html)
	if err != nil {
		return nil, &Error{Kind: ErrInlining, Cause: err}
	}

	inlined, err := h.inliner.InlineString(original, cfg.CSS)
	if err != nil {
		return nil, &Error{Kind: ErrInlining, Cause: err}
	}

	lb := html.Break()
	rw := &rewrite{html: withBreak(inlined, lb)}
	if !wantText || !cfg.GenerateTextPart {
		return rw, nil
	}

	src := original
	if cfg.TextPartSource.canonical() == TextSourceInlined {
		src = inlined
	}

	text, err := h.converter.Convert(src, cfg.Text)
	if err != nil {
		if cfg.TolerateTextFailure {
			logger.Warn().Err(err).Msg("text part generation failed, sending html only")
			return rw, nil
		}
		return nil, &Error{Kind: ErrTextGeneration, Cause: err}
	}

	if strings.TrimSpace(text) == "" {
		logger.Debug().Msg("generated text part is empty, sending html only")
		return rw, nil
	}

	rw.text = withBreak(text, lb)
	return rw, nil
}

func skipMarker(h *header.Header) (string, bool) {
	v, err := h.Get(SkipHeader)
	if errors.Is(err, header.ErrNoSuchField) {
		return "", false
	}
	return v, true
}

// isTruthy treats every value as true except the empty string, "false", "0",
// "no", and "off".
func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "false", "0", "no", "off":
		return false
	default:
		return true
	}
}

func messageID(msg message.Generic) string {
	id, _ := msg.GetHeader().GetMessageID()
	return id
}
