package premailer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// TextSource selects which HTML a generated text part is derived from.
type TextSource string

const (
	// TextSourceOriginal generates text from the HTML as it was before CSS
	// inlining.
	TextSourceOriginal TextSource = "original"

	// TextSourceInlined generates text from the HTML after CSS inlining.
	TextSourceInlined TextSource = "inlined"

	// TextSourceHTML is accepted as another name for TextSourceOriginal.
	TextSourceHTML TextSource = "html"

	// TextSourceText is accepted as another name for TextSourceInlined.
	TextSourceText TextSource = "text"
)

// CSSOptions are handed to the CSSInliner unchanged.
type CSSOptions struct {
	RemoveClasses     bool `yaml:"remove_classes"`
	CSSToAttributes   bool `yaml:"css_to_attributes"`
	KeepBangImportant bool `yaml:"keep_bang_important"`
}

// TextOptions are handed to the TextConverter unchanged.
type TextOptions struct {
	PrettyTables bool `yaml:"pretty_tables"`
	OmitLinks    bool `yaml:"omit_links"`
}

// Config controls a Hook.
type Config struct {
	// GenerateTextPart enables generating a text/plain alternative when the
	// message has none.
	GenerateTextPart bool `yaml:"generate_text_part"`

	// TextPartSource picks the HTML the text is generated from.
	TextPartSource TextSource `yaml:"text_part_source"`

	// TolerateTextFailure makes a failing text engine log a warning and
	// continue with the HTML rewrite only.
	TolerateTextFailure bool `yaml:"tolerate_text_failure"`

	CSS  CSSOptions  `yaml:"css"`
	Text TextOptions `yaml:"text"`
}

// Overrides are per-message configuration changes keyed like the YAML
// configuration, such as {"generate_text_part": false} or
// {"css": {"remove_classes": true}}. Nested mappings are merged.
type Overrides map[string]any

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		GenerateTextPart: true,
		TextPartSource:   TextSourceOriginal,
		CSS: CSSOptions{
			CSSToAttributes: true,
		},
	}
}

// canonical maps the alias names onto original or inlined.
func (s TextSource) canonical() TextSource {
	switch TextSource(strings.ToLower(string(s))) {
	case TextSourceOriginal, TextSourceHTML:
		return TextSourceOriginal
	case TextSourceInlined, TextSourceText:
		return TextSourceInlined
	default:
		return s
	}
}

// Validate checks the values that YAML decoding cannot.
func (c Config) Validate() error {
	switch c.TextPartSource.canonical() {
	case TextSourceOriginal, TextSourceInlined:
		return nil
	default:
		return &Error{
			Kind:  ErrConfig,
			Cause: fmt.Errorf("text_part_source must be %q or %q, not %q", TextSourceOriginal, TextSourceInlined, c.TextPartSource),
		}
	}
}

// ParseConfig decodes YAML from r over DefaultConfig. Unknown keys are an
// error. Empty input yields DefaultConfig.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, &Error{Kind: ErrConfig, Cause: err}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads the YAML configuration file at path.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, &Error{Kind: ErrConfig, Cause: err}
	}
	defer f.Close()

	return ParseConfig(f)
}

// Merge returns a copy of c with o deep merged over it. The receiver is not
// changed.
func (c Config) Merge(o Overrides) (Config, error) {
	if len(o) == 0 {
		return c, nil
	}

	dst, err := c.toMap()
	if err != nil {
		return Config{}, &Error{Kind: ErrConfig, Cause: err}
	}

	if err := mergo.Merge(&dst, map[string]any(o), mergo.WithOverride); err != nil {
		return Config{}, &Error{Kind: ErrConfig, Cause: err}
	}

	merged, err := yaml.Marshal(dst)
	if err != nil {
		return Config{}, &Error{Kind: ErrConfig, Cause: err}
	}

	return ParseConfig(bytes.NewReader(merged))
}

func (c Config) toMap() (map[string]any, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, err
	}

	m := map[string]any{}
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, err
	}

	return m, nil
}
