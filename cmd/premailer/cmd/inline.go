package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-email-premailer/message"
	"github.com/zostay/go-email-premailer/premailer"
)

type inlineOptions struct {
	output     string
	configPath string
	textSource string
	diff       bool
	noText     bool
}

var (
	inlineOpts inlineOptions

	inlineCmd = &cobra.Command{
		Use:   "inline [message-file]",
		Short: "Runs the premailer hook on a message",
		Long: `Reads a message from the named file or stdin, inlines the CSS of its HTML
body, adds a text alternative when it has none, and writes the result.`,
		Args: cobra.MaximumNArgs(1),
		RunE: RunInline,
	}
)

func init() {
	flags := inlineCmd.Flags()
	flags.StringVarP(&inlineOpts.output, "output", "o", "", "write the message to this file instead of stdout")
	flags.StringVarP(&inlineOpts.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVar(&inlineOpts.textSource, "text-source", "", `generate text from the "original" or "inlined" HTML`)
	flags.BoolVar(&inlineOpts.diff, "diff", false, "print a line diff of the input and output")
	flags.BoolVar(&inlineOpts.noText, "no-text", false, "never generate a text part")

	rootCmd.AddCommand(inlineCmd)
}

// RunInline implements the inline command.
func RunInline(cmd *cobra.Command, args []string) error {
	in, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	log := newLogger(cmd)
	hook, err := inlineOpts.hook(log)
	if err != nil {
		return err
	}

	var out, diff io.Writer = cmd.OutOrStdout(), nil
	if inlineOpts.diff {
		out, diff = io.Discard, cmd.OutOrStdout()
	}

	if inlineOpts.output != "" {
		f, err := os.Create(inlineOpts.output)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	return inline(data, hook, log, out, diff)
}

func (o inlineOptions) overrides() premailer.Overrides {
	ov := premailer.Overrides{}
	if o.noText {
		ov["generate_text_part"] = false
	}
	if o.textSource != "" {
		ov["text_part_source"] = o.textSource
	}
	return ov
}

func (o inlineOptions) hook(log zerolog.Logger) (*premailer.Hook, error) {
	cfg := premailer.DefaultConfig()
	if o.configPath != "" {
		var err error
		cfg, err = premailer.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
	}

	h := premailer.New(premailer.WithConfig(cfg), premailer.WithLogger(log))
	return h.WithOverrides(o.overrides())
}

// inline transforms the message in data and writes it to out. When diff is
// not nil, a line diff of data and the result is written there too.
func inline(
	data []byte,
	hook *premailer.Hook,
	log zerolog.Logger,
	out, diff io.Writer,
) error {
	msg, err := message.Parse(bytes.NewReader(data), message.WithUnlimitedRecursion())
	if err != nil {
		return err
	}

	logSummary(log, msg)

	msg, err = hook.DeliveringMessage(msg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return err
	}

	if _, err := out.Write(buf.Bytes()); err != nil {
		return err
	}

	if diff != nil {
		return writeDiff(diff, string(data), buf.String())
	}

	return nil
}

func logSummary(log zerolog.Logger, msg message.Generic) {
	h := msg.GetHeader()
	ev := log.Info()

	if subject, err := h.GetSubject(); err == nil {
		ev = ev.Str("subject", subject)
	}

	if from, err := h.GetFrom(); err == nil {
		ev = ev.Str("from", from.String())
	}

	var rcpts []string
	if to, err := h.GetTo(); err == nil {
		rcpts = append(rcpts, to.String())
	}
	if cc, err := h.GetCc(); err == nil {
		rcpts = append(rcpts, cc.String())
	}
	if len(rcpts) > 0 {
		ev = ev.Strs("recipients", rcpts)
	}

	if date, err := h.GetDate(); err == nil {
		ev = ev.Time("date", date)
	}

	ev.Msg("processing message")
}

// writeDiff writes before and after as a line diff, prefixing each line with
// " ", "-", or "+".
func writeDiff(w io.Writer, before, after string) error {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if _, err := fmt.Fprintln(w, prefix+strings.TrimRight(line, "\r\n")); err != nil {
				return err
			}
		}
	}

	return nil
}
