package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-email-premailer/message"
	"github.com/zostay/go-email-premailer/message/walker"
)

var partsCmd = &cobra.Command{
	Use:   "parts [message-file]",
	Short: "Lists the part tree of a message",
	Args:  cobra.MaximumNArgs(1),
	RunE:  RunParts,
}

func init() {
	rootCmd.AddCommand(partsCmd)
}

// RunParts implements the parts command.
func RunParts(cmd *cobra.Command, args []string) error {
	in, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	msg, err := message.Parse(in, message.WithUnlimitedRecursion())
	if err != nil {
		return err
	}

	return printParts(cmd.OutOrStdout(), msg)
}

// printParts writes one line per part, indented by depth, giving the index
// within the parent, the media type, and any disposition and filename.
func printParts(w io.Writer, msg message.Generic) error {
	var pw walker.Parts = func(depth, i int, part message.Part) error {
		h := part.GetHeader()

		mt, err := h.GetMediaType()
		if err != nil {
			mt = "text/plain"
		}

		line := fmt.Sprintf("%s%d %s", strings.Repeat("  ", depth), i, mt)
		if d, err := h.GetPresentation(); err == nil {
			line += " " + d
		}
		if fn, err := h.GetFilename(); err == nil {
			line += fmt.Sprintf(" %q", fn)
		}

		_, err = fmt.Fprintln(w, line)
		return err
	}

	return pw.Walk(msg)
}
