package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgnsrekt/bible-speak/speak"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

var (
	readFrom     string
	readCount    int
	readForward  string
	readRewind   string
	readPause    float64
	readNoResume bool

	readCmd = &cobra.Command{
		Use:   "read",
		Short: "Print the next chunks of text to speak",
		Long: paragraph(fmt.Sprintf("\n%s the next chunks of text, continuing from where the last session stopped.", keyword("Print"))),
		Example: paragraph(strings.Join([]string{
			"bible-speak read --from \"Psalms 23\" --count 3",
			"bible-speak read --rewind one_verse",
			"bible-speak read --pause 0.5",
		}, "\n")),
		Args: cobra.NoArgs,
		RunE: runRead,
	}
)

func addReadFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&readFrom, "from", "f", "", "start at a reference, e.g. \"Rom.5.1\" or \"Psalms 23\"")
	f.IntVarP(&readCount, "count", "n", 1, "number of chunks to print")
	f.StringVar(&readForward, "forward", "", "skip ahead before reading: default, one_verse, ten_verses, full_chapter")
	f.StringVar(&readRewind, "rewind", "", "go back before reading: default, one_verse, ten_verses, full_chapter")
	f.Float64Var(&readPause, "pause", 0, "after reading, pause at this fraction (0-1) of the last chunk")
	f.BoolVar(&readNoResume, "no-resume", false, "ignore the saved position and start at the beginning")
}

func init() {
	addReadFlags(readCmd)
}

func runRead(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close() //nolint:errcheck

	if err := position(s); err != nil {
		return err
	}

	if err := move(s.nav, readRewind, s.nav.Rewind); err != nil {
		return err
	}
	if err := move(s.nav, readForward, s.nav.Forward); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i := 0; i < readCount; i++ {
		chunk, ok := s.nav.NextTextToSpeak()
		if !ok {
			fmt.Fprintln(out, faint("End of "+s.nav.Document().Name+"."))
			break
		}
		renderChunk(out, chunk)
	}

	if cmd.Flags().Changed("pause") {
		s.nav.Pause(readPause)
	}

	fmt.Fprintln(out, faint(s.nav.StatusText(speak.StatusShowPercent|speak.StatusShowDocument)))
	return nil
}

// position starts the session at --from, the saved position, or the start
// of the selected document, in that order.
func position(s *session) error {
	doc, err := s.document()
	if err != nil {
		return err
	}

	if readFrom != "" {
		pos, err := resolvePosition(doc, readFrom)
		if err != nil {
			return err
		}
		return s.nav.SetupReading(doc, pos)
	}

	if !readNoResume && s.nav.RestoreState() {
		if documentID == "" || s.nav.Document().ID == documentID {
			return nil
		}
	}
	return s.nav.SetupReading(doc, doc.First())
}

func move(nav *speak.Navigator, amount string, fn func(speak.RewindAmount)) error {
	if amount == "" {
		return nil
	}
	a, err := speak.ParseRewindAmount(amount)
	if err != nil {
		return err
	}
	fn(a)
	return nil
}

func renderChunk(w io.Writer, chunk speak.SpeechChunk) {
	header := chunk.Range.String()
	if chunk.IsTitle() {
		header += " (heading)"
	}
	fmt.Fprintln(w, rangeStyle.Render(runewidth.Truncate(header, int(width), "…"))) //nolint:gosec

	text := chunk.Text
	if len(chunk.Spans) > 0 && chunk.Spans[0].Offset > 0 {
		prefix := chunk.Text[:chunk.Spans[0].Offset]
		text = announceMark(strings.TrimSpace(prefix)) + " " + chunk.Text[chunk.Spans[0].Offset:]
	}
	fmt.Fprintln(w, wordwrap.String(text, int(width))) //nolint:gosec
	fmt.Fprintln(w)
}
