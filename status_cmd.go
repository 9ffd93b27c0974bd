package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/dgnsrekt/bible-speak/speak"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	statusCopy bool

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the saved reading position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close() //nolint:errcheck

			out := cmd.OutOrStdout()
			if !s.nav.RestoreState() {
				fmt.Fprintln(out, faint("Nothing read yet."))
				return nil
			}

			status := s.nav.StatusText(speak.StatusShowPercent | speak.StatusShowDocument)
			fmt.Fprintln(out, rangeStyle.Render(status))

			doc := s.nav.Document()
			pos := s.nav.VerseRange().Start
			remaining := doc.Last().Ordinal - pos.Ordinal
			fmt.Fprintf(out, "%s, %s verses to the end of %s\n",
				doc.BookName(pos), humanize.Comma(int64(remaining)), doc.Name)
			fmt.Fprintln(out, faint("actions: "+s.nav.Actions().String()))

			if statusCopy {
				if err := clipboard.WriteAll(status); err != nil {
					return fmt.Errorf("unable to copy to clipboard: %w", err)
				}
				fmt.Fprintln(out, faint("Copied."))
			}
			return nil
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved reading position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close() //nolint:errcheck

			if err := s.nav.ClearPersistedState(); err != nil {
				return fmt.Errorf("unable to clear position: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reading position cleared.")
			return nil
		},
	}

	booksCmd = &cobra.Command{
		Use:   "books",
		Short: "List the documents and the books they contain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close() //nolint:errcheck

			out := cmd.OutOrStdout()
			for _, id := range s.library.IDs() {
				doc, _ := s.library.Document(id)
				fmt.Fprintf(out, "%s %s (%s, %s verses)\n", keyword(doc.ID), doc.Name, doc.Language,
					humanize.Comma(int64(doc.Versification.Total())))
				for _, b := range doc.Versification.Books() {
					fmt.Fprintf(out, "  %-8s %s\n", b.OSIS, b.Name)
				}
			}
			return nil
		},
	}
)

func init() {
	statusCmd.Flags().BoolVarP(&statusCopy, "copy", "c", false, "copy the status line to the clipboard")
}
