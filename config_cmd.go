package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# directory holding OSIS modules (*.xml, *.xml.zst)
# library: "~/.local/share/bible-speak/modules"
# document read when nothing has been read yet
# document: "KJV"
# where the reading position is kept: file, badger, sqlite or memory
store: "file"
# word-wrap at width (0 detects the terminal width)
width: 0
# number of verses kept in the text cache
cache_size: 100

speak:
  # keep adding verses until a sentence ends
  continue_sentences: true
  # announce "Chapter N." when entering a chapter
  speak_chapter_changes: true
  # announce "Book of X." when entering a book
  speak_book_changes: true
  # read section headings as their own chunk
  speak_titles: false
  # how far rewind and forward move: none, one_verse, ten_verses, full_chapter
  rewind_amount: "one_verse"
  # how a pause inside a chunk picks its verse: chars, words or duration
  pause_weighting: "chars"
  # upper bound on verses merged into one chunk (0 for no limit)
  max_chunk_verses: 25
  # characters that end a sentence; empty uses the built-in set
  # terminal_marks: ".?!"
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the bible-speak config file",
	Long:    paragraph(fmt.Sprintf("\n%s the bible-speak config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("bible-speak config\nbible-speak config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("bible-speak", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
