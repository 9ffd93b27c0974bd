package speak

import (
	"github.com/spf13/viper"
)

// LoadConfigFromViper loads navigator configuration from the "speak" section
// of the config file, falling back to defaults for unset keys.
func LoadConfigFromViper() Config {
	return LoadConfig(viper.GetViper())
}

// LoadConfig reads the "speak" section from v.
func LoadConfig(v *viper.Viper) Config {
	cfg := DefaultConfig()

	if v.IsSet("speak.continue_sentences") {
		cfg.ContinueSentences = v.GetBool("speak.continue_sentences")
	}
	if v.IsSet("speak.speak_chapter_changes") {
		cfg.SpeakChapterChanges = v.GetBool("speak.speak_chapter_changes")
	}
	if v.IsSet("speak.speak_book_changes") {
		cfg.SpeakBookChanges = v.GetBool("speak.speak_book_changes")
	}
	if v.IsSet("speak.speak_titles") {
		cfg.SpeakTitles = v.GetBool("speak.speak_titles")
	}
	if v.IsSet("speak.rewind_amount") {
		cfg.RewindAmount = v.GetString("speak.rewind_amount")
	}
	if v.IsSet("speak.pause_weighting") {
		cfg.PauseWeighting = v.GetString("speak.pause_weighting")
	}
	if v.IsSet("speak.max_chunk_verses") {
		cfg.MaxChunkVerses = v.GetInt("speak.max_chunk_verses")
	}
	if v.IsSet("speak.terminal_marks") {
		cfg.TerminalMarks = v.GetString("speak.terminal_marks")
	}

	return cfg
}

// SetDefaults sets default values for the speak section in viper.
func SetDefaults() {
	d := DefaultConfig()
	viper.SetDefault("speak.continue_sentences", d.ContinueSentences)
	viper.SetDefault("speak.speak_chapter_changes", d.SpeakChapterChanges)
	viper.SetDefault("speak.speak_book_changes", d.SpeakBookChanges)
	viper.SetDefault("speak.speak_titles", d.SpeakTitles)
	viper.SetDefault("speak.rewind_amount", d.RewindAmount)
	viper.SetDefault("speak.pause_weighting", d.PauseWeighting)
	viper.SetDefault("speak.max_chunk_verses", d.MaxChunkVerses)
}
