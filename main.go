// Package main provides the entry point for the bible-speak CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/bible-speak/internal/store"
	"github.com/dgnsrekt/bible-speak/speak"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile   string
	libraryDir   string
	dataDir      string
	storeBackend store.Backend
	documentID   string
	width        uint
	cacheSize    int

	rootCmd = &cobra.Command{
		Use:   "bible-speak",
		Short: "Prepare the Bible for reading aloud, a sentence at a time",
		Long: paragraph(
			fmt.Sprintf("\nPrepare the Bible for %s, one sentence at a time, and remember where you stopped.", keyword("reading aloud")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: runRead,
	}
)

func validateOptions(cmd *cobra.Command) error {
	var err error

	if cmd.Flags().Changed("config") {
		viper.SetConfigFile(expandPath(configFile))
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read config file: %w", err)
		}
	}

	dataDir = expandPath(viper.GetString("data"))
	if dataDir == "" {
		dirs, err := gap.NewScope(gap.User, "bible-speak").DataDirs()
		if err != nil || len(dirs) == 0 {
			return errors.New("could not find a data directory, use --data")
		}
		dataDir = dirs[0]
	}

	libraryDir = expandPath(viper.GetString("library"))
	if libraryDir == "" {
		libraryDir = filepath.Join(dataDir, "modules")
	}

	storeBackend, err = store.ParseBackend(viper.GetString("store"))
	if err != nil {
		return err
	}

	documentID = viper.GetString("document")
	cacheSize = viper.GetInt("cache_size")

	// Detect terminal width
	detected := 0
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			detected = w
		}
	}
	width = wrapWidth(viper.GetUint("width"), detected)
	return nil
}

// wrapWidth picks the configured width, else the terminal's capped at 120,
// else 80 columns.
func wrapWidth(configured uint, detected int) uint {
	switch {
	case configured > 0:
		return configured
	case detected > 120:
		return 120
	case detected > 0:
		return uint(detected) //nolint:gosec
	default:
		return 80
	}
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	pf.String("library", "", "directory of OSIS modules")
	pf.String("data", "", "directory for the reading position")
	pf.String("store", string(store.BackendFile), "position store: file, badger, sqlite or memory")
	pf.StringP("document", "d", "", "document to read, by its initials")
	pf.UintVarP(&width, "width", "w", 0, "word-wrap at width (0 detects the terminal)")

	addReadFlags(rootCmd)

	_ = viper.BindPFlag("library", pf.Lookup("library"))
	_ = viper.BindPFlag("data", pf.Lookup("data"))
	_ = viper.BindPFlag("store", pf.Lookup("store"))
	_ = viper.BindPFlag("document", pf.Lookup("document"))
	_ = viper.BindPFlag("width", pf.Lookup("width"))

	viper.SetDefault("store", string(store.BackendFile))
	viper.SetDefault("width", 0)
	viper.SetDefault("cache_size", 100)
	speak.SetDefaults()

	rootCmd.AddCommand(readCmd, statusCmd, resetCmd, booksCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "bible-speak")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "bible-speak")}, dirs...)
	}

	if c := os.Getenv("BIBLESPEAK_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("bible-speak")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("biblespeak")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "bible-speak.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
