package osis

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/bible-speak/speak"
	"github.com/dgnsrekt/bible-speak/verse"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/language"
)

// ErrNoDocuments is returned when a library directory holds no OSIS files.
var ErrNoDocuments = errors.New("no OSIS documents found")

// Library holds the loaded documents. It implements speak.Library and
// speak.ContentSource.
type Library struct {
	mu     sync.RWMutex
	texts  map[string]*Text
	docs   map[string]verse.Document
	order  []string
	def    string
	logger *log.Logger
}

// NewLibrary creates an empty library.
func NewLibrary(logger *log.Logger) *Library {
	if logger == nil {
		logger = log.Default()
	}
	return &Library{
		texts:  make(map[string]*Text),
		docs:   make(map[string]verse.Document),
		logger: logger,
	}
}

// Add registers a parsed text. The first text added is the default.
func (l *Library) Add(t *Text) (verse.Document, error) {
	v11n := verse.KJV().Restrict(t.Books...)
	if v11n.Total() == 0 {
		return verse.Document{}, fmt.Errorf("%s: no books of the KJV versification", t.ID)
	}

	tag := language.English
	if t.Language != "" {
		parsed, err := language.Parse(t.Language)
		if err != nil {
			l.logger.Warn("Unknown document language", "document", t.ID, "lang", t.Language)
		} else {
			tag = parsed
		}
	}

	doc := verse.Document{ID: t.ID, Name: t.Name, Language: tag, Versification: v11n}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, dup := l.texts[t.ID]; !dup {
		l.order = append(l.order, t.ID)
	}
	l.texts[t.ID] = t
	l.docs[t.ID] = doc
	if l.def == "" {
		l.def = t.ID
	}
	return doc, nil
}

// SetDefault selects the document used when nothing is persisted.
func (l *Library) SetDefault(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.docs[id]; !ok {
		return fmt.Errorf("%w: %s", speak.ErrDocumentUnavailable, id)
	}
	l.def = id
	return nil
}

// Load parses one OSIS file. Files ending in .zst are zstd-compressed.
func (l *Library) Load(path string) (verse.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return verse.Document{}, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return verse.Document{}, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	t, err := Parse(r)
	if err != nil {
		return verse.Document{}, fmt.Errorf("%s: %w", path, err)
	}

	doc, err := l.Add(t)
	if err != nil {
		return verse.Document{}, err
	}
	l.logger.Debug("Loaded document", "id", doc.ID, "books", len(t.Books), "path", path)
	return doc, nil
}

// LoadDir loads every .xml and .xml.zst file in dir, in name order.
// Files that fail to parse are logged and skipped.
func (l *Library) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if n := e.Name(); strings.HasSuffix(n, ".xml") || strings.HasSuffix(n, ".xml.zst") {
			names = append(names, n)
		}
	}
	sort.Strings(names)

	loaded := 0
	for _, n := range names {
		if _, err := l.Load(filepath.Join(dir, n)); err != nil {
			l.logger.Warn("Skipping document", "file", n, "err", err)
			continue
		}
		loaded++
	}
	if loaded == 0 {
		return fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}
	return nil
}

// IDs returns the document IDs in load order.
func (l *Library) IDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.order...)
}

// Document returns the document with the given ID.
func (l *Library) Document(id string) (verse.Document, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	d, ok := l.docs[id]
	return d, ok
}

// Default returns the default document and its first verse.
func (l *Library) Default() (verse.Document, verse.Position) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	d := l.docs[l.def]
	if d.Versification == nil {
		return d, verse.Position{}
	}
	return d, d.First()
}

func (l *Library) text(doc verse.Document) *Text {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.texts[doc.ID]
}

// VerseText returns the verse's text or speak.ErrContentUnavailable.
func (l *Library) VerseText(doc verse.Document, pos verse.Position) (string, error) {
	t := l.text(doc)
	if t == nil {
		return "", fmt.Errorf("%w: %s", speak.ErrDocumentUnavailable, doc.ID)
	}
	s := t.Verse(pos.OSISRef())
	if s == "" {
		return "", fmt.Errorf("%w: %s", speak.ErrContentUnavailable, pos)
	}
	return s, nil
}

func (l *Library) Title(doc verse.Document, pos verse.Position) string {
	if t := l.text(doc); t != nil {
		return t.Title(pos.OSISRef())
	}
	return ""
}

func (l *Library) IsFirstVerseOfChapter(_ verse.Document, pos verse.Position) bool {
	return pos.Verse == 1
}

func (l *Library) IsFirstVerseOfBook(_ verse.Document, pos verse.Position) bool {
	return pos.Chapter == 1 && pos.Verse == 1
}

func (l *Library) ChapterNumber(_ verse.Document, pos verse.Position) int {
	return pos.Chapter
}

// BookName prefers the title the text gives the book over the English name.
func (l *Library) BookName(doc verse.Document, pos verse.Position) string {
	if t := l.text(doc); t != nil {
		if n := t.BookName[pos.Book]; n != "" {
			return n
		}
	}
	return doc.BookName(pos)
}
