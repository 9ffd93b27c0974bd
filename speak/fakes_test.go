package speak

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/bible-speak/verse"
	"golang.org/x/text/language"
)

// fakeContent serves "Text of <ref>." for every verse unless overridden.
// An override of "" marks the verse as having no text.
type fakeContent struct {
	texts    map[string]string
	titles   map[string]string
	noPeriod bool
}

func (f *fakeContent) VerseText(_ verse.Document, pos verse.Position) (string, error) {
	if t, ok := f.texts[pos.OSISRef()]; ok {
		if t == "" {
			return "", ErrContentUnavailable
		}
		return t, nil
	}
	if f.noPeriod {
		return "text of " + pos.OSISRef(), nil
	}
	return "Text of " + pos.OSISRef() + ".", nil
}

func (f *fakeContent) Title(_ verse.Document, pos verse.Position) string {
	return f.titles[pos.OSISRef()]
}

func (f *fakeContent) IsFirstVerseOfChapter(_ verse.Document, pos verse.Position) bool {
	return pos.Verse == 1
}

func (f *fakeContent) IsFirstVerseOfBook(_ verse.Document, pos verse.Position) bool {
	return pos.Chapter == 1 && pos.Verse == 1
}

func (f *fakeContent) ChapterNumber(_ verse.Document, pos verse.Position) int {
	return pos.Chapter
}

func (f *fakeContent) BookName(doc verse.Document, pos verse.Position) string {
	return doc.BookName(pos)
}

// memStore records every verse written so tests can check ordering.
type memStore struct {
	values  map[string]string
	history []string
	fail    bool
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (s *memStore) Get(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memStore) Set(key, value string) error {
	if s.fail {
		return errors.New("disk full")
	}
	s.values[key] = value
	if key == KeyVerse {
		s.history = append(s.history, value)
	}
	return nil
}

type fakeLibrary struct {
	docs map[string]verse.Document
	def  verse.Document
}

func (l *fakeLibrary) Document(id string) (verse.Document, bool) {
	d, ok := l.docs[id]
	return d, ok
}

func (l *fakeLibrary) Default() (verse.Document, verse.Position) {
	return l.def, l.def.First()
}

func kjv() verse.Document {
	return verse.Document{ID: "KJV", Name: "King James Version", Language: language.English, Versification: verse.KJV()}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

type fixture struct {
	nav     *Navigator
	content *fakeContent
	store   *memStore
	doc     verse.Document
	events  []Event
}

func newFixture(t *testing.T, settings Settings) *fixture {
	t.Helper()

	f := &fixture{
		content: &fakeContent{texts: map[string]string{}, titles: map[string]string{}},
		store:   newMemStore(),
		doc:     kjv(),
	}
	f.nav = f.navigator(t, settings)
	return f
}

// navigator builds a navigator sharing the fixture's content and store.
func (f *fixture) navigator(t *testing.T, settings Settings) *Navigator {
	t.Helper()

	nav, err := NewNavigator(Dependencies{
		Content:   f.content,
		Traverser: verse.Traverser{},
		Store:     f.store,
		Library:   &fakeLibrary{docs: map[string]verse.Document{f.doc.ID: f.doc}, def: f.doc},
		Logger:    quietLogger(),
	}, settings)
	if err != nil {
		t.Fatalf("NewNavigator() error = %v", err)
	}
	nav.Subscribe(func(e Event) { f.events = append(f.events, e) })
	return nav
}

func (f *fixture) pos(t *testing.T, ref string) verse.Position {
	t.Helper()
	p, err := f.doc.ParsePosition(ref)
	if err != nil {
		t.Fatalf("ParsePosition(%q) error = %v", ref, err)
	}
	return p
}

func (f *fixture) setup(t *testing.T, ref string) {
	t.Helper()
	if err := f.nav.SetupReading(f.doc, f.pos(t, ref)); err != nil {
		t.Fatalf("SetupReading(%s) error = %v", ref, err)
	}
}

func (f *fixture) next(t *testing.T) SpeechChunk {
	t.Helper()
	c, ok := f.nav.NextTextToSpeak()
	if !ok {
		t.Fatal("NextTextToSpeak() returned end of document")
	}
	return c
}

func (f *fixture) eventsOf(typ EventType) []Event {
	var out []Event
	for _, e := range f.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func singleVerseSettings() Settings {
	s := DefaultSettings()
	s.ContinueSentences = false
	return s
}
