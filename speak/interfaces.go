package speak

import "github.com/dgnsrekt/bible-speak/verse"

// Keys written to the PersistedStore.
const (
	KeyDocument = "SpeakBibleBook"
	KeyVerse    = "SpeakBibleVerse"
)

// ContentSource supplies speakable verse text and structural metadata.
// VerseText returns ErrContentUnavailable (or an empty string) when a verse
// has no text.
type ContentSource interface {
	VerseText(doc verse.Document, pos verse.Position) (string, error)
	Title(doc verse.Document, pos verse.Position) string
	IsFirstVerseOfChapter(doc verse.Document, pos verse.Position) bool
	IsFirstVerseOfBook(doc verse.Document, pos verse.Position) bool
	ChapterNumber(doc verse.Document, pos verse.Position) int
	BookName(doc verse.Document, pos verse.Position) string
}

// Traverser computes neighbouring verse ranges, rolling over chapter and
// book boundaries. ok is false at the document edges.
type Traverser interface {
	Next(doc verse.Document, r verse.Range) (verse.Range, bool)
	Previous(doc verse.Document, r verse.Range) (verse.Range, bool)
}

// PersistedStore is durable string key/value storage.
type PersistedStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// BatchStore is a PersistedStore that can write several keys atomically.
type BatchStore interface {
	PersistedStore
	SetAll(values map[string]string) error
}

// Deleter is a PersistedStore that can remove keys.
type Deleter interface {
	Delete(keys ...string) error
}

// Library resolves documents by their initials and names the start used
// when nothing usable is persisted.
type Library interface {
	Document(id string) (verse.Document, bool)
	Default() (verse.Document, verse.Position)
}
