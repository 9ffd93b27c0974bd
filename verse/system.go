package verse

import (
	"fmt"
	"sort"
	"strings"
)

// Book describes a single book within a versification.
type Book struct {
	OSIS   string // OSIS book id, e.g. "Ps" or "1John"
	Name   string // English display name
	Verses []int  // verse count per chapter
}

// Chapters returns the number of chapters in the book.
func (b Book) Chapters() int {
	return len(b.Verses)
}

// System is a verse numbering scheme. It maps (book, chapter, verse)
// coordinates onto 1-based ordinals and back.
type System struct {
	name   string
	books  []Book
	index  map[string]int
	starts [][]int // starts[b][c] is the ordinal of verse 1 of chapter c+1
	total  int
}

// NewSystem builds a versification from the given books in canonical order.
func NewSystem(name string, books []Book) *System {
	s := &System{
		name:   name,
		books:  books,
		index:  make(map[string]int, len(books)*2),
		starts: make([][]int, len(books)),
	}

	ordinal := 1
	for i, b := range books {
		s.index[strings.ToLower(b.OSIS)] = i
		s.index[normalizeName(b.Name)] = i
		s.starts[i] = make([]int, len(b.Verses))
		for c, n := range b.Verses {
			s.starts[i][c] = ordinal
			ordinal += n
		}
	}
	s.total = ordinal - 1

	return s
}

// Name returns the versification name, e.g. "KJV".
func (s *System) Name() string {
	return s.name
}

// Books returns the books in canonical order.
func (s *System) Books() []Book {
	return s.books
}

// Total returns the number of verses in the versification.
func (s *System) Total() int {
	return s.total
}

// BookIndex returns the canonical index of a book, or -1. Lookup accepts the
// OSIS id or the display name, case-insensitively.
func (s *System) BookIndex(book string) int {
	if i, ok := s.index[strings.ToLower(book)]; ok {
		return i
	}
	if i, ok := s.index[normalizeName(book)]; ok {
		return i
	}
	return -1
}

// Book returns the book with the given OSIS id or name.
func (s *System) Book(book string) (Book, bool) {
	i := s.BookIndex(book)
	if i < 0 {
		return Book{}, false
	}
	return s.books[i], true
}

// ChapterCount returns the number of chapters in a book, or 0 if unknown.
func (s *System) ChapterCount(book string) int {
	b, ok := s.Book(book)
	if !ok {
		return 0
	}
	return b.Chapters()
}

// VerseCount returns the number of verses in a chapter, or 0 if unknown.
func (s *System) VerseCount(book string, chapter int) int {
	b, ok := s.Book(book)
	if !ok || chapter < 1 || chapter > b.Chapters() {
		return 0
	}
	return b.Verses[chapter-1]
}

// Ordinal returns the 1-based ordinal of a verse.
func (s *System) Ordinal(book string, chapter, verse int) (int, error) {
	i := s.BookIndex(book)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q in %s", ErrUnknownBook, book, s.name)
	}
	b := s.books[i]
	if chapter < 1 || chapter > b.Chapters() {
		return 0, fmt.Errorf("%w: %s %d has %d chapters in %s", ErrChapterOutOfRange, b.OSIS, chapter, b.Chapters(), s.name)
	}
	if verse < 1 || verse > b.Verses[chapter-1] {
		return 0, fmt.Errorf("%w: %s.%d.%d in %s", ErrVerseOutOfRange, b.OSIS, chapter, verse, s.name)
	}
	return s.starts[i][chapter-1] + verse - 1, nil
}

// Locate maps an ordinal back to its book index, chapter and verse.
func (s *System) Locate(ordinal int) (book, chapter, verse int, ok bool) {
	if ordinal < 1 || ordinal > s.total {
		return 0, 0, 0, false
	}

	// last book whose first verse is <= ordinal
	book = sort.Search(len(s.books), func(i int) bool {
		return s.starts[i][0] > ordinal
	}) - 1

	starts := s.starts[book]
	c := sort.Search(len(starts), func(i int) bool {
		return starts[i] > ordinal
	}) - 1

	return book, c + 1, ordinal - starts[c] + 1, true
}

// Restrict returns a new System holding only the named books, in canonical
// order. Unknown names are ignored.
func (s *System) Restrict(books ...string) *System {
	keep := make(map[int]bool, len(books))
	for _, b := range books {
		if i := s.BookIndex(b); i >= 0 {
			keep[i] = true
		}
	}

	var out []Book
	for i, b := range s.books {
		if keep[i] {
			out = append(out, b)
		}
	}
	return NewSystem(s.name, out)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}
