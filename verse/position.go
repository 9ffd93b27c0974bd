package verse

import (
	"cmp"
	"errors"
	"fmt"
)

// Common errors for verse coordinates.
var (
	ErrUnknownBook       = errors.New("unknown book")
	ErrChapterOutOfRange = errors.New("chapter out of range")
	ErrVerseOutOfRange   = errors.New("verse out of range")
	ErrInvalidRef        = errors.New("invalid verse reference")
	ErrDocumentMismatch  = errors.New("positions belong to different documents")
)

// Position is a single verse within a document. Ordinal increases
// monotonically through the document's versification and is what all
// comparisons and arithmetic use.
type Position struct {
	DocumentID string `json:"document"`
	Book       string `json:"book"`
	Chapter    int    `json:"chapter"`
	Verse      int    `json:"verse"`
	Ordinal    int    `json:"ordinal"`
}

// IsZero reports whether p is the zero Position.
func (p Position) IsZero() bool {
	return p.Ordinal == 0
}

// OSISRef renders the position as an OSIS reference such as "Ps.14.1".
func (p Position) OSISRef() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s.%d.%d", p.Book, p.Chapter, p.Verse)
}

func (p Position) String() string {
	return p.OSISRef()
}

// Comparable reports whether p and o can be ordered against each other.
func (p Position) Comparable(o Position) bool {
	return p.DocumentID == o.DocumentID
}

// Compare orders two positions of the same document by ordinal. Callers must
// check Comparable first; positions of different documents compare by
// ordinal only, which is meaningless across versifications.
func (p Position) Compare(o Position) int {
	return cmp.Compare(p.Ordinal, o.Ordinal)
}

// Before reports whether p comes strictly before o.
func (p Position) Before(o Position) bool {
	return p.Compare(o) < 0
}

// Range is an inclusive span of verses within one document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Single returns the range covering exactly p.
func Single(p Position) Range {
	return Range{Start: p, End: p}
}

// NewRange validates and builds a range.
func NewRange(start, end Position) (Range, error) {
	if !start.Comparable(end) {
		return Range{}, fmt.Errorf("%w: %s and %s", ErrDocumentMismatch, start.DocumentID, end.DocumentID)
	}
	if end.Before(start) {
		return Range{}, fmt.Errorf("%w: %s after %s", ErrInvalidRef, start, end)
	}
	return Range{Start: start, End: end}, nil
}

// IsZero reports whether r is the zero Range.
func (r Range) IsZero() bool {
	return r.Start.IsZero()
}

// Len returns the number of verses covered by r.
func (r Range) Len() int {
	if r.IsZero() {
		return 0
	}
	return r.End.Ordinal - r.Start.Ordinal + 1
}

// Contains reports whether p falls inside r.
func (r Range) Contains(p Position) bool {
	return r.Start.Comparable(p) &&
		p.Ordinal >= r.Start.Ordinal && p.Ordinal <= r.End.Ordinal
}

// OSISRef renders "Ps.14.1" for a single verse and "Rom.1.1-Rom.1.3" for a span.
func (r Range) OSISRef() string {
	if r.Start.Ordinal == r.End.Ordinal {
		return r.Start.OSISRef()
	}
	return r.Start.OSISRef() + "-" + r.End.OSISRef()
}

func (r Range) String() string {
	return r.OSISRef()
}
