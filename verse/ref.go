package verse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Ref is an unresolved reference as written, e.g. "Ps.14.1" or "1John.3".
// Chapter and Verse are 0 when omitted.
type Ref struct {
	Book    string
	Chapter int
	Verse   int
}

func (r Ref) String() string {
	var sb strings.Builder
	sb.WriteString(r.Book)
	if r.Chapter > 0 {
		sb.WriteString(".")
		sb.WriteString(strconv.Itoa(r.Chapter))
		if r.Verse > 0 {
			sb.WriteString(".")
			sb.WriteString(strconv.Itoa(r.Verse))
		}
	}
	return sb.String()
}

// refGrammar accepts "Gen", "Gen.1", "Gen.1.1", "1John.3.16" and the
// colon/space forms "Gen 1:1" typed at a prompt.
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	BookPrefix string       `@Int?`
	BookName   []string     `@Ident+`
	Chapter    *chapterPart `( ("." | ":")? @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chapterPart struct {
	Chapter int  `@Int`
	Verse   *int `( ("." | ":") @Int )?`
}

var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z]+`},
	{Name: "Punct", Pattern: `[.:]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// ParseRef parses a single verse reference.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, fmt.Errorf("%w: empty reference", ErrInvalidRef)
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %q: %v", ErrInvalidRef, s, err)
	}

	ref := Ref{Book: parsed.BookPrefix + strings.Join(parsed.BookName, " ")}
	if parsed.Chapter != nil {
		ref.Chapter = parsed.Chapter.Chapter
		if parsed.Chapter.Verse != nil {
			ref.Verse = *parsed.Chapter.Verse
		}
	}
	return ref, nil
}

// Resolve turns a reference into a position of d. A missing chapter or verse
// resolves to 1.
func (d Document) Resolve(ref Ref) (Position, error) {
	chapter, v := ref.Chapter, ref.Verse
	if chapter == 0 {
		chapter = 1
	}
	if v == 0 {
		v = 1
	}
	return d.Position(ref.Book, chapter, v)
}

// ParsePosition parses and resolves a single verse reference against d.
func (d Document) ParsePosition(s string) (Position, error) {
	ref, err := ParseRef(s)
	if err != nil {
		return Position{}, err
	}
	return d.Resolve(ref)
}

// ParseRange parses "Rom.1.1-Rom.1.3", "Rom.1.1-3" or a single reference.
func (d Document) ParseRange(s string) (Range, error) {
	startText, endText, found := strings.Cut(s, "-")
	start, err := d.ParsePosition(startText)
	if err != nil {
		return Range{}, err
	}
	if !found {
		return Single(start), nil
	}

	endText = strings.TrimSpace(endText)
	var end Position
	if n, convErr := strconv.Atoi(endText); convErr == nil {
		end, err = d.Position(start.Book, start.Chapter, n)
	} else {
		end, err = d.ParsePosition(endText)
	}
	if err != nil {
		return Range{}, err
	}
	return NewRange(start, end)
}
