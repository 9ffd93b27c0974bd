package cache

import (
	"errors"
	"testing"

	"github.com/dgnsrekt/bible-speak/speak"
	"github.com/dgnsrekt/bible-speak/verse"
	"golang.org/x/text/language"
)

type countingSource struct {
	reads map[string]int
	texts map[string]string
	fail  error
}

func (c *countingSource) VerseText(_ verse.Document, pos verse.Position) (string, error) {
	c.reads[pos.OSISRef()]++
	if c.fail != nil {
		return "", c.fail
	}
	t, ok := c.texts[pos.OSISRef()]
	if !ok {
		return "", speak.ErrContentUnavailable
	}
	return t, nil
}

func (c *countingSource) Title(verse.Document, verse.Position) string { return "" }
func (c *countingSource) IsFirstVerseOfChapter(_ verse.Document, p verse.Position) bool {
	return p.Verse == 1
}
func (c *countingSource) IsFirstVerseOfBook(_ verse.Document, p verse.Position) bool {
	return p.Chapter == 1 && p.Verse == 1
}
func (c *countingSource) ChapterNumber(_ verse.Document, p verse.Position) int { return p.Chapter }
func (c *countingSource) BookName(d verse.Document, p verse.Position) string {
	return d.BookName(p)
}

func TestSourceCachesVerses(t *testing.T) {
	doc := verse.Document{ID: "KJV", Language: language.English, Versification: verse.KJV()}
	gen1, _ := doc.ParsePosition("Gen.1.1")
	gen2, _ := doc.ParsePosition("Gen.1.2")

	inner := &countingSource{
		reads: map[string]int{},
		texts: map[string]string{"Gen.1.1": "In the beginning God created the heaven and the earth."},
	}
	src := NewSource(inner, 10)

	for i := 0; i < 3; i++ {
		if _, err := src.VerseText(doc, gen1); err != nil {
			t.Fatalf("VerseText(Gen.1.1) error = %v", err)
		}
		if _, err := src.VerseText(doc, gen2); !errors.Is(err, speak.ErrContentUnavailable) {
			t.Fatalf("VerseText(Gen.1.2) error = %v, want ErrContentUnavailable", err)
		}
	}

	if inner.reads["Gen.1.1"] != 1 || inner.reads["Gen.1.2"] != 1 {
		t.Errorf("reads = %v, want one each", inner.reads)
	}
	if got := src.Stats().Hits; got != 4 {
		t.Errorf("Hits = %d, want 4", got)
	}
	if got := src.BookName(doc, gen1); got != "Genesis" {
		t.Errorf("BookName() = %q, want Genesis", got)
	}
}

func TestSourceDoesNotCacheFailures(t *testing.T) {
	doc := verse.Document{ID: "KJV", Versification: verse.KJV()}
	pos, _ := doc.ParsePosition("Gen.1.1")

	inner := &countingSource{reads: map[string]int{}, fail: errors.New("io error")}
	src := NewSource(inner, 10)

	src.VerseText(doc, pos)
	src.VerseText(doc, pos)

	if inner.reads["Gen.1.1"] != 2 {
		t.Errorf("reads = %d, want 2", inner.reads["Gen.1.1"])
	}
}
