package speak

import (
	"strconv"
	"strings"
	"testing"
)

func TestChapterEntryAnnouncement(t *testing.T) {
	f := newFixture(t, singleVerseSettings())

	f.setup(t, "Ps.14.1")

	first := f.next(t)
	if !strings.HasPrefix(first.Text, "Chapter 14. ") {
		t.Errorf("first.Text = %q, want chapter announcement prefix", first.Text)
	}
	if !strings.HasSuffix(first.Text, "Text of Ps.14.1.") {
		t.Errorf("first.Text = %q, want to end with Ps.14.1 content", first.Text)
	}
	if got := first.Range.OSISRef(); got != "Ps.14.1" {
		t.Errorf("first.Range = %s, want Ps.14.1", got)
	}
	if !first.EntersNewChapter || first.EntersNewBook {
		t.Errorf("first flags = chapter %v book %v, want true false", first.EntersNewChapter, first.EntersNewBook)
	}

	second := f.next(t)
	if got := second.Range.OSISRef(); got != "Ps.14.2" {
		t.Errorf("second.Range = %s, want Ps.14.2", got)
	}
	if second.EntersNewChapter || strings.HasPrefix(second.Text, "Chapter") {
		t.Errorf("second chunk = %+v, want no chapter entry", second)
	}

	f.setup(t, "Ps.13.6")
	if got := f.next(t).Range.OSISRef(); got != "Ps.13.6" {
		t.Errorf("after setup Range = %s, want Ps.13.6", got)
	}

	reentered := f.next(t)
	if got := reentered.Range.OSISRef(); got != "Ps.14.1" {
		t.Errorf("reentered.Range = %s, want Ps.14.1", got)
	}
	if !strings.HasPrefix(reentered.Text, "Chapter 14. ") {
		t.Errorf("reentered.Text = %q, want chapter announcement prefix", reentered.Text)
	}
}

func TestBookTransitionAnnouncement(t *testing.T) {
	for _, start := range []string{"Acts.28.29", "Acts.28.30", "Acts.28.31"} {
		t.Run(start, func(t *testing.T) {
			f := newFixture(t, singleVerseSettings())
			f.setup(t, start)

			var rom SpeechChunk
			for i := 0; i < 5; i++ {
				c := f.next(t)
				if c.Range.Start.Book == "Rom" {
					rom = c
					break
				}
			}

			if got := rom.Range.OSISRef(); got != "Rom.1.1" {
				t.Fatalf("Romans chunk Range = %s, want Rom.1.1", got)
			}
			if !strings.HasPrefix(rom.Text, "Book of Romans. Chapter 1. ") {
				t.Errorf("Romans chunk Text = %q, want book and chapter announcement", rom.Text)
			}
			if strings.Count(rom.Text, "Chapter") != 1 {
				t.Errorf("Romans chunk Text = %q, want a single chapter announcement", rom.Text)
			}
			if !rom.EntersNewBook || !rom.EntersNewChapter {
				t.Errorf("Romans chunk flags = book %v chapter %v, want both true", rom.EntersNewBook, rom.EntersNewChapter)
			}
			if rom.BookName != "Romans" || rom.ChapterNumber != 1 {
				t.Errorf("Romans chunk = %q %d, want Romans 1", rom.BookName, rom.ChapterNumber)
			}
		})
	}
}

func TestContinueSentencesStopsAtBook(t *testing.T) {
	f := newFixture(t, DefaultSettings())
	f.content.texts = map[string]string{
		"Acts.28.31": "Preaching the kingdom of God, with all confidence, no man forbidding him",
		"Rom.1.1":    "Paul, a servant of Jesus Christ, called to be an apostle,",
		"Rom.1.2":    "(Which he had promised afore by his prophets in the holy scriptures,)",
		"Rom.1.3":    "Concerning his Son Jesus Christ our Lord.",
	}

	f.setup(t, "Acts.28.30")

	if got := f.next(t).Range.OSISRef(); got != "Acts.28.30" {
		t.Errorf("chunk 1 Range = %s, want Acts.28.30", got)
	}

	acts := f.next(t)
	if got := acts.Range.OSISRef(); got != "Acts.28.31" {
		t.Errorf("chunk 2 Range = %s, want Acts.28.31 alone", got)
	}

	rom := f.next(t)
	if got := rom.Range.OSISRef(); got != "Rom.1.1-Rom.1.3" {
		t.Errorf("Romans chunk Range = %s, want Rom.1.1-Rom.1.3", got)
	}
	if !strings.HasPrefix(rom.Text, "Book of Romans. Chapter 1. Paul,") {
		t.Errorf("Romans chunk Text = %q, want announcement then verse text", rom.Text)
	}
	if !rom.EntersNewBook {
		t.Error("Romans chunk EntersNewBook = false, want true")
	}
	if len(rom.Spans) != 3 {
		t.Fatalf("len(Spans) = %d, want 3", len(rom.Spans))
	}
	for _, s := range rom.Spans {
		want := f.content.texts[s.Position.OSISRef()]
		if got := rom.Text[s.Offset : s.Offset+s.Length]; got != want {
			t.Errorf("span %s = %q, want %q", s.Position, got, want)
		}
	}

	if got := f.next(t).Range.OSISRef(); got != "Rom.1.4" {
		t.Errorf("next Range = %s, want Rom.1.4", got)
	}
}

func TestSingleVerseChunks(t *testing.T) {
	f := newFixture(t, singleVerseSettings())
	f.content.noPeriod = true

	f.setup(t, "Ruth.4.20")
	for i := 0; i < 6; i++ {
		c := f.next(t)
		if c.Range.Len() != 1 {
			t.Errorf("chunk %d Range = %s, want one verse", i, c.Range)
		}
	}
}

func TestForwardTraversalProperties(t *testing.T) {
	f := newFixture(t, DefaultSettings())
	f.content.noPeriod = true
	// sentences run on across chapter ends; chunks close at the verse cap,
	// at the book change and at the one full stop
	f.content.texts["1Sam.2.36"] = "End of 1Sam.2.36."

	f.setup(t, "Ruth.3.1")

	entered := map[string]int{}
	var prev SpeechChunk
	for i := 0; ; i++ {
		c := f.next(t)

		if c.Range.Start.Book != c.Range.End.Book {
			t.Errorf("chunk %s crosses a book boundary", c.Range)
		}
		if i > 0 && c.Range.Start.Ordinal != prev.Range.End.Ordinal+1 {
			t.Errorf("chunk %s does not follow %s", c.Range, prev.Range)
		}
		if c.EntersNewChapter {
			if c.Range.Start.Verse != 1 {
				t.Errorf("chunk %s enters a chapter but does not start at verse 1", c.Range)
			}
			entered[c.Range.Start.Book+"."+strconv.Itoa(c.Range.Start.Chapter)]++
		}
		for k, s := range c.Spans {
			if !s.EntersNewChapter {
				continue
			}
			if k == 0 || s.Position.Chapter == c.Spans[k-1].Position.Chapter {
				t.Errorf("chunk %s flags %s without a chapter change", c.Range, s.Position)
			}
			want := "Chapter " + strconv.Itoa(s.Position.Chapter) + ". text of " + s.Position.OSISRef()
			if got := c.Text[s.Offset : s.Offset+s.Length]; got != want {
				t.Errorf("span %s = %q, want %q", s.Position, got, want)
			}
			entered[s.Position.Book+"."+strconv.Itoa(s.Position.Chapter)]++
		}
		if c.EntersNewBook && c.Range.Start.OSISRef() != "1Sam.1.1" {
			t.Errorf("chunk %s enters a book unexpectedly", c.Range)
		}

		prev = c
		if c.Range.End.OSISRef() == "1Sam.2.36" {
			break
		}
		if i > 100 {
			t.Fatal("did not reach 1Sam.2.36")
		}
	}

	for _, ch := range []string{"Ruth.3", "Ruth.4", "1Sam.1", "1Sam.2"} {
		if entered[ch] != 1 {
			t.Errorf("chapter %s entered %d times, want 1", ch, entered[ch])
		}
	}
}

func TestChapterAnnouncedInsideChunk(t *testing.T) {
	tests := []struct {
		name     string
		announce bool
		want     string
	}{
		{"announced", true, "text of Ps.13.6 Chapter 14. The fool hath said in his heart."},
		{"silent", false, "text of Ps.13.6 The fool hath said in his heart."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.SpeakChapterChanges = tt.announce
			f := newFixture(t, s)
			f.content.noPeriod = true
			f.content.texts["Ps.14.1"] = "The fool hath said in his heart."

			f.setup(t, "Ps.13.6")
			c := f.next(t)

			if got := c.Range.OSISRef(); got != "Ps.13.6-Ps.14.1" {
				t.Errorf("Range = %s, want Ps.13.6-Ps.14.1", got)
			}
			if c.Text != tt.want {
				t.Errorf("Text = %q, want %q", c.Text, tt.want)
			}
			if c.EntersNewChapter {
				t.Error("EntersNewChapter = true, want false for a chunk starting mid-chapter")
			}
			if len(c.Spans) != 2 || c.Spans[0].EntersNewChapter || !c.Spans[1].EntersNewChapter {
				t.Errorf("Spans = %+v, want the Ps.14.1 span to enter the chapter", c.Spans)
			}

			// the announcement belongs to Ps.14.1 when pausing
			f.nav.Pause(0.5)
			if got := f.nav.VerseRange().Start.OSISRef(); tt.announce && got != "Ps.14.1" {
				t.Errorf("paused at %s, want Ps.14.1", got)
			}
		})
	}
}

func TestMaxChunkVerses(t *testing.T) {
	s := DefaultSettings()
	s.MaxChunkVerses = 3
	f := newFixture(t, s)
	f.content.noPeriod = true

	f.setup(t, "Ps.119.1")
	c := f.next(t)
	if got := c.Range.OSISRef(); got != "Ps.119.1-Ps.119.3" {
		t.Errorf("Range = %s, want Ps.119.1-Ps.119.3", got)
	}
}

func TestSkipsVersesWithoutText(t *testing.T) {
	f := newFixture(t, singleVerseSettings())
	f.content.texts["Ps.14.1"] = ""

	f.setup(t, "Ps.13.6")
	f.next(t)

	c := f.next(t)
	if got := c.Range.OSISRef(); got != "Ps.14.2" {
		t.Errorf("Range = %s, want Ps.14.2", got)
	}
	if !c.EntersNewChapter || !strings.HasPrefix(c.Text, "Chapter 14. ") {
		t.Errorf("chunk = %+v, want chapter entry carried to the first verse with text", c)
	}
}

func TestSkipsEmptyVerseInsideSentence(t *testing.T) {
	f := newFixture(t, DefaultSettings())
	f.content.texts = map[string]string{
		"Rom.1.1": "Paul, a servant of Jesus Christ,",
		"Rom.1.2": "",
		"Rom.1.3": "Concerning his Son.",
	}
	s := DefaultSettings()
	s.SpeakBookChanges = false
	s.SpeakChapterChanges = false
	if err := f.nav.UpdateSettings(s); err != nil {
		t.Fatal(err)
	}

	f.setup(t, "Rom.1.1")
	c := f.next(t)
	if got := c.Range.OSISRef(); got != "Rom.1.1-Rom.1.3" {
		t.Errorf("Range = %s, want Rom.1.1-Rom.1.3", got)
	}
	if c.Text != "Paul, a servant of Jesus Christ, Concerning his Son." {
		t.Errorf("Text = %q", c.Text)
	}
	if len(c.Spans) != 2 {
		t.Errorf("len(Spans) = %d, want 2", len(c.Spans))
	}
}

func TestTitlesAreSeparateChunks(t *testing.T) {
	s := singleVerseSettings()
	s.SpeakTitles = true
	f := newFixture(t, s)
	f.content.titles["Ps.14.1"] = "To the chief Musician, A Psalm of David."

	f.setup(t, "Ps.13.6")
	f.next(t)

	title := f.next(t)
	if !title.IsTitle() {
		t.Fatalf("Kind = %v, want title", title.Kind)
	}
	if title.Text != "Chapter 14. To the chief Musician, A Psalm of David." {
		t.Errorf("title.Text = %q", title.Text)
	}
	if !title.EntersNewChapter {
		t.Error("title.EntersNewChapter = false, want true")
	}

	body := f.next(t)
	if body.IsTitle() || body.Range.OSISRef() != "Ps.14.1" {
		t.Errorf("body = %v %s, want verses Ps.14.1", body.Kind, body.Range)
	}
	if body.EntersNewChapter || strings.HasPrefix(body.Text, "Chapter") {
		t.Errorf("body = %+v, want no repeated announcement", body)
	}

	if got := f.next(t).Range.OSISRef(); got != "Ps.14.2" {
		t.Errorf("after title Range = %s, want Ps.14.2", got)
	}
}

func TestTitleClosesSentence(t *testing.T) {
	s := DefaultSettings()
	s.SpeakTitles = true
	f := newFixture(t, s)
	f.content.noPeriod = true
	f.content.titles["Ps.14.1"] = "A Psalm of David"

	f.setup(t, "Ps.13.5")
	if got := f.next(t).Range.OSISRef(); got != "Ps.13.5-Ps.13.6" {
		t.Errorf("Range = %s, want Ps.13.5-Ps.13.6", got)
	}
	if !f.next(t).IsTitle() {
		t.Error("expected title chunk after chunk closed by heading")
	}
}

func TestChapterAnnouncementsDisabled(t *testing.T) {
	s := singleVerseSettings()
	s.SpeakChapterChanges = false
	s.SpeakBookChanges = false
	f := newFixture(t, s)

	f.setup(t, "Rom.1.1")
	c := f.next(t)
	if c.Text != "Text of Rom.1.1." {
		t.Errorf("Text = %q, want verse text only", c.Text)
	}
	if !c.EntersNewBook || !c.EntersNewChapter {
		t.Error("flags should be set even when announcements are off")
	}
}
