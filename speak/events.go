package speak

import (
	"time"

	"github.com/dgnsrekt/bible-speak/verse"
	"github.com/google/uuid"
)

// EventType identifies what changed.
type EventType int

const (
	// EventSessionStarted is published by SetupReading and RestoreState.
	EventSessionStarted EventType = iota
	// EventChunkEmitted is published for every chunk returned.
	EventChunkEmitted
	// EventPaused is published after Pause fixed a resumable position.
	EventPaused
	// EventJumped is published after Rewind or Forward.
	EventJumped
	// EventEndOfDocument is published once when the text runs out.
	EventEndOfDocument
	// EventRestoreFallback is published when RestoreState used the default start.
	EventRestoreFallback
	// EventPersistFailed is published when the store rejected a write.
	EventPersistFailed
)

func (t EventType) String() string {
	switch t {
	case EventSessionStarted:
		return "session_started"
	case EventChunkEmitted:
		return "chunk_emitted"
	case EventPaused:
		return "paused"
	case EventJumped:
		return "jumped"
	case EventEndOfDocument:
		return "end_of_document"
	case EventRestoreFallback:
		return "restore_fallback"
	case EventPersistFailed:
		return "persist_failed"
	default:
		return "unknown"
	}
}

// Event is published to listeners after every position-changing call.
type Event struct {
	Type      EventType
	SessionID uuid.UUID
	Document  string
	Range     verse.Range
	State     StateType
	Chunk     *SpeechChunk // set for EventChunkEmitted
	Err       error        // diagnostic, never fatal
	Time      time.Time
}

// Listener receives navigator events. Listeners run synchronously on the
// caller's goroutine and must not call back into the navigator.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

type listeners struct {
	nextID int
	subs   []subscription
}

func (l *listeners) add(fn Listener) func() {
	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, subscription{id: id, fn: fn})

	return func() {
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

func (l *listeners) publish(e Event) {
	// copy so a listener may unsubscribe itself
	subs := append([]subscription(nil), l.subs...)
	for _, s := range subs {
		s.fn(e)
	}
}
