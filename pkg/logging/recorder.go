package logging

import (
	"context"
	"log/slog"
	"sync"
)

// Entry is a recorded log record with its attributes flattened
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// Attr returns the string representation of an attribute, or "" if missing
func (e Entry) Attr(key string) string {
	if value, ok := e.Attrs[key]; ok {
		if v, ok := value.(slog.Value); ok {
			return v.String()
		}
	}
	return ""
}

// Recorder is a slog.Handler keeping every record in memory
type Recorder struct {
	level slog.Leveler
	attrs []slog.Attr
	store *recorderStore
}

type recorderStore struct {
	mutex   sync.Mutex
	entries []Entry
}

// NewRecorder creates a recorder keeping records at the given level or above
func NewRecorder(level slog.Leveler) *Recorder {
	return &Recorder{level: level, store: &recorderStore{}}
}

func (r *Recorder) Enabled(_ context.Context, level slog.Level) bool {
	return level >= r.level.Level()
}

func (r *Recorder) Handle(_ context.Context, record slog.Record) error {
	entry := Entry{Level: record.Level, Message: record.Message, Attrs: make(map[string]any)}

	for _, attr := range r.attrs {
		entry.Attrs[attr.Key] = attr.Value
	}

	record.Attrs(func(attr slog.Attr) bool {
		entry.Attrs[attr.Key] = attr.Value
		return true
	})

	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	r.store.entries = append(r.store.entries, entry)
	return nil
}

func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Recorder{level: r.level, attrs: append(append([]slog.Attr(nil), r.attrs...), attrs...), store: r.store}
}

// Groups are not nested: attributes keep their own key
func (r *Recorder) WithGroup(string) slog.Handler {
	return r
}

// Entries returns a copy of all recorded entries
func (r *Recorder) Entries() []Entry {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	return append([]Entry(nil), r.store.entries...)
}

// AtLevel returns the recorded entries with exactly the given level
func (r *Recorder) AtLevel(level slog.Level) []Entry {
	var result []Entry
	for _, entry := range r.Entries() {
		if entry.Level == level {
			result = append(result, entry)
		}
	}
	return result
}

// Filter returns the recorded entries having an attribute with the given value
func (r *Recorder) Filter(key, value string) []Entry {
	var result []Entry
	for _, entry := range r.Entries() {
		if entry.Attr(key) == value {
			result = append(result, entry)
		}
	}
	return result
}

// Reset drops all recorded entries
func (r *Recorder) Reset() {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()
	r.store.entries = nil
}
