package store

import (
	"sort"

	"github.com/rdo34/rem/internal/model"
)

// Store defines the reminder operations a session needs.
type Store interface {
	Put(key model.DateKey, text string)
	Get(key model.DateKey) (string, bool)
	Delete(key model.DateKey) bool
	ReplaceAll(m map[model.DateKey]string)
	Entries() []Entry
	SaveToPath(path string) error
}

// State is Empty until the first reminder is stored.
type State int

const (
	Empty State = iota
	Populated
)

func (s State) String() string {
	if s == Populated {
		return "populated"
	}
	return "empty"
}

// Entry is one reminder with its date.
type Entry struct {
	Key  model.DateKey
	Text string
}

// Reminders maps dates to reminder text, at most one text per date.
// It is not safe for concurrent use.
type Reminders struct {
	items map[model.DateKey]string
}

// New returns an empty store.
func New() *Reminders {
	return &Reminders{items: map[model.DateKey]string{}}
}

// Put stores text under key, replacing any previous text.
func (r *Reminders) Put(key model.DateKey, text string) {
	r.items[key] = text
}

// Get returns the text for key and whether one exists.
func (r *Reminders) Get(key model.DateKey) (string, bool) {
	text, ok := r.items[key]
	return text, ok
}

// Delete removes the reminder for key and reports whether one existed.
func (r *Reminders) Delete(key model.DateKey) bool {
	if _, ok := r.items[key]; !ok {
		return false
	}
	delete(r.items, key)
	return true
}

// ReplaceAll discards the current contents and copies m in.
func (r *Reminders) ReplaceAll(m map[model.DateKey]string) {
	items := make(map[model.DateKey]string, len(m))
	for k, v := range m {
		items[k] = v
	}
	r.items = items
}

func (r *Reminders) Len() int { return len(r.items) }

func (r *Reminders) State() State {
	if len(r.items) == 0 {
		return Empty
	}
	return Populated
}

// Entries returns all reminders in date order.
func (r *Reminders) Entries() []Entry {
	out := make([]Entry, 0, len(r.items))
	for k, v := range r.items {
		out = append(out, Entry{Key: k, Text: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Before(out[j].Key) })
	return out
}

// SaveToPath writes every reminder to path as a single snapshot.
func (r *Reminders) SaveToPath(path string) error {
	return writeSnapshot(path, r.Entries())
}

var _ Store = (*Reminders)(nil)
