package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rdo34/rem/internal/config"
	"github.com/rdo34/rem/internal/model"
	"github.com/rdo34/rem/internal/store"
)

// Session ties one reminder store to the file it is loaded from and saved to,
// and tracks the date currently selected. A Session is used from a single
// goroutine.
type Session struct {
	Store    store.Store
	Config   config.Config
	Log      *zap.SugaredLogger
	PrefsDir string // where prefs.json lives; empty disables preferences

	path     string
	selected model.DateKey
}

func New(st store.Store, cfg config.Config, log *zap.SugaredLogger) *Session {
	s := &Session{Store: st, Config: cfg, Log: log}
	s.selected = s.defaultDate(time.Now())
	return s
}

// defaultDate picks today when it falls in the configured years, else
// 1 January of the first configured year.
func (s *Session) defaultDate(now time.Time) model.DateKey {
	if now.Year() >= s.Config.Years.First && now.Year() <= s.Config.Years.Last {
		return model.NewDateKey(now.Day(), int(now.Month()), now.Year())
	}
	return model.NewDateKey(1, 1, s.Config.Years.First)
}

// Path is the file the session saves to; empty until Open or Create.
func (s *Session) Path() string { return s.path }

// Open loads an existing reminder file and makes it the session file. Any
// load failure is returned as is and leaves the store untouched.
func (s *Session) Open(path string) error {
	if err := CheckExtension(path); err != nil {
		return err
	}
	m, err := store.LoadFromPath(path)
	if err != nil {
		s.Log.Errorw("load", "path", path, "ERROR", err)
		return err
	}
	s.Store.ReplaceAll(m)
	s.path = path
	s.Log.Infow("load", "path", path, "reminders", len(m))
	return nil
}

// OpenOrEmpty opens path, starting an empty session when it does not exist.
func (s *Session) OpenOrEmpty(path string) error {
	if err := CheckExtension(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.path = path
		s.Log.Infow("new file", "path", path)
		return nil
	}
	return s.Open(path)
}

// Create starts a session that will be saved to a new file named name in the
// working directory. It returns the resolved path.
func (s *Session) Create(name string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}
	s.path = store.NewFilePath(wd, name)
	s.Log.Infow("new file", "path", s.path)
	return s.path, nil
}

// CheckExtension rejects reminder files that do not end in .rem.
func CheckExtension(path string) error {
	if !store.HasFileExt(path) {
		return fmt.Errorf("%s: reminder files must have the %s extension", path, store.FileExt)
	}
	return nil
}

// Select changes the selected date. Dates that do not exist are rejected
// here so that only real days reach the store.
func (s *Session) Select(day, month, year int) error {
	k := model.NewDateKey(day, month, year)
	if !k.Valid() {
		return fmt.Errorf("no such date: day %d of month %d, %d", day, month, year)
	}
	s.selected = k
	return nil
}

func (s *Session) Selected() model.DateKey { return s.selected }

// Get returns the reminder for the selected date.
func (s *Session) Get() (string, bool) {
	return s.Store.Get(s.selected)
}

// Put stores text for the selected date.
func (s *Session) Put(text string) {
	s.Store.Put(s.selected, text)
	s.Log.Debugw("put", "date", s.selected.String(), "bytes", len(text))
}

// Delete removes the reminder for the selected date.
func (s *Session) Delete() bool {
	return s.Store.Delete(s.selected)
}

// Save writes the store to the session file and records it in preferences.
func (s *Session) Save() error {
	if s.path == "" {
		return fmt.Errorf("save: no reminder file chosen")
	}
	if err := s.Store.SaveToPath(s.path); err != nil {
		s.Log.Errorw("save", "path", s.path, "ERROR", err)
		return err
	}
	s.Log.Infow("save", "path", s.path, "reminders", len(s.Store.Entries()))
	s.SavePrefs()
	return nil
}

// DayOptions lists the days of the selected month and year.
func (s *Session) DayOptions() []int {
	n := model.DaysIn(s.selected.Month(), s.selected.Year())
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// YearOptions lists the configured years.
func (s *Session) YearOptions() []int {
	return model.Years(s.Config.Years.First, s.Config.Years.Last)
}

// ClampDay returns day limited to the number of days in month of year, so a
// month change from 31 January lands on 28 or 29 February.
func ClampDay(day, month, year int) int {
	if n := model.DaysIn(month, year); day > n {
		return n
	}
	if day < 1 {
		return 1
	}
	return day
}

// RestorePrefs reads the previous session's preferences, reselects its last
// date when that falls in the configured years, and returns its last file.
func (s *Session) RestorePrefs() string {
	if s.PrefsDir == "" {
		return ""
	}
	path, err := store.PrefsPath(s.PrefsDir)
	if err != nil {
		return ""
	}
	p, err := store.LoadPreferences(path)
	if err != nil {
		return ""
	}
	if k, err := model.ParseDateKey(p.LastDate); err == nil {
		if k.Year() >= s.Config.Years.First && k.Year() <= s.Config.Years.Last {
			s.selected = k
		}
	}
	return strings.TrimSpace(p.LastFile)
}

// SavePrefs persists the session file and selected date. Failures are logged
// only; preferences are a convenience.
func (s *Session) SavePrefs() {
	if s.PrefsDir == "" {
		return
	}
	path, err := store.PrefsPath(s.PrefsDir)
	if err != nil {
		s.Log.Warnw("prefs", "ERROR", err)
		return
	}
	p := store.Preferences{LastFile: s.path, LastDate: s.selected.String()}
	if err := store.SavePreferences(path, p); err != nil {
		s.Log.Warnw("prefs", "path", path, "ERROR", err)
	}
}
