package ui

import (
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdo34/rem/internal/app"
	"github.com/rdo34/rem/internal/config"
	"github.com/rdo34/rem/internal/logger"
	"github.com/rdo34/rem/internal/model"
	"github.com/rdo34/rem/internal/store"
)

func newTestUI(t *testing.T) (*UI, *app.Session) {
	t.Helper()
	cfg := config.Config{
		ConfirmExit: true,
		Years:       config.YearRange{First: 2017, Last: 2020},
		Log:         config.LogConfig{Level: "info"},
	}
	s := app.New(store.New(), cfg, logger.Nop())
	s.PrefsDir = t.TempDir()
	require.NoError(t, s.Select(31, 1, 2019))
	return New(s), s
}

func TestDropdownsFollowSelection(t *testing.T) {
	u, _ := newTestUI(t)

	mi, month := u.month.GetCurrentOption()
	assert.Equal(t, 0, mi)
	assert.Equal(t, "January", month)
	_, day := u.day.GetCurrentOption()
	assert.Equal(t, "31", day)
	_, year := u.year.GetCurrentOption()
	assert.Equal(t, "2019", year)
	assert.Equal(t, 31, u.day.GetOptionCount())
}

func TestMonthChangeClampsDay(t *testing.T) {
	u, s := newTestUI(t)

	u.month.SetCurrentOption(1) // February
	assert.Equal(t, model.NewDateKey(28, 2, 2019), s.Selected())
	assert.Equal(t, 28, u.day.GetOptionCount())

	u.year.SetCurrentOption(3) // 2020, a leap year
	assert.Equal(t, model.NewDateKey(28, 2, 2020), s.Selected())
	assert.Equal(t, 29, u.day.GetOptionCount())

	u.day.SetCurrentOption(28)
	assert.Equal(t, model.NewDateKey(29, 2, 2020), s.Selected())
}

func TestGetAndSaveReminder(t *testing.T) {
	u, s := newTestUI(t)

	u.text.SetText("Dentist", true)
	u.saveReminder()
	text, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "Dentist", text)

	u.day.SetCurrentOption(0)
	u.getReminder()
	assert.Equal(t, "", u.text.GetText())

	u.day.SetCurrentOption(30)
	u.getReminder()
	assert.Equal(t, "Dentist", u.text.GetText())
}

// pressEnter sends Enter to the open modal, choosing its focused button.
func pressEnter(t *testing.T, u *UI) {
	t.Helper()
	page := u.pages.GetPage("modal")
	require.NotNil(t, page, "no modal shown")
	modal, ok := page.(*tview.Modal)
	require.True(t, ok)
	modal.InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(p tview.Primitive) {
		u.app.SetFocus(p)
	})
}

func TestExitSavesFile(t *testing.T) {
	u, s := newTestUI(t)
	s.Config.ConfirmExit = false
	path := filepath.Join(t.TempDir(), "home.rem")
	require.NoError(t, s.OpenOrEmpty(path))

	u.text.SetText("Dentist", true)
	u.saveReminder()
	u.requestExit()

	assert.Equal(t, 0, u.exitCode)
	m, err := store.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, map[model.DateKey]string{model.NewDateKey(31, 1, 2019): "Dentist"}, m)
}

func TestConfirmedExitSavesFile(t *testing.T) {
	u, s := newTestUI(t)
	path := filepath.Join(t.TempDir(), "home.rem")
	require.NoError(t, s.OpenOrEmpty(path))
	s.Put("Dentist")

	u.requestExit()
	assert.NotNil(t, u.pages.GetPage("modal"))
	pressEnter(t, u) // Yes

	assert.Equal(t, 0, u.exitCode)
	m, err := store.LoadFromPath(path)
	require.NoError(t, err)
	assert.Len(t, m, 1)
}

func TestExitSaveFailureIsFatal(t *testing.T) {
	u, s := newTestUI(t)
	s.Config.ConfirmExit = false
	require.NoError(t, s.OpenOrEmpty(filepath.Join(t.TempDir(), "missing", "home.rem")))
	s.Put("Dentist")

	u.requestExit()
	pressEnter(t, u) // OK on the error

	assert.Equal(t, 1, u.exitCode)
	assert.Nil(t, u.pages.GetPage("modal"))
}
