package ui

import (
	"errors"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rdo34/rem/internal/app"
	"github.com/rdo34/rem/internal/model"
	"github.com/rdo34/rem/internal/store"
)

const (
	title           = " Reminders App "
	placeholder     = "Enter reminder here"
	defaultControls = "[tab] Next field  [ctrl-s] Write file  [esc] Exit"

	startPrompt   = "Would you like to load reminders from an existing file?\n(The file must be a .rem file)"
	confirmExit   = "Are you sure that you want to exit the app?"
	fileMissing   = "The file is missing.\nExiting the app."
	fileRequired  = "You must select a file for the program to save the reminders to.\nProgram is exiting, please try again."
	fileReadError = "Error opening file. Exiting program."
	fileSaveError = "Error saving file. Exiting program."
)

type UI struct {
	app      *tview.Application
	pages    *tview.Pages
	form     *tview.Form
	month    *tview.DropDown
	day      *tview.DropDown
	year     *tview.DropDown
	text     *tview.TextArea
	controls *tview.TextView

	session  *app.Session
	years    []int
	lastFile string
	exitCode int
	// syncing suppresses dropdown callbacks while options are rebuilt
	syncing bool
	started bool
}

// New builds the window around an open session. The session's file is chosen
// at startup by Run.
func New(session *app.Session) *UI {
	u := &UI{
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		session: session,
		years:   session.YearOptions(),
	}
	u.lastFile = session.RestorePrefs()
	if session.Config.File != "" {
		u.lastFile = session.Config.File
	}

	u.month = tview.NewDropDown().SetLabel("Month ")
	u.day = tview.NewDropDown().SetLabel("Day   ")
	u.year = tview.NewDropDown().SetLabel("Year  ")
	u.text = tview.NewTextArea().SetPlaceholder(placeholder)
	u.text.SetLabel("Reminder")
	u.text.SetSize(8, 0)
	u.controls = tview.NewTextView().SetTextAlign(tview.AlignCenter)

	u.syncing = true
	u.month.SetOptions(model.MonthNames, func(string, int) { u.dateChanged() })
	yearOpts := make([]string, len(u.years))
	for i, y := range u.years {
		yearOpts[i] = strconv.Itoa(y)
	}
	u.year.SetOptions(yearOpts, func(string, int) { u.dateChanged() })
	u.syncing = false

	u.form = tview.NewForm().
		AddFormItem(u.month).
		AddFormItem(u.day).
		AddFormItem(u.year).
		AddFormItem(u.text).
		AddButton("Get reminder", u.getReminder).
		AddButton("Save reminder", u.saveReminder)
	u.form.SetBorder(true).SetTitle(title)
	u.form.SetCancelFunc(u.requestExit)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(u.form, 0, 1, true).
		AddItem(u.controls, 1, 0, false)
	u.pages.AddPage("main", layout, true, true)

	u.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if !u.started {
			return event
		}
		switch event.Key() {
		case tcell.KeyCtrlC:
			u.requestExit()
			return nil
		case tcell.KeyCtrlS:
			u.writeFile()
			return nil
		}
		return event
	})

	u.showDate(session.Selected())
	u.setStatus("")
	return u
}

// Run shows the startup prompt and runs the event loop. The returned code is
// the process exit status: 1 after a fatal file error, else 0.
func (u *UI) Run() (int, error) {
	u.showModal(startPrompt, []string{"Yes", "No"}, func(index int, _ string) {
		switch index {
		case 0:
			u.askExistingFile()
		case 1:
			u.askNewFile()
		default:
			u.stop(0)
		}
	})
	if err := u.app.SetRoot(u.pages, true).Run(); err != nil {
		return 1, err
	}
	return u.exitCode, nil
}

func (u *UI) askExistingFile() {
	u.askPath("Reminder file: ", u.lastFile, func(path string, ok bool) {
		if !ok || path == "" {
			u.fatal(fileRequired, nil)
			return
		}
		if err := u.session.Open(path); err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				u.fatal(fileMissing, err)
			default:
				u.fatal(fileReadError, err)
			}
			return
		}
		u.startMain()
	})
}

func (u *UI) askNewFile() {
	u.askPath("New file name (empty for "+store.DefaultFileName+"): ", "", func(name string, ok bool) {
		if !ok {
			name = ""
		}
		if _, err := u.session.Create(name); err != nil {
			u.fatal(fileSaveError, err)
			return
		}
		u.startMain()
	})
}

func (u *UI) startMain() {
	u.started = true
	u.pages.SwitchToPage("main")
	u.app.SetFocus(u.form)
	u.setStatus(u.session.Path())
}

// dateChanged reads the three dropdowns, keeps the day list in step with the
// chosen month and year, and updates the session selection.
func (u *UI) dateChanged() {
	if u.syncing {
		return
	}
	mi, _ := u.month.GetCurrentOption()
	yi, _ := u.year.GetCurrentOption()
	di, _ := u.day.GetCurrentOption()
	if mi < 0 || yi < 0 || yi >= len(u.years) {
		return
	}
	month, year := mi+1, u.years[yi]
	day := app.ClampDay(di+1, month, year)
	if err := u.session.Select(day, month, year); err != nil {
		u.setStatus(err.Error())
		return
	}
	if model.DaysIn(month, year) != u.day.GetOptionCount() {
		u.rebuildDays(day)
	}
}

func (u *UI) rebuildDays(day int) {
	u.syncing = true
	defer func() { u.syncing = false }()
	days := u.session.DayOptions()
	opts := make([]string, len(days))
	for i, d := range days {
		opts[i] = strconv.Itoa(d)
	}
	u.day.SetOptions(opts, func(string, int) { u.dateChanged() })
	u.day.SetCurrentOption(day - 1)
}

// showDate points the dropdowns at k without triggering callbacks.
func (u *UI) showDate(k model.DateKey) {
	u.syncing = true
	u.month.SetCurrentOption(k.Month() - 1)
	for i, y := range u.years {
		if y == k.Year() {
			u.year.SetCurrentOption(i)
			break
		}
	}
	u.syncing = false
	u.rebuildDays(k.Day())
}

func (u *UI) getReminder() {
	text, ok := u.session.Get()
	u.text.SetText(text, true)
	if !ok {
		u.setStatus("No reminder for " + u.session.Selected().String())
		return
	}
	u.setStatus("Reminder for " + u.session.Selected().String())
}

func (u *UI) saveReminder() {
	u.session.Put(u.text.GetText())
	u.setStatus("Saved reminder for " + u.session.Selected().String())
}

func (u *UI) writeFile() {
	if err := u.session.Save(); err != nil {
		u.fatal(fileSaveError, err)
		return
	}
	u.setStatus("Wrote " + u.session.Path())
}

func (u *UI) requestExit() {
	if !u.session.Config.ConfirmExit {
		u.saveAndStop()
		return
	}
	u.showModal(confirmExit, []string{"Yes", "No"}, func(index int, _ string) {
		if index == 0 {
			u.saveAndStop()
			return
		}
		u.pages.SwitchToPage("main")
		u.app.SetFocus(u.form)
	})
}

func (u *UI) saveAndStop() {
	if err := u.session.Save(); err != nil {
		u.fatal(fileSaveError, err)
		return
	}
	u.stop(0)
}

// fatal informs the user and ends the session with status 1.
func (u *UI) fatal(msg string, err error) {
	if err != nil {
		u.session.Log.Errorw("fatal", "message", msg, "ERROR", err)
		msg += "\n\n" + err.Error()
	}
	u.showModal(msg, []string{"OK"}, func(int, string) { u.stop(1) })
}

func (u *UI) stop(code int) {
	u.exitCode = code
	u.app.Stop()
}

func (u *UI) showModal(text string, buttons []string, done func(index int, label string)) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons(buttons).
		SetDoneFunc(func(index int, label string) {
			u.pages.RemovePage("modal")
			done(index, label)
		})
	u.pages.AddPage("modal", modal, true, true)
	u.app.SetFocus(modal)
}

// askPath shows a single-line prompt; done receives ok=false on Esc.
func (u *UI) askPath(label, initial string, done func(value string, ok bool)) {
	field := tview.NewInputField().SetLabel(label).SetText(initial).SetFieldWidth(60)
	field.SetBorder(true).SetTitle(title)
	field.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			u.pages.RemovePage("input")
			done(field.GetText(), true)
		case tcell.KeyEscape:
			u.pages.RemovePage("input")
			done("", false)
		}
	})
	u.pages.AddPage("input", center(90, 3, field), true, true)
	u.app.SetFocus(field)
}

func (u *UI) setStatus(msg string) {
	if msg == "" {
		u.controls.SetText(defaultControls)
		return
	}
	u.controls.SetText(msg + "    " + defaultControls)
}

func center(w, h int, p tview.Primitive) tview.Primitive {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(tview.NewBox(), 0, 1, false).
		AddItem(tview.NewFlex().
			AddItem(tview.NewBox(), 0, 1, false).
			AddItem(p, w, 1, true).
			AddItem(tview.NewBox(), 0, 1, false), h, 1, true).
		AddItem(tview.NewBox(), 0, 1, false)
}
