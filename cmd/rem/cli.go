package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/rdo34/rem/internal/app"
	"github.com/rdo34/rem/internal/config"
	"github.com/rdo34/rem/internal/logger"
	"github.com/rdo34/rem/internal/model"
	"github.com/rdo34/rem/internal/store"
	"github.com/rdo34/rem/internal/ui"
)

// Replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// runCLI parses CLI subcommands. Returns (handled, exitCode).
func runCLI(args []string) (bool, int) {
	if len(args) == 0 {
		return false, 0
	}
	switch args[0] {
	case "help", "-h", "--help":
		printHelp()
		return true, 0
	case "get":
		return true, cliGet(args[1:])
	case "put":
		return true, cliPut(args[1:])
	case "list":
		return true, cliList(args[1:])
	case "rm":
		return true, cliRemove(args[1:])
	default:
		// Not a CLI subcommand; fall back to TUI
		return false, 0
	}
}

type commonFlags struct {
	file    *string
	config  *string
	dataDir *string
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		file:    fs.String("file", "", "reminder file (.rem); defaults to config 'file' or ./"+store.DefaultFileName),
		config:  fs.String("config", "", "config file (default <data dir>/config.yaml)"),
		dataDir: fs.String("data-dir", "", "override data directory"),
	}
}

// env is everything a command needs: config, logger and a session.
type env struct {
	cfg     *config.Config
	log     *zap.SugaredLogger
	session *app.Session
	dataDir string
}

func setupEnv(c commonFlags) (*env, error) {
	dataDir := *c.dataDir
	if dataDir == "" {
		dir, err := store.ResolveDataDir()
		if err != nil {
			// Fallback to a local directory when OS dirs are unavailable.
			dir = ".rem-data"
		}
		dataDir = dir
	}
	cfgPath := *c.config
	if cfgPath == "" {
		cfgPath = config.DefaultPath(dataDir)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logPath := cfg.Log.File
	if logPath == "" {
		logPath = filepath.Join(dataDir, "rem.log")
	}
	log, err := logger.New("rem", strings.ToLower(cfg.Log.Level), logPath)
	if err != nil {
		return nil, err
	}
	session := app.New(store.New(), *cfg, log)
	session.PrefsDir = dataDir
	return &env{cfg: cfg, log: log, session: session, dataDir: dataDir}, nil
}

func (e *env) close() { _ = e.log.Sync() }

// filePath resolves --file, then config 'file', then the default name in the
// working directory.
func (e *env) filePath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if e.cfg.File != "" {
		return e.cfg.File, nil
	}
	return e.session.Create("")
}

// newEnv serves the TUI, which only takes the common flags.
func newEnv(args []string, name string) (*env, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	c := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unknown command %q (see 'rem help')", fs.Arg(0))
	}
	e, err := setupEnv(c)
	if err != nil {
		return nil, err
	}
	if *c.file != "" {
		e.session.Config.File = *c.file
	}
	return e, nil
}

func newUI(e *env) *ui.UI {
	return ui.New(e.session)
}

// parseCommand parses a subcommand's flags and sets up its environment.
// A non-zero code means the command should exit with it.
func parseCommand(fs *flag.FlagSet, args []string) (*env, string, int) {
	fs.SetOutput(stderr)
	c := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, "", 2
	}
	e, err := setupEnv(c)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return nil, "", 1
	}
	path, err := e.filePath(*c.file)
	if err != nil {
		e.close()
		fmt.Fprintln(stderr, err)
		return nil, "", 1
	}
	return e, path, 0
}

// selectDate parses s and makes it the session's selected date. It reports
// problems on stderr and returns false on a usage error.
func (e *env) selectDate(s string) bool {
	if strings.TrimSpace(s) == "" {
		fmt.Fprintln(stderr, "--date is required")
		return false
	}
	k, err := model.ParseDateKey(s)
	if err == nil {
		err = e.session.Select(k.Day(), k.Month(), k.Year())
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return false
	}
	return true
}

func cliGet(args []string) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	dateStr := fs.String("date", "", "YYYY-MM-DD (required)")
	e, path, code := parseCommand(fs, args)
	if code != 0 {
		return code
	}
	defer e.close()
	if !e.selectDate(*dateStr) {
		return 2
	}
	k := e.session.Selected()
	if err := e.session.Open(path); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	text, found := e.session.Get()
	if !found {
		fmt.Fprintf(stderr, "no reminder for %s\n", k)
		return 1
	}
	fmt.Fprint(stdout, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(stdout)
	}
	return 0
}

func cliPut(args []string) int {
	fs := flag.NewFlagSet("put", flag.ContinueOnError)
	dateStr := fs.String("date", "", "YYYY-MM-DD (required)")
	text := fs.String("text", "", "reminder text, or - to read stdin (required)")
	e, path, code := parseCommand(fs, args)
	if code != 0 {
		return code
	}
	defer e.close()
	if !e.selectDate(*dateStr) {
		return 2
	}
	body := *text
	if body == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		body = string(data)
	}
	if strings.TrimSpace(body) == "" {
		fmt.Fprintln(stderr, "missing --text")
		return 2
	}
	if err := e.session.OpenOrEmpty(path); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	e.session.Put(body)
	if err := e.session.Save(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func cliList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "output JSON")
	e, path, code := parseCommand(fs, args)
	if code != 0 {
		return code
	}
	defer e.close()
	if err := e.session.Open(path); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	entries := e.session.Store.Entries()
	if *jsonOut {
		type J struct {
			Date string `json:"date"`
			Text string `json:"text"`
		}
		out := make([]J, 0, len(entries))
		for _, en := range entries {
			out = append(out, J{Date: en.Key.String(), Text: en.Text})
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}
	for _, en := range entries {
		if _, err := fmt.Fprintf(stdout, "%s  %s\n", en.Key, firstLine(en.Text)); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	return 0
}

func cliRemove(args []string) int {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	dateStr := fs.String("date", "", "YYYY-MM-DD (required)")
	e, path, code := parseCommand(fs, args)
	if code != 0 {
		return code
	}
	defer e.close()
	if !e.selectDate(*dateStr) {
		return 2
	}
	k := e.session.Selected()
	if err := e.session.Open(path); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(stderr, "no reminder for %s\n", k)
			return 1
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	if !e.session.Delete() {
		fmt.Fprintf(stderr, "no reminder for %s\n", k)
		return 1
	}
	if err := e.session.Save(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// firstLine shortens multi-line reminders for list output.
func firstLine(s string) string {
	line, rest, found := strings.Cut(strings.TrimRight(s, "\n"), "\n")
	if found && rest != "" {
		return line + " …"
	}
	return line
}

func printHelp() {
	fmt.Fprintln(stdout, "rem: reminders by date")
	fmt.Fprintln(stdout, "\nUsage:")
	fmt.Fprintln(stdout, "  rem                                  open the interactive reminder book")
	fmt.Fprintln(stdout, "  rem get  --date YYYY-MM-DD [--file F]")
	fmt.Fprintln(stdout, "  rem put  --date YYYY-MM-DD --text \"...\" | --text - [--file F]")
	fmt.Fprintln(stdout, "  rem list [--json] [--file F]")
	fmt.Fprintln(stdout, "  rem rm   --date YYYY-MM-DD [--file F]")
	fmt.Fprintln(stdout, "\nCommon flags:")
	fmt.Fprintln(stdout, "  --file path.rem   --config config.yaml   --data-dir path")
	fmt.Fprintln(stdout, "\nEnvironment:")
	fmt.Fprintln(stdout, "  REM_DATA_DIR overrides the data directory; REM_* overrides config keys (REM_YEARS_FIRST=2018).")
}
