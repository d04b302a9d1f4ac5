package main

import (
	"fmt"
	"os"
)

func main() {
	// If a CLI subcommand is provided, handle it and exit.
	if len(os.Args) > 1 {
		if handled, code := runCLI(os.Args[1:]); handled {
			os.Exit(code)
			return
		}
	}
	os.Exit(runTUI(os.Args[1:]))
}

func runTUI(args []string) int {
	env, err := newEnv(args, "tui")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer env.close()

	code, err := newUI(env).Run()
	if err != nil {
		env.log.Errorw("tui", "ERROR", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return code
}
