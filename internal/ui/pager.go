package ui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// ToPager writes content to stdout, through the user's pager when the
// content overflows a real terminal. STRATA_NO_PAGER (or the noPager flag)
// and non-TTY output both print directly.
func ToPager(content string, noPager bool) error {
	if noPager || os.Getenv("STRATA_NO_PAGER") != "" || !IsTerminal() {
		fmt.Print(content)
		return nil
	}
	if height := terminalHeight(); height > 0 && lineCount(content) < height {
		fmt.Print(content)
		return nil
	}

	argv := strings.Fields(pagerCommand())
	if len(argv) == 0 {
		fmt.Print(content)
		return nil
	}

	cmd := exec.Command(argv[0], argv[1:]...) // #nosec G204 - the pager is user-chosen
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	if os.Getenv("LESS") == "" {
		// -R passes ANSI colors through, -F quits when one screen
		// suffices, -X keeps the output on screen after exit.
		cmd.Env = append(cmd.Env, "LESS=-RFX")
	}
	return cmd.Run()
}

// pagerCommand picks the pager: STRATA_PAGER, then PAGER, then less. The
// value may carry arguments ("less -R").
func pagerCommand() string {
	for _, env := range []string{"STRATA_PAGER", "PAGER"} {
		if p := os.Getenv(env); p != "" {
			return p
		}
	}
	return "less"
}

func terminalHeight() int {
	if _, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return h
	}
	return 0
}

func lineCount(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}
