package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	crisp "github.com/pepas-everly/crisp"
)

const (
	appName     = "crisp"
	historyFile = ".crisp_history"
	promptMain  = "==> "
)

var banner = fmt.Sprintf("crisp %s REPL\nEach line is a JSON-encoded expression. Ctrl+C cancels input, Ctrl+D exits.", crisp.Version)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(crisp.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`crisp %s — evaluate JSON-encoded Lisp expressions

Usage:
  %s run [file.json]    Evaluate a program (stdin when no file is given).
  %s repl               Start the interactive REPL.
  %s version            Print the version.

`, crisp.Version, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run [file.json]\n", appName)
		return 2
	}

	var src []byte
	var err error
	if len(args) == 1 {
		src, err = os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
			return 1
		}
	} else {
		src, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read stdin: %v\n", appName, err)
			return 1
		}
	}

	if err := crisp.RunProgram(src, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	env := crisp.GlobalEnv()
	for {
		line, err := ln.Prompt(promptMain)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue // Ctrl+C: drop the line, keep the session
			}
			if err == io.EOF {
				fmt.Println()
				return 0
			}
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		nodes, err := decodeLine(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		// Interactive lines report and continue; the abort-the-batch policy
		// belongs to `run`.
		for _, n := range nodes {
			v, err := crisp.Eval(n, env)
			if err != nil {
				fmt.Fprintln(os.Stderr, red(err.Error()))
				break
			}
			fmt.Println(crisp.FormatValue(v))
		}
	}
}

// decodeLine accepts either a single node object or a whole node array.
func decodeLine(line string) ([]crisp.Node, error) {
	if strings.HasPrefix(strings.TrimSpace(line), "{") {
		n, err := crisp.DecodeNode([]byte(line))
		if err != nil {
			return nil, err
		}
		return []crisp.Node{n}, nil
	}
	return crisp.DecodeProgram([]byte(line))
}
