//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Command minischeme is a REPL and batch runner for the minischeme
// evaluator.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nfiedler-student/minischeme/minischeme"
)

// atExitMutex is used to modify the list of exit functions.
var atExitMutex sync.Mutex

// atExitFuncs are functions called when the program is exiting.
var atExitFuncs []func()

// log is the package-wide structured logger, directed to a file in the
// user's home directory by setupLogging.
var log = logrus.New()

// RunAtExit registers a function to be invoked when the Exit() function is
// called. There is no guarantee that these functions will be invoked if the
// run time is brought down abruptly (i.e. os.Exit() is called). The
// functions will be invoked in the order in which they are registered.
func RunAtExit(fn func()) {
	// Go currently lacks an "atexit" callback, so we have this
	// hack to provide us with the bare minimum, for now.
	atExitMutex.Lock()
	defer atExitMutex.Unlock()
	atExitFuncs = append(atExitFuncs, fn)
}

// Exit invokes the functions registered to be called prior to exiting, then
// invokes os.Exit() to exit from the program. This function should be called
// instead of os.Exit() in all but the most extreme cases.
func Exit() {
	atExitMutex.Lock()
	for _, fn := range atExitFuncs {
		fn()
	}
	os.Exit(0)
}

func main() {
	// while not a guarantee, at least try to exit cleanly
	defer Exit()
	setupLogging()
	logSysInfo()

	root := &cobra.Command{
		Use:   "minischeme",
		Short: "A minimal Scheme-dialect evaluator",
		RunE: func(cmd *cobra.Command, args []string) error {
			repl()
			return nil
		},
	}
	root.AddCommand(&cobra.Command{
		Use:   "run [expression]",
		Short: "Evaluate a single expression and print its result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var expr string
			if len(args) == 1 {
				expr = args[0]
			} else {
				input, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				expr = strings.TrimSpace(string(input))
			}
			result, err := minischeme.Run(expr)
			if err != nil {
				return err
			}
			fmt.Println(result)
			return nil
		},
	})
	if err := root.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// repl implements the read-eval-print-loop in which expressions are read
// from standard input, evaluated by minischeme.Run, and the results are
// displayed to standard output.
func repl() {
	rl, err := readline.New("minischeme> ")
	if err != nil {
		log.WithError(err).Fatal("failed to start readline")
	}
	defer rl.Close()

	fmt.Println(`Welcome to minischeme. Try an expression, e.g. (+ 1 2 3).`)
	fmt.Println(`Use :exit or Ctrl-D to exit.`)

	var sessionWarnings *multierror.Error
	for {
		line, err := rl.Readline()
		if err != nil {
			// io.EOF (Ctrl-D) or readline.ErrInterrupt (Ctrl-C)
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":exit" {
			break
		}
		if line == ":help" {
			fmt.Println("Use :exit to leave the REPL")
			continue
		}
		result, err := minischeme.Run(line)
		if err != nil {
			log.WithField("input", line).WithError(err).Warn("evaluation failed")
			sessionWarnings = multierror.Append(sessionWarnings, fmt.Errorf("%q: %w", line, err))
			fmt.Println(err)
			continue
		}
		fmt.Println(result)
	}
	fmt.Println("Goodbye")
	if sessionWarnings.ErrorOrNil() != nil {
		log.WithField("count", len(sessionWarnings.Errors)).Info("session ended with evaluation warnings")
	}
}

// setupLogging directs the logger's output to a file in the user's home
// directory, so all log messages end up there instead of the terminal the
// REPL is using. If anything goes wrong, this function calls log.Fatal.
func setupLogging() {
	usr, err := user.Current()
	if err != nil {
		log.Fatalln(err)
	}
	logname := os.Getenv("MINISCHEME_LOG")
	if logname == "" {
		msdir := filepath.Join(usr.HomeDir, ".minischeme")
		if _, err := os.Stat(msdir); err != nil {
			if os.IsNotExist(err) {
				os.Mkdir(msdir, 0755)
			} else {
				log.Fatalln(err)
			}
		}
		logname = filepath.Join(msdir, "messages.log")
	}
	logfile, err := os.OpenFile(logname, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		log.Fatalln(err)
	}

	out := bufio.NewWriter(logfile)
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	closer := func() {
		out.Flush()
		logfile.Sync()
		logfile.Close()
	}
	RunAtExit(closer)
	// from this point on, everything goes to messages.log
}

// logSysInfo writes a set of information about the system to the log file,
// useful for debugging in the event of an error.
func logSysInfo() {
	header := "-------------------------------------------------------------------------------"
	now := time.Now()
	log.Info(header)
	log.Infof("Log Session: %s", now.Format(time.ANSIC))
	log.Infof("Go Version = %s", runtime.Version())
	usr, err := user.Current()
	if err != nil {
		log.Error(err)
		Exit()
	}
	log.Infof("Home Directory = %s", usr.HomeDir)
	pwd, err := os.Getwd()
	if err != nil {
		log.Error(err)
		Exit()
	}
	log.Infof("Current Directory = %s", pwd)
	log.Infof("GOROOT = %s", runtime.GOROOT())
	keys := []string{"PATH", "LANG", "LC_ALL", "SHELL", "TERM"}
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			log.Infof("%s = %s", key, val)
		}
	}
	log.Info(header)
}
