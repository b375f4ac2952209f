package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/aryanA101a/ptsim-go/vm"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const shellHelp = `commands:
  pfm                  print the page free map
  ppt  proc            print a process page table
  np   proc pages      new process with pages data pages
  ap   proc pages      add data pages to a process
  kp   proc            kill a process
  sb   proc vaddr val  store a byte
  lb   proc vaddr      load a byte
  free                 count free pages
  help                 show this text
  quit                 leave the shell
`

type shell struct {
	originalTerminalConfig unix.Termios
	stdin                  *os.File
	terminal               *term.Terminal
	log                    *slog.Logger
}

func newShell(stdin *os.File, stdout io.Writer, logger *slog.Logger) *shell {
	rw := struct {
		io.Reader
		io.Writer
	}{stdin, stdout}
	return &shell{
		stdin:    stdin,
		terminal: term.NewTerminal(rw, "ptsim> "),
		log:      logger,
	}
}

// run puts the terminal in raw mode for the length of the session and
// restores it on return or on an interrupt. Commands in preload run
// before the first prompt.
func (sh *shell) run(machine *vm.VM, preload []string) error {
	if err := sh.enableRawMode(); err != nil {
		return err
	}
	defer sh.disableRawMode()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-interrupts:
			sh.disableRawMode()
			os.Exit(130)
		case <-done:
		}
	}()

	return serve(sh.terminal, machine, preload)
}

// serve reads command lines from t until quit or end of input. The
// machine's output should already be pointed at t.
func serve(t *term.Terminal, machine *vm.VM, preload []string) error {
	if len(preload) > 0 {
		machine.Run(preload)
	}

	for {
		line, err := t.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "quit", "exit":
			return nil
		case "help":
			if _, err := io.WriteString(t, shellHelp); err != nil {
				return err
			}
		case "free":
			if _, err := io.WriteString(t, freeLine(machine)); err != nil {
				return err
			}
		default:
			machine.Run(fields)
		}
	}
}

func freeLine(machine *vm.VM) string {
	return fmt.Sprintf("%d of %d pages free\n", machine.FreePages(), machine.Config().PageCount)
}

// this puts the terminal in non-canonical mode so the line editor sees
// every key
func (sh *shell) enableRawMode() error {
	if err := termios.Tcgetattr(sh.stdin.Fd(), &sh.originalTerminalConfig); err != nil {
		return err
	}
	newTermios := sh.originalTerminalConfig
	newTermios.Lflag &^= unix.ICANON | unix.ECHO
	newTermios.Iflag &^= unix.ICRNL
	return termios.Tcsetattr(sh.stdin.Fd(), termios.TCSANOW, &newTermios)
}

func (sh *shell) disableRawMode() {
	if err := termios.Tcsetattr(sh.stdin.Fd(), termios.TCSANOW, &sh.originalTerminalConfig); err != nil {
		sh.log.Error("restoring terminal failed", "error", err)
	}
}
