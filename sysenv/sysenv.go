// Package sysenv probes the process environment the builder negotiates in.
// The Env interface lets tests replace every probe.
package sysenv

import (
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/shirou/gopsutil/v4/process"
)

// Env is the set of environment probes negotiation depends on
type Env interface {
	Getenv(key string) string

	// GOOS is the target operating system
	GOOS() string

	// ParentCommand is the parent process command line, or "" when unknown
	ParentCommand() string

	// CygwinTerminal reports stdin as a Cygwin or MSYS pty
	CygwinTerminal() bool
}

// System probes the running process
type System struct{}

func (System) Getenv(key string) string { return os.Getenv(key) }
func (System) GOOS() string             { return runtime.GOOS }

func (System) ParentCommand() string {
	p, err := process.NewProcess(int32(os.Getppid()))
	if err != nil {
		return ""
	}
	cmd, err := p.Cmdline()
	if err != nil || cmd == "" {
		// some platforms deny the command line but allow the name
		name, _ := p.Name()
		return name
	}
	return cmd
}

func (System) CygwinTerminal() bool {
	return isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Map is a fixed environment
type Map struct {
	Vars   map[string]string
	OS     string
	Parent string
	Cygwin bool
}

func (m Map) Getenv(key string) string { return m.Vars[key] }

func (m Map) GOOS() string {
	if m.OS == "" {
		return runtime.GOOS
	}
	return m.OS
}

func (m Map) ParentCommand() string { return m.Parent }
func (m Map) CygwinTerminal() bool  { return m.Cygwin }

// IsPosixEmulation reports a Cygwin, MSYS or MinGW layer on Windows: either
// stdin is one of their ptys, or the shell left its markers in the
// environment
func IsPosixEmulation(e Env) bool {
	if e.GOOS() != "windows" {
		return false
	}
	if e.CygwinTerminal() {
		return true
	}
	if e.Getenv("MSYSTEM") != "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Getenv("OSTYPE")), "cygwin") {
		return true
	}
	return strings.HasPrefix(e.Getenv("TERM"), "xterm") && e.Getenv("PWD") != "" && strings.HasPrefix(e.Getenv("PWD"), "/")
}
