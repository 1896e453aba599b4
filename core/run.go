package core

import (
	"fmt"
	"os"
	"runtime/debug"
)

// CrashHook is invoked before the stack trace is printed
// The driver installs a hook that restores the terminal to a sane state
var CrashHook func()

// HandleCrash is the unified panic handler
// Restores the terminal via CrashHook and prints the stack trace to stderr
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if CrashHook != nil {
		CrashHook()
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	fmt.Fprintf(os.Stderr, "\r\nCRASH DETECTED: %v\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()
	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
