//go:build !windows

package input

import (
	"os"
	"os/signal"
	"syscall"
)

// notifyWinch subscribes ch to SIGWINCH, treating the OS's coalescing of
// repeated signals as "resize happened at least once since last check" —
// every delivery just means "resize now, query size".
func notifyWinch(ch chan os.Signal) {
	signal.Notify(ch, syscall.SIGWINCH)
}
