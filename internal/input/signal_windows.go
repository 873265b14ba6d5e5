//go:build windows

package input

import "os"

// notifyWinch is a no-op on Windows: there is no SIGWINCH. Resize there
// would be detected by the host polling term.GetSize itself.
func notifyWinch(ch chan os.Signal) {}
