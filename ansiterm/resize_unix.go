//go:build unix

package ansiterm

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// watchResize sends on ch after each SIGWINCH, dropping the signal when
// one is already pending.
func watchResize(ch chan<- struct{}) (stop func()) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, unix.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sig:
				select {
				case ch <- struct{}{}:
				default:
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sig)
		close(done)
	}
}
