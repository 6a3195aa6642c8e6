//go:build !unix

package ansiterm

// watchResize is a no-op without SIGWINCH; the loop still picks up a new
// size on the next redraw request.
func watchResize(chan<- struct{}) (stop func()) {
	return func() {}
}
