// Package panicerr turns an abnormal goroutine exit -- a panic or a
// runtime.Goexit -- into an ordinary returned error, so a coding defect deep
// in an interpreter's dispatch loop (e.g. a slice index panic on a malformed
// program) surfaces to the host as a regular error instead of crashing the
// process.
package panicerr

// Recover runs f in a new goroutine, turning a panic or runtime.Goexit
// during f into a returned error instead of letting either escape.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer recoverExitError(name, errch)
		defer recoverPanicError(name, errch)
		errch <- f()
	}()
	return <-errch
}
