package catgcd

import (
	"errors"
	"io"
	"strings"
)

// A Task can be ran, started, killed, and waited for like a process
type Task interface {
	// Start runs the task in the background and returns immediately. Start should not return an error if the underlying work failed, but only if starting it failed.
	Start() error
	// Wait waits for a task to finish after it has been Start()'ed. If the Task is Kill()'ed, then Wait must return an error indicating such.
	Wait() error
	// Kill forcefully terminates the task. Kill should not be used with Run(), as this behavior is not specified, and should only be used with Start(). A Kill'ed Task should still be Wait()'ed.
	Kill() error
	// Run starts the task in the foreground and waits for it to finish
	Run() error
}

// A Streamable is a Task with a single set of standard streams, meaning it is something whose input and output can be redirected
type Streamable interface {
	Task
	SetStdin(stdin io.Reader) error
	SetStdout(stdout io.Writer) error
	SetStderr(stderr io.Writer) error
	// DeferBefore adds a function to be called prior to actually starting the task. If it fails, then the task will return the error from Start() or Run(). Functions are called in the order they are added, and functions after the first failed function are not called.
	DeferBefore(f func() error)
	// DeferAfter adds a function to be called once the task finishes. If any fail, the task will return the errors from Run() or Wait(). Functions are called in the order they are added, but all functions will be called, so if adding a DeferBefore+DeferAfter pair, the DeferAfter function must check if the DeferBefore function was called.
	DeferAfter(f func() error)
}

var (
	// ErrKilled is returned from Task.Wait() if it is killed when no actual work is executing, otherwise, it will return whatever underlying error results from that work being killed
	ErrKilled = errors.New("Killed")

	// ErrNotStarted is returned from Task.Wait() and Task.Kill() if Start() was never called
	ErrNotStarted = errors.New("Not Started")

	// ErrAlreadyStarted is returned from Task.Start() or Task.Run() if either were already called
	ErrAlreadyStarted = errors.New("Already Started")
)

// A MultiTaskError indicates one or more tasks, either in serial or parallel, failed
type MultiTaskError struct {
	// Errors are the errors that occurred. Order is not guaranteed.
	Errors []error
}

// Error implements error
func (e *MultiTaskError) Error() string {
	msg := strings.Builder{}
	msg.WriteString("One or more tasks failed: (")
	for _, err := range e.Errors {
		msg.WriteString(err.Error())
		msg.WriteString(", ")
	}
	msg.WriteString(")")
	return msg.String()
}

func doDeferredBefore(deferredBefore []func() error) error {
	for _, f := range deferredBefore {
		err := f()
		if err != nil {
			return err
		}
	}
	return nil
}

func doDeferredAfter(retErr *error, deferredAfter []func() error) {
	origErr := *retErr
	errs := make([]error, 0, len(deferredAfter))
	if origErr != nil {
		errs = append(errs, origErr)
	}
	for _, f := range deferredAfter {
		err := f()
		if err != nil {
			errs = append(errs, err)
		}
	}
	if (origErr == nil && len(errs) > 0) || (origErr != nil && len(errs) > 1) {
		*retErr = &MultiTaskError{Errors: errs}
	}
}
