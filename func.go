package catgcd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/go-logr/logr"
)

// A Func is a function which can be used to implement a go-native Task/Streamable.
// If the function cannot start before calling any blocking (or other long-running) functions, it should return err.
// If any blocking calls would be made, instead you should still return a nil err, and send any potential errors from those blocking calls to the provided "done" channel.
// Functions are expected to close the done channel before returning, e.g. with a defer statement.
// Functions must not close stdout or stderr, any cleanup of the streams is handled by the StreamSetters which provided them.
type Func func(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, done chan error) error

// FuncTask is a wrapper for the state of a Func which implements Task and Streamable
type FuncTask struct {
	Func   Func
	Name   string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Log    logr.Logger
	ctx    context.Context
	kill   context.CancelFunc
	done   chan error

	deferredBefore []func() error
	deferredAfter  []func() error
}

var (
	_ = Streamable(&FuncTask{})
)

// FromFunc produces a Task/Streamable from a compliant function
func FromFunc(parentCtx context.Context, f Func) *FuncTask {
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		// This shouldn't ever happen, right?
		panic(err)
	}
	task := &FuncTask{
		Func:   f,
		Stdin:  devNull,
		Stdout: devNull,
		Stderr: devNull,
	}
	task.ctx, task.kill = context.WithCancel(parentCtx)
	return task
}

// WithName sets a name for this task to use when logging
func (f *FuncTask) WithName(name string) *FuncTask {
	f.Name = name
	return f
}

// WithLog sets a log to use for this task
func (f *FuncTask) WithLog(log logr.Logger) *FuncTask {
	f.Log = log
	return f
}

func (f *FuncTask) log() logr.Logger {
	if f.Log.IsZero() {
		return GlobalLog
	}
	return f.Log
}

// Start implements Task
func (f *FuncTask) Start() error {
	if f.done != nil {
		return ErrAlreadyStarted
	}
	err := doDeferredBefore(f.deferredBefore)
	if err != nil {
		return err
	}
	f.log().V(TaskLogLevel).Info("starting task", "task", f.Name)
	f.done = make(chan error)
	err = f.Func(f.ctx, f.Stdin, f.Stdout, f.Stderr, f.done)
	if err != nil {
		return err
	}
	return nil
}

// Wait implements Task
func (f *FuncTask) Wait() (err error) {
	defer doDeferredAfter(&err, f.deferredAfter)
	err = <-f.done
	if errors.Is(err, context.Canceled) {
		err = ErrKilled
	}
	f.log().V(TaskLogLevel).Info("task finished", "task", f.Name)
	return
}

// Kill implements Task. The task's context is cancelled even if it has not started yet,
// so a Func started afterwards sees an already-cancelled context.
func (f *FuncTask) Kill() error {
	f.log().V(TaskLogLevel).Info("killing task", "task", f.Name)
	f.kill()
	if f.done == nil {
		return ErrNotStarted
	}
	return nil
}

// Run implements Task
func (f *FuncTask) Run() error {
	if f.done != nil {
		return ErrAlreadyStarted
	}
	var err error
	err = f.Start()
	if err != nil {
		return err
	}
	err = f.Wait()
	if err != nil {
		return err
	}
	return nil
}

// DeferBefore implements Streamable
func (f *FuncTask) DeferBefore(fn func() error) {
	f.deferredBefore = append(f.deferredBefore, fn)
}

// DeferAfter implements Streamable
func (f *FuncTask) DeferAfter(fn func() error) {
	f.deferredAfter = append(f.deferredAfter, fn)
}

// SetStdin implements Streamable
func (f *FuncTask) SetStdin(stdin io.Reader) error {
	f.Stdin = stdin
	return nil
}

// SetStdout implements Streamable
func (f *FuncTask) SetStdout(stdout io.Writer) error {
	f.Stdout = stdout
	return nil
}

// SetStderr implements Streamable
func (f *FuncTask) SetStderr(stderr io.Writer) error {
	f.Stderr = stderr
	return nil
}

// WithStreams applies a set of StreamSetters to this task
func (f *FuncTask) WithStreams(fs ...StreamSetter) *FuncTask {
	for _, fn := range fs {
		fn(f)
	}
	return f
}
