package catgcd

import (
	"errors"
	"io"
)

// A SequenceGate indicates to a Sequence what to do when a task finishes, and has a chance to modify the final error
type SequenceGate func(s *SequenceTask, ix int, err error, killed bool) (continue_ bool, finalErr error)

// A SequenceTask executes tasks in order, one at a time,
// stopping when either there are no more or a gate function indicates to stop early.
// Each task runs to completion before the next one starts.
// Kill() will stop a SequenceTask regardless of the output of the gate function, but the gate function can still mutate the final error.
type SequenceTask struct {
	Tasks []Task
	Gate  SequenceGate
	// TaskErrors records the errors returned by the corresponding Tasks since a SequenceTask does not necessarily stop when a task fails
	TaskErrors     []error
	BuilderError   error
	kill           chan struct{}
	result         chan error
	deferredBefore []func() error
	deferredAfter  []func() error
}

var (
	_ = Streamable(&SequenceTask{})
)

// Sequence creates a new SequenceTask from a gate function and a set of tasks
func Sequence(gate SequenceGate, tasks ...Task) *SequenceTask {
	return &SequenceTask{Gate: gate, Tasks: tasks, TaskErrors: make([]error, 0, len(tasks))}
}

// Run implements Task
func (s *SequenceTask) Run() (err error) {
	if s.BuilderError != nil {
		return s.BuilderError
	}

	var continue_ bool
	defer doDeferredAfter(&err, s.deferredAfter)
	err = doDeferredBefore(s.deferredBefore)
	if err != nil {
		return err
	}
	for ix, task := range s.Tasks {
		err = task.Run()
		if err != nil {
			s.TaskErrors = append(s.TaskErrors, err)
		}
		continue_, err = s.Gate(s, ix, err, false)
		if !continue_ {
			break
		}
	}
	return err
}

// Start implements Task
func (s *SequenceTask) Start() error {
	if s.BuilderError != nil {
		return s.BuilderError
	}

	err := doDeferredBefore(s.deferredBefore)
	if err != nil {
		return err
	}
	s.kill = make(chan struct{}, 1)
	s.result = make(chan error)
	go func() {
		var err error
		var continue_ bool
	loop:
		for ix, task := range s.Tasks {
			select {
			case _ = <-s.kill:
				err = ErrKilled
				_, err = s.Gate(s, ix, err, true)
				break loop
			default:
				err = task.Run()
				if err != nil {
					s.TaskErrors = append(s.TaskErrors, err)
				}
				continue_, err = s.Gate(s, ix, err, false)
				if !continue_ {
					break loop
				}
			}
		}
		s.result <- err
	}()
	return nil
}

// Kill implements Task. Every task in the sequence is killed, whether or not it has started,
// so the one currently running stops and the remaining ones refuse to do any work.
func (s *SequenceTask) Kill() error {
	if s.kill == nil {
		return ErrNotStarted
	}
	select {
	case s.kill <- struct{}{}:
	default:
	}
	errs := make([]error, 0, len(s.Tasks))
	for _, task := range s.Tasks {
		err := task.Kill()
		if err != nil && !errors.Is(err, ErrNotStarted) {
			errs = append(errs, err)
		}
	}
	if len(errs) != 0 {
		return &MultiTaskError{Errors: errs}
	}
	return nil
}

// Wait implements Task
func (s *SequenceTask) Wait() (err error) {
	defer doDeferredAfter(&err, s.deferredAfter)
	err = <-s.result
	return
}

// SetStdin implements Streamable by setting stdin for every task in the sequence that has streams
func (s *SequenceTask) SetStdin(r io.Reader) error {
	for _, task := range s.Tasks {
		streamable, ok := task.(Streamable)
		if !ok {
			continue
		}
		err := streamable.SetStdin(r)
		if err != nil {
			return err
		}
	}
	return nil
}

// SetStdout implements Streamable by setting stdout for every task in the sequence that has streams
func (s *SequenceTask) SetStdout(w io.Writer) error {
	for _, task := range s.Tasks {
		streamable, ok := task.(Streamable)
		if !ok {
			continue
		}
		err := streamable.SetStdout(w)
		if err != nil {
			return err
		}
	}
	return nil
}

// SetStderr implements Streamable by setting stderr for every task in the sequence that has streams
func (s *SequenceTask) SetStderr(w io.Writer) error {
	for _, task := range s.Tasks {
		streamable, ok := task.(Streamable)
		if !ok {
			continue
		}
		err := streamable.SetStderr(w)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeferBefore implements Streamable
func (s *SequenceTask) DeferBefore(f func() error) {
	s.deferredBefore = append(s.deferredBefore, f)
}

// DeferAfter implements Streamable
func (s *SequenceTask) DeferAfter(f func() error) {
	s.deferredAfter = append(s.deferredAfter, f)
}

// WithStreams applies a set of StreamSetters to this sequence
func (s *SequenceTask) WithStreams(fs ...StreamSetter) *SequenceTask {
	if s.BuilderError != nil {
		return s
	}
	for _, f := range fs {
		err := f(s)
		if err != nil {
			s.BuilderError = err
			return s
		}
	}
	return s
}

// And runs tasks in order, stopping at the first failure, like the shell && operator
func And(tasks ...Task) *SequenceTask {
	return Sequence(
		func(s *SequenceTask, ix int, err error, killed bool) (continue_ bool, finalError error) {
			if ix == len(s.Tasks)-1 {
				errs := make([]error, 0, len(s.TaskErrors))
				for _, taskErr := range s.TaskErrors {
					errs = append(errs, taskErr)
				}
				if len(errs) != 0 {
					return true, &MultiTaskError{Errors: errs}
				}
			}
			if err != nil {
				return false, err
			}
			return true, err
		},
		tasks...,
	)
}

// Then runs every task in order regardless of failures, like the shell ; operator, recording any errors in TaskErrors
func Then(tasks ...Task) *SequenceTask {
	return Sequence(
		func(s *SequenceTask, ix int, err error, killed bool) (continue_ bool, finalError error) {
			return true, err
		},
		tasks...,
	)
}
