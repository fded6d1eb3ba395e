package catgcd

import (
	"io"
	"os"
)

// A PipeSource is a function which can produce input for a task
type PipeSource func(w io.Writer) error

// A PipeSink is a function which can process the output (including standard error) of a task
type PipeSink func(r io.Reader) error

// A StreamSetter redirects one or more of a Streamable's standard streams
type StreamSetter func(s Streamable) error

// SaveString returns a PipeSink which records the output in a string
func SaveString(str *string) PipeSink {
	return func(r io.Reader) error {
		out, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		*str = string(out)
		return nil
	}
}

// AppendString returns a PipeSink which appends the output to a string
func AppendString(str *string) PipeSink {
	return func(r io.Reader) error {
		out, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		*str += string(out)
		return nil
	}
}

// SaveBytes returns a PipeSink which records the output in a byte slice
func SaveBytes(bytes *[]byte) PipeSink {
	return func(r io.Reader) error {
		out, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		*bytes = out
		return nil
	}
}

// AppendBytes returns a PipeSink which appends the output to a byte slice
func AppendBytes(bytes *[]byte) PipeSink {
	return func(r io.Reader) error {
		out, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		*bytes = append(*bytes, out...)
		return nil
	}
}

// ForwardIn sets a task's stdin to the current process's stdin
func ForwardIn(s Streamable) error {
	return s.SetStdin(os.Stdin)
}

// ForwardOut sets a task's stdout to the current process's stdout
func ForwardOut(s Streamable) error {
	return s.SetStdout(os.Stdout)
}

// ForwardErr sets a task's stderr to the current process's stderr
func ForwardErr(s Streamable) error {
	return s.SetStderr(os.Stderr)
}

// ForwardInOut does both ForwardIn and ForwardOut
func ForwardInOut(s Streamable) error {
	err := ForwardIn(s)
	if err != nil {
		return err
	}
	return ForwardOut(s)
}

// ForwardInErr does both ForwardIn and ForwardErr
func ForwardInErr(s Streamable) error {
	err := ForwardIn(s)
	if err != nil {
		return err
	}
	return ForwardErr(s)
}

// ForwardOutErr does both ForwardOut and ForwardErr
func ForwardOutErr(s Streamable) error {
	err := ForwardOut(s)
	if err != nil {
		return err
	}
	return ForwardErr(s)
}

// ForwardAll does ForwardIn, ForwardOut, and ForwardErr
func ForwardAll(s Streamable) error {
	err := ForwardIn(s)
	if err != nil {
		return err
	}
	return ForwardOutErr(s)
}

var (
	_ = StreamSetter(ForwardIn)
	_ = StreamSetter(ForwardOut)
	_ = StreamSetter(ForwardErr)
	_ = StreamSetter(ForwardInOut)
	_ = StreamSetter(ForwardInErr)
	_ = StreamSetter(ForwardOutErr)
	_ = StreamSetter(ForwardAll)
)

// FuncIn sets a function to pipe into the stdin of this task. You can think of this as piping your program directly into the task's stdin. If this processing function fails, it will be returned from Run() or Wait() as if it were another task in the sequence
func FuncIn(handler PipeSource) StreamSetter {
	return func(s Streamable) error {
		errChan := make(chan error)
		started := false
		var reader, writer *os.File
		s.DeferBefore(func() error {
			var err error
			reader, writer, err = os.Pipe()
			if err != nil {
				return err
			}
			err = s.SetStdin(reader)
			if err != nil {
				reader.Close()
				writer.Close()
				return err
			}
			go func() {
				err := handler(writer)
				writer.Close()
				errChan <- err
			}()
			started = true
			return nil
		})
		s.DeferAfter(func() error {
			if started {
				reader.Close()
				return <-errChan
			}
			return nil
		})
		return nil
	}
}

// FuncOut sets a function to feed the stdout of this task into. You can think of this as piping the task's stdout back into your program. If this processing function fails, it will be returned from Run() or Wait() as if it were another task in the sequence.
func FuncOut(handler PipeSink) StreamSetter {
	return func(s Streamable) error {
		errChan := make(chan error)
		started := false
		var reader, writer *os.File
		s.DeferBefore(func() error {
			var err error
			reader, writer, err = os.Pipe()
			if err != nil {
				return err
			}
			err = s.SetStdout(writer)
			if err != nil {
				reader.Close()
				writer.Close()
				return err
			}
			go func() {
				defer reader.Close()
				errChan <- handler(reader)
			}()
			started = true
			return nil
		})
		s.DeferAfter(func() error {
			if started {
				writer.Close()
				return <-errChan
			}
			return nil
		})
		return nil
	}
}

// FuncErr is the same as FuncOut except it processes stderr
func FuncErr(handler PipeSink) StreamSetter {
	return func(s Streamable) error {
		errChan := make(chan error)
		started := false
		var reader, writer *os.File
		s.DeferBefore(func() error {
			var err error
			reader, writer, err = os.Pipe()
			if err != nil {
				return err
			}
			err = s.SetStderr(writer)
			if err != nil {
				reader.Close()
				writer.Close()
				return err
			}
			go func() {
				defer reader.Close()
				errChan <- handler(reader)
			}()
			started = true
			return nil
		})
		s.DeferAfter(func() error {
			if started {
				writer.Close()
				return <-errChan
			}
			return nil
		})
		return nil
	}
}

// StringIn sets a literal string to be provided as stdin to this task.
func StringIn(in string) StreamSetter {
	return BytesIn([]byte(in))
}

// BytesIn sets a literal byte slice to be provided as stdin to this task.
func BytesIn(in []byte) StreamSetter {
	return FuncIn(func(w io.Writer) error {
		_, err := w.Write(in)
		return err
	})
}

// FileIn sets the path of a file whose contents are to be redirected to this task's stdin. The file is not opened when FileIn is called, but instead when Run() or Start() is called.
func FileIn(path string) StreamSetter {
	return func(s Streamable) error {
		var f *os.File
		s.DeferBefore(func() error {
			var err error
			f, err = os.Open(path)
			if err != nil {
				return err
			}
			err = s.SetStdin(f)
			if err != nil {
				return err
			}
			return nil
		})
		s.DeferAfter(func() error {
			if f == nil {
				return nil
			}
			return f.Close()
		})
		return nil
	}
}

// FileOut sets the path of a file to redirect this task's stdout to. The file is not opened when FileOut is called, but instead when Run() or Start() is called.
func FileOut(path string) StreamSetter {
	return func(s Streamable) error {
		var f *os.File
		s.DeferBefore(func() error {
			var err error
			f, err = os.Create(path)
			if err != nil {
				return err
			}
			err = s.SetStdout(f)
			if err != nil {
				return err
			}
			return nil
		})
		s.DeferAfter(func() error {
			if f == nil {
				return nil
			}
			return f.Close()
		})
		return nil
	}
}

// FileErr sets the path of a file to redirect this task's stderr to. The file is not opened when FileErr is called, but instead when Run() or Start() is called.
func FileErr(path string) StreamSetter {
	return func(s Streamable) error {
		var f *os.File
		s.DeferBefore(func() error {
			var err error
			f, err = os.Create(path)
			if err != nil {
				return err
			}
			err = s.SetStderr(f)
			if err != nil {
				return err
			}
			return nil
		})
		s.DeferAfter(func() error {
			if f == nil {
				return nil
			}
			return f.Close()
		})
		return nil
	}
}
