// Package catgcd implements a two-step stdio program as composable tasks:
// stream the bytes of a file to stdout, then read a pair of integers from
// stdin and print the pair's greatest common divisor.
package catgcd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/meln5674/catgcd/pkg/euclid"
)

// CatFile returns a task which copies the contents of the file at path to the task's stdout,
// byte for byte, with no transformation and nothing appended.
// A file which does not exist is treated as having no bytes: the task succeeds and writes nothing.
// Any other failure to open or read the file is returned from Run() or Wait().
// The task ignores its stdin.
func CatFile(ctx context.Context, path string) *FuncTask {
	return FromFunc(ctx, func(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, done chan error) error {
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			go func() {
				defer close(done)
				done <- nil
			}()
			return nil
		}
		if err != nil {
			return err
		}
		go func() {
			defer close(done)
			defer f.Close()
			n, err := io.Copy(stdout, f)
			GlobalLog.V(DebugLogLevel).Info("copied file", "path", path, "bytes", n)
			done <- err
		}()
		return nil
	}).WithName("cat " + path)
}

// ComputeGCD returns a task which reads two whitespace-separated integers from the task's stdin
// and writes their greatest common divisor to the task's stdout, followed by a single newline.
// If stdin does not contain two parseable integers the task fails with the scan error and
// writes nothing. See euclid.GCD for the treatment of zero and negative inputs.
func ComputeGCD(ctx context.Context) *FuncTask {
	return FromFunc(ctx, func(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, done chan error) error {
		go func() {
			defer close(done)
			var a, b int
			_, err := fmt.Fscan(stdin, &a, &b)
			if err != nil {
				done <- err
				return
			}
			g := euclid.GCD(a, b)
			GlobalLog.V(DebugLogLevel).Info("computed gcd", "a", a, "b", b, "gcd", g)
			_, err = fmt.Fprintln(stdout, g)
			done <- err
		}()
		return nil
	}).WithName("gcd")
}

// CopyThenCompute builds the full program: stream the file at path to stdout, then read an
// integer pair from stdin and print the pair's greatest common divisor.
// The copy step runs to completion before the compute step starts, so every byte of the file
// precedes the printed result.
func CopyThenCompute(ctx context.Context, path string) *SequenceTask {
	return And(CatFile(ctx, path), ComputeGCD(ctx))
}
