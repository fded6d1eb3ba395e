package catgcd_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"context"
	"io"
	"os"

	"github.com/meln5674/catgcd"
)

var _ = Describe("FuncTask", func() {
	useMocks()
	It("should work like you expect", func() {
		genericTest(genericTestArgs{
			task: catgcd.FromFunc(
				context.TODO(),
				func(
					ctx context.Context,
					stdin io.Reader, stdout, stderr io.Writer,
					done chan error,
				) error {
					go func() {
						defer close(done)
						_, err := io.Copy(stdout, stdin)
						done <- err
					}()
					go func() {
						stderr.Write([]byte("err"))
					}()
					return nil
				},
			).WithStreams(catgcd.ForwardAll),
			stdin:  "in",
			stdout: "in",
			stderr: "err",
		})
	})
	It("should work like you expect asynchronously", func() {
		genericTest(genericTestArgs{
			task: catgcd.FromFunc(
				context.TODO(),
				func(
					ctx context.Context,
					stdin io.Reader, stdout, stderr io.Writer,
					done chan error,
				) error {
					go func() {
						defer close(done)
						_, err := io.Copy(stdout, stdin)
						done <- err
					}()
					go func() {
						stderr.Write([]byte("err"))
					}()
					return nil
				},
			).WithStreams(catgcd.ForwardAll),
			stdin:  "in",
			stdout: "in",
			stderr: "err",
			async:  true,
		})
	})
	It("should be killable", func() {
		task := catgcd.FromFunc(
			context.TODO(),
			func(
				ctx context.Context,
				stdin io.Reader, stdout, stderr io.Writer,
				done chan error,
			) error {
				go func() {
					defer close(done)
					<-ctx.Done()
					done <- ctx.Err()
				}()
				return nil
			},
		).WithStreams(catgcd.ForwardAll)
		Expect(task.Start()).To(Succeed())
		Expect(task.Kill()).To(Succeed())
		Expect(task.Wait()).To(MatchError(catgcd.ErrKilled))
	})
	It("should refuse to start twice", func() {
		task := catgcd.FromFunc(
			context.TODO(),
			func(
				ctx context.Context,
				stdin io.Reader, stdout, stderr io.Writer,
				done chan error,
			) error {
				go func() {
					defer close(done)
					done <- nil
				}()
				return nil
			},
		)
		Expect(task.Start()).To(Succeed())
		Expect(task.Start()).To(MatchError(catgcd.ErrAlreadyStarted))
		Expect(task.Wait()).To(Succeed())
	})
	It("should refuse to be killed before starting", func() {
		task := catgcd.FromFunc(
			context.TODO(),
			func(
				ctx context.Context,
				stdin io.Reader, stdout, stderr io.Writer,
				done chan error,
			) error {
				go func() {
					defer close(done)
					done <- nil
				}()
				return nil
			},
		)
		Expect(task.Kill()).To(MatchError(catgcd.ErrNotStarted))
	})
	It("should process stderr separately from stdout", func() {
		var errOut string
		task := catgcd.FromFunc(
			context.TODO(),
			func(
				ctx context.Context,
				stdin io.Reader, stdout, stderr io.Writer,
				done chan error,
			) error {
				go func() {
					defer close(done)
					stdout.Write([]byte("out"))
					_, err := stderr.Write([]byte("err"))
					done <- err
				}()
				return nil
			},
		).WithStreams(
			catgcd.FuncErr(catgcd.AppendString(&errOut)),
		)
		Expect(task.Run()).To(Succeed())
		Expect(errOut).To(Equal("err"))
	})
	It("should redirect stderr to a file", func() {
		f, err := os.CreateTemp("", "*")
		Expect(err).ToNot(HaveOccurred())
		f.Close()
		defer os.Remove(f.Name())
		task := catgcd.FromFunc(
			context.TODO(),
			func(
				ctx context.Context,
				stdin io.Reader, stdout, stderr io.Writer,
				done chan error,
			) error {
				go func() {
					defer close(done)
					_, err := stderr.Write([]byte("err"))
					done <- err
				}()
				return nil
			},
		).WithStreams(catgcd.FileErr(f.Name()))
		Expect(task.Run()).To(Succeed())
		written, err := os.ReadFile(f.Name())
		Expect(err).ToNot(HaveOccurred())
		Expect(string(written)).To(Equal("err"))
	})
	It("should redirect stdout to a file", func() {
		f, err := os.CreateTemp("", "*")
		Expect(err).ToNot(HaveOccurred())
		f.Close()
		defer os.Remove(f.Name())
		genericTest(genericTestArgs{
			task: catgcd.FromFunc(
				context.TODO(),
				func(
					ctx context.Context,
					stdin io.Reader, stdout, stderr io.Writer,
					done chan error,
				) error {
					go func() {
						defer close(done)
						_, err := io.Copy(stdout, stdin)
						done <- err
					}()
					return nil
				},
			).WithStreams(
				catgcd.ForwardIn,
				catgcd.FileOut(f.Name()),
			),
			stdin:  "in",
			stdout: "",
			stderr: "",
		})
		processedOut, err := os.ReadFile(f.Name())
		Expect(err).ToNot(HaveOccurred())
		Expect(string(processedOut)).To(Equal("in"))
	})
})
