// catgcd streams the contents of copyme.txt in the working directory to stdout, if the file
// exists, then reads two integers from stdin and prints their greatest common divisor.
package main

import (
	"context"
	stdlog "log"
	"os"

	"github.com/go-logr/stdr"

	"github.com/meln5674/catgcd"
)

// copyPath is resolved relative to the working directory
const copyPath = "copyme.txt"

func main() {
	catgcd.GlobalLog = stdr.New(stdlog.New(os.Stderr, "", stdlog.LstdFlags))
	err := catgcd.CopyThenCompute(context.Background(), copyPath).
		WithStreams(catgcd.ForwardAll).
		Run()
	if err != nil {
		catgcd.GlobalLog.Error(err, "catgcd failed")
		os.Exit(1)
	}
}
