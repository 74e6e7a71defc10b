package unittest

import (
	"flag"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/verichain/verichain/utils/logging"
)

var verbose = flag.Bool("vv", false, "print debug logs of the code under test")

// Logger returns a debug level logger for components under test. Output is
// discarded unless the test binary runs with -vv.
func Logger() zerolog.Logger {
	var w io.Writer = io.Discard
	if *verbose {
		w = os.Stderr
	}
	return logging.New(w, zerolog.DebugLevel, *verbose)
}
