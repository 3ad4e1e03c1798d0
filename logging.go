package mq

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger mirrors the original kernel's debug_println(DEBUG_INFO, "[mq] -
// ...", ...) calls scattered through message_queue.c, but through a real
// structured logger instead of a printf wrapper. Queue operations log at
// Debug; lifecycle transitions (open/unlink) log at Info.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "mosmq",
})

// SetLogger replaces the package-wide logger, e.g. to redirect it into a
// test's t.Log or to silence it in production with log.New(io.Discard).
func SetLogger(l *log.Logger) {
	logger = l
}
