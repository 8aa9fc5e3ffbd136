package ctx

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/golang/glog"
)

// DefaultPanicHandler prints an ANSI-decorated stack trace to ctx.Log (or
// stderr, if Log hasn't been wired yet) and terminates the process, mirroring
// light-std's default_unexpected_exception_handler.
func DefaultPanicHandler(c *Context, message string) {
	trace := debug.Stack()
	text := fmt.Sprintf("\x1b[31;1mpanic:\x1b[0m %s\n%s", message, trace)
	if c != nil && c.Log != nil {
		_, _ = c.Log.Write([]byte(text))
	} else {
		glog.Errorf("%s", text)
	}
	os.Exit(1)
}

// DefaultFmtParseErrorHandler aborts formatting on a malformed format string
// (§7.4). The default implementation logs through glog; tests install a
// recording handler instead (see format package tests).
func DefaultFmtParseErrorHandler(c *Context, message, format string, position int) {
	glog.Errorf("fmt: %s (at byte %d in %q)", message, position, format)
}
