package format

import (
	"github.com/light-std/ls/alloc"
	"github.com/light-std/ls/container/builder"
	"github.com/light-std/ls/container/xstring"
	"github.com/light-std/ls/ctx"
)

func makeArgs(args []any) []Arg {
	out := make([]Arg, len(args))
	for i, a := range args {
		out[i] = MakeArg(a)
	}
	return out
}

func errorHandlerFor(c *ctx.Context) ErrorHandler {
	return func(message, formatString string, position int) {
		if c != nil && c.FmtParseErrorHandler != nil {
			c.FmtParseErrorHandler(c, message, formatString, position)
			return
		}
		panic("format: " + message)
	}
}

// Fprint renders format against args, writing to w (§4.14's to_writer).
func Fprint(c *ctx.Context, w ctx.Writer, format string, args ...any) {
	d := &Dispatcher{w: w, ctx: c}
	p := &parser{format: format, args: makeArgs(args), out: d, errh: errorHandlerFor(c)}
	p.run()
}

// Sprint renders format into a freshly built string, using a
// string_builder_writer as the sink and concatenating its chunks in one
// pass at the end (§4.13, §4.14).
func Sprint(c *ctx.Context, format string, args ...any) xstring.String {
	a := allocFor(c)
	b := builder.New(a)
	Fprint(c, b, format, args...)
	return b.ToString(a)
}

// Print renders format to c.Log, the context's log writer (§4.14).
func Print(c *ctx.Context, format string, args ...any) {
	if c == nil || c.Log == nil {
		return
	}
	Fprint(c, c.Log, format, args...)
}

func allocFor(c *ctx.Context) alloc.Allocator {
	if c == nil {
		return alloc.Default
	}
	return c.Alloc
}
