package format

import (
	"testing"

	"github.com/light-std/ls/ctx"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) *ctx.Context {
	c := ctx.New()
	c.FmtParseErrorHandler = func(c *ctx.Context, message, format string, position int) {
		t.Fatalf("unexpected format error: %s (at byte %d in %q)", message, position, format)
	}
	return c
}

func recordingErrorHandler(c *ctx.Context) *string {
	var got string
	c.FmtParseErrorHandler = func(c *ctx.Context, message, format string, position int) {
		got = message
	}
	return &got
}

// TestSprintScenario is scenario S4 from the spec: a single call exercising
// width/precision, zero-padding, sign, code point, string and escape
// specifiers together.
func TestSprintScenario(t *testing.T) {
	c := newTestContext(t)
	out := Sprint(c, "{0:0.10f}:{1:04}:{2:+g}:{3}:{4}:{5:c}:%",
		3.14159265358979, 7, 2.5, "hi", true, CodePoint('X'))
	requireEqualDiff(t, "3.1415926536:0007:+2.5:hi:true:X:%", out.String())
}

func TestSprintFloatAlternateAndZeroPadAlignment(t *testing.T) {
	c := newTestContext(t)
	requireEqualDiff(t, "0.009", Sprint(c, "{:#.3f}", 0.00884311).String())
	// '0' sets zero-fill but must not override an explicit alignment char.
	requireEqualDiff(t, "000000", Sprint(c, "{:>06.0f}", 0.00884311).String())
}

func TestSprintManualAfterAutoIsAnError(t *testing.T) {
	c := newTestContext(t)
	got := recordingErrorHandler(c)
	Sprint(c, "{}{0}", 'a', 'b')
	require.Equal(t, "Cannot switch from automatic to manual argument indexing", *got)
}

func TestSprintAutoAfterManualIsAnError(t *testing.T) {
	c := newTestContext(t)
	got := recordingErrorHandler(c)
	Sprint(c, "{0}{}", 'a', 'b')
	require.Equal(t, "Cannot switch from manual to automatic argument indexing", *got)
}

func TestSprintEscapedBraces(t *testing.T) {
	c := newTestContext(t)
	require.Equal(t, "{literal}", Sprint(c, "{{literal}}").String())
}

func TestSprintUnmatchedClosingBraceIsAnError(t *testing.T) {
	c := newTestContext(t)
	got := recordingErrorHandler(c)
	Sprint(c, "abc}def")
	require.Equal(t, "Unmatched '}' in format string - use '}}' to escape", *got)
}

func TestSprintArgumentIndexOutOfRange(t *testing.T) {
	c := newTestContext(t)
	got := recordingErrorHandler(c)
	Sprint(c, "{1}", 1)
	require.Equal(t, "Argument index out of range", *got)
}

func TestSprintStyleField(t *testing.T) {
	c := newTestContext(t)
	out := Sprint(c, "{!RED}x{!}").String()
	require.Contains(t, out, "\x1b[")
	require.Contains(t, out, "x")
}

func TestSprintStyleFieldDisabledANSI(t *testing.T) {
	c := newTestContext(t)
	c.FmtDisableANSICodes = true
	out := Sprint(c, "{!RED}x{!}").String()
	require.Equal(t, "x", out)
}

func TestSprintIntegerBases(t *testing.T) {
	c := newTestContext(t)
	require.Equal(t, "0x2a", Sprint(c, "{:#x}", 42).String())
	require.Equal(t, "0b101010", Sprint(c, "{:#b}", 42).String())
	require.Equal(t, "0o52", Sprint(c, "{:#o}", 42).String())
}

func TestSprintStringPrecisionTruncatesAtCodePoint(t *testing.T) {
	c := newTestContext(t)
	require.Equal(t, "hel", Sprint(c, "{:.3}", "hello").String())
}

func TestSprintPointerArgument(t *testing.T) {
	c := newTestContext(t)
	require.Equal(t, "0x3e8", Sprint(c, "{}", Pointer(1000)).String())
}

func TestSprintPrecisionNotAllowedForInteger(t *testing.T) {
	c := newTestContext(t)
	got := recordingErrorHandler(c)
	Sprint(c, "{:.3}", 42)
	require.Equal(t, "Precision not allowed for integer or pointer arguments", *got)
}

func TestSprintNumericAlignmentRequiresArithmetic(t *testing.T) {
	c := newTestContext(t)
	got := recordingErrorHandler(c)
	Sprint(c, "{:=10}", "hi")
	require.Equal(t, "Alignment '=' requires an arithmetic argument", *got)
}

func TestSprintDynamicWidth(t *testing.T) {
	c := newTestContext(t)
	require.Equal(t, "   42", Sprint(c, "{0:>{1}}", 42, 5).String())
}

func TestSprintBoolRendering(t *testing.T) {
	c := newTestContext(t)
	require.Equal(t, "true false", Sprint(c, "{} {}", true, false).String())
	require.Equal(t, "1 0", Sprint(c, "{:d} {:d}", true, false).String())
}

func TestFprintWritesDirectlyToWriter(t *testing.T) {
	c := newTestContext(t)
	b := &recordingWriter{}
	Fprint(c, b, "{}-{}", 1, 2)
	require.Equal(t, "1-2", string(b.buf))
}

type recordingWriter struct {
	buf []byte
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}
