package format

import "github.com/light-std/ls/ctx"

// Dispatcher holds the current writer and context a custom Formatter
// renders into (§4.13). It implements ctx.Writer so a Formatter can recurse
// by calling Fprint with the Dispatcher as the sink; this package has no
// tuple, list or struct helper functions.
type Dispatcher struct {
	w   ctx.Writer
	ctx *ctx.Context
}

// Write implements ctx.Writer, forwarding straight to the underlying sink.
func (d *Dispatcher) Write(p []byte) (int, error) { return d.w.Write(p) }

func (d *Dispatcher) writeLiteral(s string) {
	if s == "" {
		return
	}
	d.w.Write([]byte(s))
}

func (d *Dispatcher) writeStyle(s Style) {
	disable := d.ctx != nil && d.ctx.FmtDisableANSICodes
	d.writeLiteral(s.ANSI(disable))
}

func validateSpec(k Kind, spec Spec) string {
	if spec.HasPrec && (k == KindInt || k == KindUint || k == KindPointer) {
		return "Precision not allowed for integer or pointer arguments"
	}
	if spec.Align == AlignNumeric && !isArithmeticKind(k) {
		return "Alignment '=' requires an arithmetic argument"
	}
	if k == KindCodePoint && (spec.Sign != SignMinus || spec.Alternate) {
		return "code points can't have numeric alignment, signs or #"
	}
	if spec.Type != 0 && k == KindCodePoint && spec.Type != 'c' {
		return "code points can't have numeric alignment, signs or #"
	}
	return ""
}

func render(d *Dispatcher, arg Arg, spec Spec) {
	switch arg.Kind {
	case KindBool:
		renderBool(d, arg, spec)
	case KindInt:
		renderInt(d, arg, spec)
	case KindUint:
		renderUint(d, arg, spec)
	case KindFloat:
		renderFloat(d, arg, spec)
	case KindCodePoint:
		renderCodePoint(d, arg, spec)
	case KindString:
		renderString(d, arg, spec)
	case KindPointer:
		renderPointer(d, arg, spec)
	case KindCustom:
		arg.Custom.FormatTo(d)
	}
}
