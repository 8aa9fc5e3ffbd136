package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/light-std/ls/container/xstring"
)

// pad assembles sign+prefix+digits into spec's field, applying fill/align
// (§4.12). Numeric alignment ('=') places fill between sign+prefix and
// digits; every other alignment treats the whole string as one unit. The
// documented default is left alignment when none was specified.
func pad(d *Dispatcher, sign, prefix, digits string, spec Spec) {
	full := sign + prefix + digits
	width := 0
	if spec.HasWidth {
		width = spec.Width
	}
	contentLen := xstring.View(full).Length()
	if int64(contentLen) >= int64(width) {
		d.writeLiteral(full)
		return
	}
	padLen := width - int(contentLen)
	fillRune := ' '
	if spec.HasFill {
		fillRune = spec.Fill
	}
	fill := strings.Repeat(string(fillRune), padLen)

	align := spec.Align
	if align == AlignNone {
		align = AlignLeft
	}
	switch align {
	case AlignLeft:
		d.writeLiteral(full)
		d.writeLiteral(fill)
	case AlignRight:
		d.writeLiteral(fill)
		d.writeLiteral(full)
	case AlignCenter:
		left := padLen / 2
		right := padLen - left
		d.writeLiteral(strings.Repeat(string(fillRune), left))
		d.writeLiteral(full)
		d.writeLiteral(strings.Repeat(string(fillRune), right))
	case AlignNumeric:
		d.writeLiteral(sign)
		d.writeLiteral(prefix)
		d.writeLiteral(fill)
		d.writeLiteral(digits)
	}
}

func signFor(neg bool, s Sign) string {
	if neg {
		return "-"
	}
	switch s {
	case SignPlus:
		return "+"
	case SignSpace:
		return " "
	}
	return ""
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func renderIntegerBody(d *Dispatcher, neg bool, mag uint64, spec Spec) {
	typ := spec.Type
	if typ == 'c' {
		var buf [4]byte
		n := xstring.EncodeCodePoint(buf[:], rune(mag))
		pad(d, "", "", string(buf[:n]), spec)
		return
	}

	base := 10
	prefix := ""
	upper := false
	switch typ {
	case 'b':
		base = 2
		if spec.Alternate {
			prefix = "0b"
		}
	case 'o':
		base = 8
		if spec.Alternate {
			prefix = "0o"
		}
	case 'x':
		base = 16
		if spec.Alternate {
			prefix = "0x"
		}
	case 'X':
		base = 16
		upper = true
		if spec.Alternate {
			prefix = "0X"
		}
	case 'n':
		base = 10
	}

	digits := strconv.FormatUint(mag, base)
	if upper {
		digits = strings.ToUpper(digits)
	}
	if typ == 'n' {
		digits = groupThousands(strconv.FormatUint(mag, 10))
	}

	sign := signFor(neg, spec.Sign)
	pad(d, sign, prefix, digits, spec)
}

func renderInt(d *Dispatcher, arg Arg, spec Spec) {
	v := arg.I
	neg := v < 0
	var mag uint64
	if neg {
		mag = uint64(-v)
	} else {
		mag = uint64(v)
	}
	renderIntegerBody(d, neg, mag, spec)
}

func renderUint(d *Dispatcher, arg Arg, spec Spec) {
	renderIntegerBody(d, false, arg.U, spec)
}

func parseExponent(s string) int {
	i := strings.IndexByte(s, 'e')
	if i < 0 {
		return 0
	}
	e, _ := strconv.Atoi(s[i+1:])
	return e
}

func trimTrailingZeros(s string, keep bool) string {
	if keep || !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func trimTrailingZerosExp(s string, keep bool) string {
	if keep {
		return s
	}
	i := strings.IndexByte(s, 'e')
	if i < 0 {
		return trimTrailingZeros(s, keep)
	}
	return trimTrailingZeros(s[:i], false) + s[i:]
}

// formatGeneral implements the default/'g' float rendering: fixed form
// when the value's exponent lies in [-4, 15], scientific otherwise, with
// trailing zeros removed unless '#' (§4.13, §9).
func formatGeneral(av float64, spec Spec) string {
	if av == 0 {
		if spec.HasPrec {
			dec := spec.Precision - 1
			if dec < 0 {
				dec = 0
			}
			return trimTrailingZeros(strconv.FormatFloat(0, 'f', dec, 64), spec.Alternate)
		}
		return "0"
	}

	var expStr string
	sig := 0
	if spec.HasPrec {
		sig = spec.Precision
		if sig < 1 {
			sig = 1
		}
		expStr = strconv.FormatFloat(av, 'e', sig-1, 64)
	} else {
		expStr = strconv.FormatFloat(av, 'e', -1, 64)
	}
	exp := parseExponent(expStr)

	if exp >= -4 && exp <= 15 {
		var digits string
		if spec.HasPrec {
			dec := sig - 1 - exp
			if dec < 0 {
				dec = 0
			}
			digits = strconv.FormatFloat(av, 'f', dec, 64)
		} else {
			digits = strconv.FormatFloat(av, 'f', -1, 64)
		}
		return trimTrailingZeros(digits, spec.Alternate)
	}
	return trimTrailingZerosExp(expStr, spec.Alternate)
}

func renderFloat(d *Dispatcher, arg Arg, spec Spec) {
	v := arg.F
	typ := spec.Type
	upper := typ >= 'A' && typ <= 'Z'
	lower := typ
	if upper {
		lower += 'a' - 'A'
	}

	if math.IsNaN(v) {
		s := "nan"
		if upper {
			s = "NAN"
		}
		pad(d, signFor(false, spec.Sign), "", s, spec)
		return
	}
	if math.IsInf(v, 0) {
		s := "inf"
		if upper {
			s = "INF"
		}
		pad(d, signFor(v < 0, spec.Sign), "", s, spec)
		return
	}

	neg := math.Signbit(v)
	av := math.Abs(v)

	var digits string
	switch lower {
	case 'e':
		prec := 6
		if spec.HasPrec {
			prec = spec.Precision
		}
		digits = strconv.FormatFloat(av, 'e', prec, 64)
	case 'f':
		prec := 6
		if spec.HasPrec {
			prec = spec.Precision
		}
		digits = strconv.FormatFloat(av, 'f', prec, 64)
		if spec.Alternate && !strings.Contains(digits, ".") {
			digits += "."
		}
	case '%':
		prec := 6
		if spec.HasPrec {
			prec = spec.Precision
		}
		digits = strconv.FormatFloat(av*100, 'f', prec, 64) + "%"
	default: // 'g'/'G' or no type
		digits = formatGeneral(av, spec)
	}
	if upper {
		digits = strings.ToUpper(digits)
	}

	sign := signFor(neg, spec.Sign)
	pad(d, sign, "", digits, spec)
}

func renderCodePoint(d *Dispatcher, arg Arg, spec Spec) {
	var buf [4]byte
	n := xstring.EncodeCodePoint(buf[:], arg.Cp)
	pad(d, "", "", string(buf[:n]), spec)
}

func renderString(d *Dispatcher, arg Arg, spec Spec) {
	s := arg.S
	if spec.HasPrec {
		v := xstring.View(s)
		length := v.Length()
		if int64(spec.Precision) < length {
			s = v.Slice(0, int64(spec.Precision)).String()
		}
	}
	pad(d, "", "", s, spec)
}

func renderPointer(d *Dispatcher, arg Arg, spec Spec) {
	digits := "0x" + strconv.FormatUint(arg.P, 16)
	pad(d, "", "", digits, spec)
}

func renderBool(d *Dispatcher, arg Arg, spec Spec) {
	if spec.Type == 'd' {
		pad(d, "", "", strconv.FormatInt(arg.I, 10), spec)
		return
	}
	s := "false"
	if arg.I != 0 {
		s = "true"
	}
	pad(d, "", "", s, spec)
}
