package format

import (
	"strconv"
	"strings"
)

// indexMode tracks whether this call is using automatic ("{}") or manual
// ("{0}") argument indexing; mixing the two is a parse error (§4.12).
type indexMode int

const (
	indexModeUnset indexMode = iota
	indexModeAuto
	indexModeManual
)

// ErrorHandler receives a parse error's message and byte position within
// the format string, mirroring ctx.fmt_parse_error_handler (§4.12, §7).
type ErrorHandler func(message, formatString string, position int)

type parser struct {
	format string
	pos    int

	args []Arg
	next int // next automatic index
	mode indexMode

	out  *Dispatcher
	errh ErrorHandler
	errd bool // true once an error has been reported; stops further work
}

func (p *parser) fail(message string) {
	if !p.errd {
		p.errd = true
		p.errh(message, p.format, p.pos)
	}
}

// run parses p.format, writing rendered output to p.out, until an error is
// reported or the string is exhausted.
func (p *parser) run() {
	n := len(p.format)
	for p.pos < n && !p.errd {
		c := p.format[p.pos]
		if c != '{' && c != '}' {
			start := p.pos
			for p.pos < n && p.format[p.pos] != '{' && p.format[p.pos] != '}' {
				p.pos++
			}
			p.out.writeLiteral(p.format[start:p.pos])
			continue
		}
		if c == '}' {
			if p.pos+1 < n && p.format[p.pos+1] == '}' {
				p.out.writeLiteral("}")
				p.pos += 2
				continue
			}
			p.fail("Unmatched '}' in format string - use '}}' to escape")
			return
		}
		// c == '{'
		if p.pos+1 < n && p.format[p.pos+1] == '{' {
			p.out.writeLiteral("{")
			p.pos += 2
			continue
		}
		p.parseField()
	}
}

func (p *parser) parseField() {
	n := len(p.format)
	bracePos := p.pos
	p.pos++ // consume '{'
	if p.pos >= n {
		p.fail("Invalid format string")
		return
	}

	if p.format[p.pos] == '!' {
		p.pos++
		p.parseStyleField()
		return
	}

	argID, hasID := p.parseArgID()
	if p.errd {
		return
	}

	var arg Arg
	var ok bool
	if hasID {
		arg, ok = p.resolveManual(argID, bracePos)
	} else {
		arg, ok = p.resolveAuto(bracePos)
	}
	if !ok {
		return
	}

	if p.pos >= n {
		p.fail("'}' expected")
		return
	}

	var spec Spec
	hasSpec := false
	if p.format[p.pos] == ':' {
		p.pos++
		var ok2 bool
		spec, ok2 = p.parseSpec(arg.Kind)
		if !ok2 {
			return
		}
		hasSpec = true
	}

	if p.pos >= n || p.format[p.pos] != '}' {
		p.fail("'}' expected")
		return
	}
	p.pos++

	if hasSpec {
		if err := validateSpec(arg.Kind, spec); err != "" {
			p.fail(err)
			return
		}
	}
	render(p.out, arg, spec)
}

// parseArgID parses an optional decimal index directly after '{', up to
// ':' or '}'. Returns ok=false if none was present (automatic case); a
// non-numeric id such as a name is reported as an invalid argument index.
func (p *parser) parseArgID() (int, bool) {
	n := len(p.format)
	start := p.pos
	for p.pos < n && p.format[p.pos] != ':' && p.format[p.pos] != '}' {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	token := p.format[start:p.pos]
	idx, err := strconv.Atoi(token)
	if err != nil {
		p.fail("Invalid argument index '" + token + "'")
		return 0, false
	}
	return idx, true
}

func (p *parser) resolveAuto(bracePos int) (Arg, bool) {
	if p.mode == indexModeManual {
		p.fail("Cannot switch from manual to automatic argument indexing")
		return Arg{}, false
	}
	p.mode = indexModeAuto
	idx := p.next
	p.next++
	return p.argAt(idx, bracePos)
}

func (p *parser) resolveManual(idx int, bracePos int) (Arg, bool) {
	if p.mode == indexModeAuto {
		p.fail("Cannot switch from automatic to manual argument indexing")
		return Arg{}, false
	}
	p.mode = indexModeManual
	return p.argAt(idx, bracePos)
}

func (p *parser) argAt(idx int, bracePos int) (Arg, bool) {
	if idx < 0 || idx >= len(p.args) {
		p.fail("Argument index out of range")
		return Arg{}, false
	}
	return p.args[idx], true
}

// parseSpec parses the static+dynamic specifier body following ':', up to
// (but not including) the closing '}'. argKind is the active argument's
// kind; it is not consulted here: whatever single byte precedes an
// alignment char is read as fill, whatever the argument's kind.
func (p *parser) parseSpec(argKind Kind) (Spec, bool) {
	var spec Spec
	n := len(p.format)

	// [[fill]align]
	if p.pos+1 < n && isAlignChar(p.format[p.pos+1]) {
		spec.Fill = rune(p.format[p.pos])
		spec.HasFill = true
		spec.Align = alignFromByte(p.format[p.pos+1])
		p.pos += 2
	} else if p.pos < n && isAlignChar(p.format[p.pos]) {
		spec.Align = alignFromByte(p.format[p.pos])
		p.pos++
	}

	if p.pos < n {
		switch p.format[p.pos] {
		case '+':
			spec.Sign = SignPlus
			p.pos++
		case '-':
			spec.Sign = SignMinus
			p.pos++
		case ' ':
			spec.Sign = SignSpace
			p.pos++
		}
	}

	if p.pos < n && p.format[p.pos] == '#' {
		spec.Alternate = true
		p.pos++
	}

	if p.pos < n && p.format[p.pos] == '0' {
		spec.ZeroPad = true
		if !spec.HasFill {
			spec.Fill = '0'
			spec.HasFill = true
		}
		if spec.Align == AlignNone {
			spec.Align = AlignNumeric
		}
		p.pos++
	}

	if w, ok, valid := p.parseDynamicInt(); valid {
		if !ok {
			return spec, false
		}
		if w < 0 {
			p.fail("Negative width")
			return spec, false
		}
		spec.Width = w
		spec.HasWidth = true
	}

	if p.pos < n && p.format[p.pos] == '.' {
		p.pos++
		prec, ok, valid := p.parseDynamicInt()
		if !valid {
			p.fail("Precision missing")
			return spec, false
		}
		if !ok {
			return spec, false
		}
		if prec < 0 {
			p.fail("Negative precision")
			return spec, false
		}
		spec.Precision = prec
		spec.HasPrec = true
	}

	if p.pos < n && p.format[p.pos] != '}' {
		spec.Type = p.format[p.pos]
		p.pos++
	}

	return spec, true
}

// parseDynamicInt parses a decimal literal or a "{arg_id}" reference at
// the parser's current position. valid reports whether anything was
// consumed at all (a literal or a brace); ok reports whether resolution
// succeeded (false only after an error has already been reported).
func (p *parser) parseDynamicInt() (value int, ok bool, valid bool) {
	n := len(p.format)
	if p.pos < n && p.format[p.pos] == '{' {
		p.pos++
		start := p.pos
		for p.pos < n && p.format[p.pos] != '}' {
			p.pos++
		}
		if p.pos >= n {
			p.fail("'}' expected")
			return 0, false, true
		}
		token := p.format[start:p.pos]
		p.pos++ // consume '}'

		var arg Arg
		if token == "" {
			arg, ok = p.resolveAuto(p.pos)
		} else {
			idx, err := strconv.Atoi(token)
			if err != nil {
				p.fail("Invalid argument index '" + token + "'")
				return 0, false, true
			}
			arg, ok = p.resolveManual(idx, p.pos)
		}
		if !ok {
			return 0, false, true
		}
		iv, isInt := dynamicIntValue(arg)
		if !isInt {
			p.fail("Width/precision is not an integer")
			return 0, false, true
		}
		return iv, true, true
	}
	if p.pos < n && p.format[p.pos] >= '0' && p.format[p.pos] <= '9' {
		start := p.pos
		for p.pos < n && p.format[p.pos] >= '0' && p.format[p.pos] <= '9' {
			p.pos++
		}
		v, err := strconv.Atoi(p.format[start:p.pos])
		if err != nil || v > (1<<31-1) {
			p.fail("Number is too big")
			return 0, false, true
		}
		return v, true, true
	}
	return 0, true, false
}

func dynamicIntValue(a Arg) (int, bool) {
	switch a.Kind {
	case KindInt:
		return int(a.I), true
	case KindUint:
		return int(a.U), true
	}
	return 0, false
}

// parseStyleField parses the body of a "{!style}" field, up to and
// including its closing '}', writing the resulting ANSI escape directly.
func (p *parser) parseStyleField() {
	n := len(p.format)
	start := p.pos
	for p.pos < n && p.format[p.pos] != '}' {
		p.pos++
	}
	if p.pos >= n {
		p.fail("'}' expected")
		return
	}
	body := p.format[start:p.pos]
	p.pos++ // consume '}'

	style, err := parseStyle(body)
	if err != "" {
		p.fail(err)
		return
	}
	p.out.writeStyle(style)
}

func isValidEmphasisChars(s string) bool {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte("BIUS", s[i]) == -1 {
			return false
		}
	}
	return true
}
