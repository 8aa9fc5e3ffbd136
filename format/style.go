package format

import (
	"strconv"
	"strings"
)

// Style is a parsed "{!...}" text-style field: an optional color plus an
// optional set of emphasis flags, or neither for a bare reset (§4.13).
type Style struct {
	HasColor   bool
	R, G, B    uint8
	Terminal   bool // true: one of the 16 basic SGR colors, not 24-bit
	Term4bit   int  // SGR base code (30-37/90-97) when Terminal
	Background bool
	Bold       bool
	Italic     bool
	Underline  bool
	Strike     bool
	Reset      bool
}

// namedColors is a 24-bit SGR color table; production light-std generates
// this from colors.def, reproduced here as a representative subset rather
// than the full list since nothing in this module's scope needs more.
var namedColors = map[string][3]uint8{
	"BLACK":           {0, 0, 0},
	"WHITE":           {255, 255, 255},
	"RED":             {255, 0, 0},
	"GREEN":           {0, 255, 0},
	"BLUE":            {0, 0, 255},
	"YELLOW":          {255, 255, 0},
	"CYAN":            {0, 255, 255},
	"MAGENTA":         {255, 0, 255},
	"ORANGE":          {255, 165, 0},
	"PURPLE":          {128, 0, 128},
	"PINK":            {255, 192, 203},
	"GRAY":            {128, 128, 128},
	"CORNFLOWER_BLUE":  {100, 149, 237},
	"DARK_MAGENTA":    {139, 0, 139},
	"DARK_RED":        {139, 0, 0},
	"DARK_GREEN":      {0, 100, 0},
	"DARK_BLUE":       {0, 0, 139},
	"LIGHT_GRAY":      {211, 211, 211},
	"LIGHT_BLUE":      {173, 216, 230},
}

var terminalColors = map[string]int{
	"BLACK": 30, "RED": 31, "GREEN": 32, "YELLOW": 33,
	"BLUE": 34, "MAGENTA": 35, "CYAN": 36, "WHITE": 37,
	"BRIGHT_BLACK": 90, "BRIGHT_RED": 91, "BRIGHT_GREEN": 92, "BRIGHT_YELLOW": 93,
	"BRIGHT_BLUE": 94, "BRIGHT_MAGENTA": 95, "BRIGHT_CYAN": 96, "BRIGHT_WHITE": 97,
}

// parseStyle parses the body of a "{!body}" field (everything between '!'
// and the closing '}'). An empty body means reset (§4.13).
func parseStyle(body string) (Style, string) {
	if body == "" {
		return Style{Reset: true}, ""
	}

	parts := strings.Split(body, ";")
	var style Style
	rest := parts

	if isRGBTriple(parts) {
		r, _ := strconv.Atoi(parts[0])
		g, _ := strconv.Atoi(parts[1])
		b, _ := strconv.Atoi(parts[2])
		if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
			return Style{}, "RGB channel out of range [0-255]"
		}
		style.HasColor = true
		style.R, style.G, style.B = uint8(r), uint8(g), uint8(b)
		rest = parts[3:]
	} else {
		first := parts[0]
		if strings.HasPrefix(first, "t") && len(first) > 1 {
			name := first[1:]
			if code, ok := terminalColors[name]; ok {
				style.HasColor = true
				style.Terminal = true
				style.Term4bit = code
				rest = parts[1:]
			}
		}
		if !style.HasColor {
			if rgb, ok := namedColors[first]; ok {
				style.HasColor = true
				style.R, style.G, style.B = rgb[0], rgb[1], rgb[2]
				rest = parts[1:]
			}
		}
	}

	for _, p := range rest {
		if p == "" {
			continue
		}
		if p == "BG" {
			if !style.HasColor {
				return Style{}, "BG specified without a color"
			}
			style.Background = true
			continue
		}
		if !isValidEmphasisChars(p) {
			return Style{}, "Invalid emphasis character"
		}
		for i := 0; i < len(p); i++ {
			switch p[i] {
			case 'B':
				style.Bold = true
			case 'I':
				style.Italic = true
			case 'U':
				style.Underline = true
			case 'S':
				style.Strike = true
			}
		}
	}
	return style, ""
}

func isRGBTriple(parts []string) bool {
	if len(parts) < 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if parts[i] == "" {
			return false
		}
		for j := 0; j < len(parts[i]); j++ {
			if parts[i][j] < '0' || parts[i][j] > '9' {
				return false
			}
		}
	}
	return true
}

// ANSI renders style as an SGR escape sequence. A reset style renders
// "\x1b[0m", a style with neither color nor emphasis renders "", and
// disableANSI renders everything as "" (§4.13).
func (s Style) ANSI(disableANSI bool) string {
	if disableANSI {
		return ""
	}
	if s.Reset {
		return "\x1b[0m"
	}
	var b strings.Builder
	b.WriteString("\x1b[")
	first := true
	write := func(code string) {
		if !first {
			b.WriteByte(';')
		}
		b.WriteString(code)
		first = false
	}
	if s.HasColor {
		if s.Terminal {
			code := s.Term4bit
			if s.Background {
				code += 10
			}
			write(strconv.Itoa(code))
		} else {
			layer := "38"
			if s.Background {
				layer = "48"
			}
			write(layer + ";2;" + strconv.Itoa(int(s.R)) + ";" + strconv.Itoa(int(s.G)) + ";" + strconv.Itoa(int(s.B)))
		}
	}
	if s.Bold {
		write("1")
	}
	if s.Italic {
		write("3")
	}
	if s.Underline {
		write("4")
	}
	if s.Strike {
		write("9")
	}
	if first {
		return ""
	}
	b.WriteByte('m')
	return b.String()
}
