package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment inside a column
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Column describes one fixed-width column of a table row
type Column struct {
	Width int
	Align int
}

type line struct {
	text string
	bold bool
}

// Document is a fixed-width text layout. The same document renders as plain
// text (String) or as an ESC/POS byte stream for thermal printers (Bytes).
// All alignment is done with spaces, so both forms show identical text.
type Document struct {
	width int // print width in characters (32 for 58mm, 48 for 80mm)
	lines []line
}

// NewDocument creates a document with the given character width.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 48
	}
	return &Document{width: charWidth}
}

func (d *Document) Width() int {
	return d.width
}

// Text writes a line as is, truncated to the width.
func (d *Document) Text(s string) *Document {
	d.lines = append(d.lines, line{text: truncate(s, d.width)})
	return d
}

// Blank writes an empty line.
func (d *Document) Blank() *Document {
	d.lines = append(d.lines, line{})
	return d
}

// Center writes s centered in the width.
func (d *Document) Center(s string) *Document {
	d.lines = append(d.lines, line{text: trimRight(Fit(s, d.width, AlignCenter))})
	return d
}

// Title writes s centered and, on paper, in bold.
func (d *Document) Title(s string) *Document {
	d.lines = append(d.lines, line{text: trimRight(Fit(s, d.width, AlignCenter)), bold: true})
	return d
}

// Right writes s flush right.
func (d *Document) Right(s string) *Document {
	d.lines = append(d.lines, line{text: Fit(s, d.width, AlignRight)})
	return d
}

// Separator prints a full-width separator line (e.g. "--------------------------------").
func (d *Document) Separator(char byte) *Document {
	d.lines = append(d.lines, line{text: strings.Repeat(string(char), d.width)})
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
// The key is truncated when both do not fit.
func (d *Document) KeyValue(key, value string) *Document {
	keyWidth := d.width - utf8.RuneCountInString(value) - 1
	if keyWidth < 0 {
		keyWidth = 0
	}
	key = truncate(key, keyWidth)
	spaces := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}
	d.lines = append(d.lines, line{text: key + strings.Repeat(" ", spaces) + value})
	return d
}

// Row prints values in fixed-width columns. Values longer than their column are truncated.
func (d *Document) Row(cols []Column, values ...string) *Document {
	var b strings.Builder
	for i, col := range cols {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		b.WriteString(Fit(v, col.Width, col.Align))
	}
	d.lines = append(d.lines, line{text: trimRight(b.String())})
	return d
}

// Wrap writes s word-wrapped at the width. Words longer than the width are split.
func (d *Document) Wrap(s string) *Document {
	var current string
	for _, word := range strings.Fields(s) {
		for utf8.RuneCountInString(word) > d.width {
			if current != "" {
				d.lines = append(d.lines, line{text: current})
				current = ""
			}
			r := []rune(word)
			d.lines = append(d.lines, line{text: string(r[:d.width])})
			word = string(r[d.width:])
		}
		switch {
		case current == "":
			current = word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= d.width:
			current += " " + word
		default:
			d.lines = append(d.lines, line{text: current})
			current = word
		}
	}
	if current != "" {
		d.lines = append(d.lines, line{text: current})
	}
	return d
}

// String returns the plain-text rendering, one "\n" terminated line per row.
func (d *Document) String() string {
	var b strings.Builder
	for _, l := range d.lines {
		b.WriteString(l.text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Bytes returns the ESC/POS stream: initialize, the text, feed and partial cut.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	buf.Write([]byte{ESC, '@'})
	for _, l := range d.lines {
		if l.bold {
			buf.Write([]byte{ESC, 'E', 1})
		}
		buf.WriteString(l.text)
		buf.WriteByte(LF)
		if l.bold {
			buf.Write([]byte{ESC, 'E', 0})
		}
	}
	buf.Write([]byte{LF, LF, LF})
	buf.Write([]byte{GS, 'V', 0x01})
	return buf.Bytes()
}

// Fit pads or truncates s to exactly width characters.
func Fit(s string, width, align int) string {
	s = truncate(s, width)
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width])
}

func trimRight(s string) string {
	return strings.TrimRight(s, " ")
}
