package typing

import "strings"

type CursorStyle uint8

const (
	CursorBlock CursorStyle = iota
	CursorUnderscore
	CursorPipe
)

var cursorName = map[CursorStyle]string{
	CursorBlock:      "block",
	CursorUnderscore: "underscore",
	CursorPipe:       "pipe",
}

var cursorGlyph = map[CursorStyle]string{
	CursorBlock:      "█",
	CursorUnderscore: "_",
	CursorPipe:       "|",
}

func (c CursorStyle) String() string {
	if name, ok := cursorName[c]; ok {
		return name
	}
	return cursorName[CursorBlock]
}

// Glyph is the character drawn for the cursor. Unknown styles draw a block.
func (c CursorStyle) Glyph() string {
	if glyph, ok := cursorGlyph[c]; ok {
		return glyph
	}
	return cursorGlyph[CursorBlock]
}

// ParseCursorStyle maps a style name to its CursorStyle.
func ParseCursorStyle(s string) (CursorStyle, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "block":
		return CursorBlock, true
	case "underscore", "underline":
		return CursorUnderscore, true
	case "pipe", "bar":
		return CursorPipe, true
	}
	return CursorBlock, false
}
