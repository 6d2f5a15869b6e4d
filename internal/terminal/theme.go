package terminal

type Theme int

const (
	ThemeMatrix Theme = iota
	ThemeCyber
	ThemeHacker
)

var themeName = map[Theme]string{
	ThemeMatrix: "matrix",
	ThemeCyber:  "cyber",
	ThemeHacker: "hacker",
}

var themePrompt = map[Theme]string{
	ThemeMatrix: "matrix@terminal:~$",
	ThemeCyber:  "cyber@net:/#",
	ThemeHacker: "root@system:~#",
}

var themeLabel = map[Theme]string{
	ThemeMatrix: "MATRIX TERMINAL v3.14",
	ThemeCyber:  "CYBERDECK INTERFACE v2.0",
	ThemeHacker: "SHADOW CONSOLE v1.1",
}

// Themes lists every theme in display order.
func Themes() []Theme {
	return []Theme{ThemeMatrix, ThemeCyber, ThemeHacker}
}

func (t Theme) String() string {
	if name, ok := themeName[t]; ok {
		return name
	}
	return themeName[ThemeMatrix]
}

// Prompt is the label echoed in front of every submitted command.
func (t Theme) Prompt() string {
	if prompt, ok := themePrompt[t]; ok {
		return prompt
	}
	return themePrompt[ThemeMatrix]
}

// Label is the window title shown in the terminal header.
func (t Theme) Label() string {
	if label, ok := themeLabel[t]; ok {
		return label
	}
	return themeLabel[ThemeMatrix]
}
