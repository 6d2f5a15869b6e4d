package terminal

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Command is one resolved line of user input. The set of implementations is closed.
type Command interface {
	// Output returns the lines appended to the transcript once the command resolves.
	Output() []string
	command()
}

type (
	Help         struct{}
	Clear        struct{}
	Status       struct{}
	Matrix       struct{}
	SetTheme     struct{ Theme Theme }
	InvalidTheme struct{}
	Scan         struct{}
	Decrypt      struct{}
	Exit         struct{}
	Unknown      struct{ Raw string }
)

func (Help) command()         {}
func (Clear) command()        {}
func (Status) command()       {}
func (Matrix) command()       {}
func (SetTheme) command()     {}
func (InvalidTheme) command() {}
func (Scan) command()         {}
func (Decrypt) command()      {}
func (Exit) command()         {}
func (Unknown) command()      {}

func (Help) Output() []string {
	return []string{
		"Available commands:",
		"- help: Display this help message",
		"- clear: Clear the terminal",
		"- status: Check system status",
		"- matrix: Display Matrix information",
		"- theme [matrix|cyber|hacker]: Change terminal theme",
		"- scan: Scan for nearby systems",
		"- decrypt: Attempt to decrypt current session",
		"- exit: Exit the terminal",
	}
}

// Output of Clear is empty; the session replaces the transcript instead of appending.
func (Clear) Output() []string { return nil }

func (Status) Output() []string {
	return []string{
		"System Status: Online",
		"Connection: Secure",
		"Signal Strength: Optimal",
		"Trace Program: Not Detected",
		"Encryption: AES-256",
		"Proxy Chains: 7 active nodes",
		"VPN Tunnel: Established",
	}
}

func (Matrix) Output() []string {
	return []string{
		"The Matrix is a system, Neo. That system is our enemy.",
		"When you're inside, you look around, what do you see?",
		"Businessmen, teachers, lawyers, carpenters.",
		"The very minds of the people we are trying to save.",
	}
}

func (c SetTheme) Output() []string {
	return []string{"Terminal theme changed to: " + c.Theme.String()}
}

func (InvalidTheme) Output() []string {
	return []string{"Invalid theme. Available themes: matrix, cyber, hacker"}
}

func (Scan) Output() []string {
	return []string{
		"Scanning network...",
		"Found 3 systems:",
		"- Mainframe (192.168.1.1) - Secured",
		"- Sentinel (192.168.1.2) - Vulnerable",
		"- Oracle (192.168.1.3) - Unknown",
	}
}

func (Decrypt) Output() []string {
	return []string{
		"Attempting decryption...",
		"Progress: ██████████ 100%",
		"Decryption successful",
		"Access granted to level 2 systems",
	}
}

func (Exit) Output() []string {
	return []string{"Exiting terminal...", "Connection closed."}
}

func (c Unknown) Output() []string {
	return []string{"Command not recognized: " + c.Raw}
}

// Parse resolves a trimmed command. Matching lower-cases the whole string;
// "theme" followed by anything other than an exact theme name is an invalid theme.
func Parse(command string) Command {
	key := cases.Lower(language.Und).String(command)

	switch key {
	case "help":
		return Help{}
	case "clear":
		return Clear{}
	case "status":
		return Status{}
	case "matrix":
		return Matrix{}
	case "scan":
		return Scan{}
	case "decrypt":
		return Decrypt{}
	case "exit":
		return Exit{}
	}

	for _, theme := range Themes() {
		if key == "theme "+theme.String() {
			return SetTheme{Theme: theme}
		}
	}

	if strings.HasPrefix(key, "theme") {
		return InvalidTheme{}
	}

	return Unknown{Raw: command}
}

// Vocabulary lists every command string the interpreter accepts verbatim.
func Vocabulary() []string {
	words := []string{"help", "clear", "status", "matrix"}
	for _, theme := range Themes() {
		words = append(words, "theme "+theme.String())
	}
	return append(words, "scan", "decrypt", "exit")
}
