package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs a professional ASCII art banner for Inkwell.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Teal/Cyan)
	s1 := termenv.String("  _____       _                _ _ ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String(" |_   _|     | |              | | |").Foreground(p.Color("#22d3ee"))
	s3 := termenv.String("   | |  _ __ | | ____      __ | | |").Foreground(p.Color("#38bdf8"))
	s4 := termenv.String("   | | | '_ \\| |/ /\\ \\ /\\ / _ \\ | |").Foreground(p.Color("#60a5fa"))
	s5 := termenv.String("  _| |_| | | |   <  \\ V  V /  __/ | |").Foreground(p.Color("#818cf8"))
	s6 := termenv.String(" |_____|_| |_|_|\\_\\  \\_/\\_/ \\___|_|_|").Foreground(p.Color("#a78bfa"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println(termenv.String(" v" + version).Faint())
	fmt.Println()
}
