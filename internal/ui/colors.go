// Package ui holds the firewall CLI's terminal output helpers: color
// palette, the severity-gated shutdown summary, and the tabular report
// renderer. It is internal to this CLI and opinionated for it.
package ui

import "github.com/fatih/color"

// ColorFn formats like fmt.Sprintf but applies a fixed color/attribute set.
type ColorFn func(format string, a ...interface{}) string

// TerminalColors is the fixed palette used throughout the CLI.
type TerminalColors struct {
	Normal ColorFn
	Red    ColorFn
	Yellow ColorFn
	Cyan   ColorFn
	Green  ColorFn
	Bold   ColorFn
	Dim    ColorFn
}

// Colors is the package-wide palette instance.
var Colors = TerminalColors{
	Normal: color.New().SprintfFunc(),
	Red:    color.New(color.FgRed, color.Bold).SprintfFunc(),
	Yellow: color.New(color.FgYellow).SprintfFunc(),
	Cyan:   color.New(color.FgCyan).SprintfFunc(),
	Green:  color.New(color.FgGreen).SprintfFunc(),
	Bold:   color.New(color.Bold).SprintfFunc(),
	Dim:    color.New(color.Faint).SprintfFunc(),
}
