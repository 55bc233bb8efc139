package cli

import "github.com/fatih/color"

var (
	bold = color.New(color.Bold).SprintFunc()
	dim  = color.New(color.Faint).SprintFunc()
	warn = color.New(color.FgYellow).SprintFunc()
	good = color.New(color.FgGreen).SprintFunc()
)
