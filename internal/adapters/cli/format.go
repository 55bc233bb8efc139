package cli

import (
	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	blue   = color.New(color.FgBlue)
	faint  = color.New(color.Faint)
)

// statusBadge colors a status label by its status key.
func statusBadge(status, label string) string {
	if label == "" {
		label = status
	}
	switch status {
	case "active", "completed", "confirmed", "paid":
		return green.Sprint(label)
	case "open", "in-progress", "pending":
		return blue.Sprint(label)
	case "delayed":
		return yellow.Sprint(label)
	case "inactive", "cancelled", "failed":
		return red.Sprint(label)
	default:
		return label
	}
}

func orDash(s string) string {
	if s == "" {
		return faint.Sprint("-")
	}
	return s
}

// shortDate trims an RFC3339 timestamp to its date.
func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
