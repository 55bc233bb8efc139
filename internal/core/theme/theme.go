// Package theme contains the pure color rules behind per-user theming:
// default palettes, light/dark detection, derived text colors and HSL
// conversion. Nothing here touches storage.
package theme

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Case and task status keys used in the status color maps.
const (
	CaseOpen      = "open"
	CaseCompleted = "completed"

	TaskInProgress = "in-progress"
	TaskDelayed    = "delayed"
	TaskCompleted  = "completed"
)

// Status views shown on the dashboard status card.
const (
	ViewCases = "cases"
	ViewTasks = "tasks"
)

// Text classes applied over the header background.
const (
	TextClassDark  = "text-gray-800"
	TextClassLight = "text-white"
)

// CaseStatusColors holds the badge colors of case statuses.
type CaseStatusColors struct {
	Open      string `json:"open"`
	Completed string `json:"completed"`
}

// TaskStatusColors holds the badge colors of task statuses.
type TaskStatusColors struct {
	InProgress string `json:"in-progress"`
	Delayed    string `json:"delayed"`
	Completed  string `json:"completed"`
}

// Settings is the full theme of one user. It is stored as JSON on the
// profile row and key by key in the local store.
type Settings struct {
	HeaderColor      string           `json:"headerColor,omitempty"`
	AvatarColor      string           `json:"avatarColor,omitempty"`
	TextColor        string           `json:"textColor,omitempty"`
	MainColor        string           `json:"mainColor,omitempty"`
	ButtonColor      string           `json:"buttonColor,omitempty"`
	CaseStatusColors CaseStatusColors `json:"caseStatusColors"`
	TaskStatusColors TaskStatusColors `json:"taskStatusColors"`
}

// Defaults returns the palette used when nothing is stored.
func Defaults() Settings {
	return Settings{
		HeaderColor: "#8B9474",
		AvatarColor: "#F5A65B",
		TextColor:   TextClassLight,
		MainColor:   "#F3F4F6",
		ButtonColor: "#8B9474",
		CaseStatusColors: CaseStatusColors{
			Open:      "#D3E4FD",
			Completed: "#F2FCE2",
		},
		TaskStatusColors: TaskStatusColors{
			InProgress: "#D3E4FD",
			Delayed:    "#FFCCCB",
			Completed:  "#F2FCE2",
		},
	}
}

// GlobalDefaults returns the palette a reset restores, and the status view
// it selects.
func GlobalDefaults() (Settings, string) {
	return Settings{
		HeaderColor: "#838580",
		AvatarColor: "#F5A65B",
		TextColor:   TextClassDark,
		MainColor:   "#F3F4F6",
		ButtonColor: "#6CAE75",
		CaseStatusColors: CaseStatusColors{
			Open:      "#61a0ff",
			Completed: "#c2ff61",
		},
		TaskStatusColors: TaskStatusColors{
			InProgress: "#6da7fd",
			Delayed:    "#ff8785",
			Completed:  "#c0ff5c",
		},
	}, ViewCases
}

// WithDefaults fills every empty field from Defaults.
func (s Settings) WithDefaults() Settings {
	d := Defaults()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&s.HeaderColor, d.HeaderColor)
	fill(&s.AvatarColor, d.AvatarColor)
	fill(&s.TextColor, d.TextColor)
	fill(&s.MainColor, d.MainColor)
	fill(&s.ButtonColor, d.ButtonColor)
	fill(&s.CaseStatusColors.Open, d.CaseStatusColors.Open)
	fill(&s.CaseStatusColors.Completed, d.CaseStatusColors.Completed)
	fill(&s.TaskStatusColors.InProgress, d.TaskStatusColors.InProgress)
	fill(&s.TaskStatusColors.Delayed, d.TaskStatusColors.Delayed)
	fill(&s.TaskStatusColors.Completed, d.TaskStatusColors.Completed)
	return s
}

// IsZero reports whether no field is set.
func (s Settings) IsZero() bool {
	return s == Settings{}
}

// WithHeaderColor sets the header color and derives the text class from it.
func (s Settings) WithHeaderColor(hex string) Settings {
	s.HeaderColor = hex
	s.TextColor = HeaderTextClass(hex)
	return s
}

// WithCaseStatusColor sets the color of one case status.
func (s Settings) WithCaseStatusColor(status, hex string) (Settings, error) {
	switch status {
	case CaseOpen:
		s.CaseStatusColors.Open = hex
	case CaseCompleted:
		s.CaseStatusColors.Completed = hex
	default:
		return s, fmt.Errorf("unknown case status %q", status)
	}
	return s, nil
}

// WithTaskStatusColor sets the color of one task status.
func (s Settings) WithTaskStatusColor(status, hex string) (Settings, error) {
	switch status {
	case TaskInProgress:
		s.TaskStatusColors.InProgress = hex
	case TaskDelayed:
		s.TaskStatusColors.Delayed = hex
	case TaskCompleted:
		s.TaskStatusColors.Completed = hex
	default:
		return s, fmt.Errorf("unknown task status %q", status)
	}
	return s, nil
}

// ValidView reports whether view is a known status view.
func ValidView(view string) bool {
	return view == ViewCases || view == ViewTasks
}

// NormalizeHex validates a #RRGGBB or #RGB color and returns it as
// upper-case #RRGGBB. The leading # is optional on input.
func NormalizeHex(hex string) (string, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return "", fmt.Errorf("invalid color %q: expected #RRGGBB", hex)
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return "", fmt.Errorf("invalid color %q: expected #RRGGBB", hex)
	}
	return "#" + strings.ToUpper(h), nil
}

// rgb parses the first six hex digits after an optional #. Unparsable
// channels read as zero.
func rgb(hex string) (r, g, b float64) {
	h := strings.TrimPrefix(hex, "#")
	channel := func(i int) float64 {
		if len(h) < i+2 {
			return 0
		}
		v, err := strconv.ParseUint(h[i:i+2], 16, 8)
		if err != nil {
			return 0
		}
		return float64(v)
	}
	return channel(0), channel(2), channel(4)
}

// Luminance is the perceived brightness of a hex color in [0, 1].
func Luminance(hex string) float64 {
	r, g, b := rgb(hex)
	return (0.299*r + 0.587*g + 0.114*b) / 255
}

// IsLightColor reports whether hex is light enough to need dark text.
func IsLightColor(hex string) bool {
	return Luminance(hex) > 0.5
}

// TextColorFor returns the text color to draw over background bg.
func TextColorFor(bg string) string {
	if IsLightColor(bg) {
		return "#1a1a1a"
	}
	return "#ffffff"
}

// HeaderTextClass returns the text class used over a header color.
func HeaderTextClass(header string) string {
	if IsLightColor(header) {
		return TextClassDark
	}
	return TextClassLight
}

// HexToHSL converts a hex color to "H S% L%" with rounded components.
func HexToHSL(hex string) string {
	r, g, b := rgb(hex)
	r, g, b = r/255, g/255, b/255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	var h, s float64
	if maxC != minC {
		d := maxC - minC
		if l > 0.5 {
			s = d / (2 - maxC - minC)
		} else {
			s = d / (maxC + minC)
		}
		switch maxC {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return fmt.Sprintf("%d %d%% %d%%", round(h*360), round(s*100), round(l*100))
}

// round matches half-up rounding of the UI layer.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
