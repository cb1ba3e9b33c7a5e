package models

import "fmt"

// Effort is the coarse work-intensity hint attached to every query.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// DefaultEffort is selected when the input form mounts.
const DefaultEffort = EffortMedium

// Efforts lists every effort level in display order.
var Efforts = []Effort{EffortLow, EffortMedium, EffortHigh}

func ParseEffort(s string) (Effort, error) {
	for _, e := range Efforts {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown effort %q", s)
}

func (e Effort) Title() string {
	switch e {
	case EffortLow:
		return "Low"
	case EffortMedium:
		return "Medium"
	case EffortHigh:
		return "High"
	default:
		return string(e)
	}
}

// Next returns the following level, wrapping from high back to low.
func (e Effort) Next() Effort {
	for i, candidate := range Efforts {
		if candidate == e {
			return Efforts[(i+1)%len(Efforts)]
		}
	}
	return DefaultEffort
}
