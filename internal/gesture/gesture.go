// Package gesture classifies raw click events into user intents without
// depending on any UI event system. A single click inside the window means
// navigate-to-detail; a second click on the same target inside the window
// collapses both into a favourite toggle.
package gesture

import "time"

const DefaultWindow = 200 * time.Millisecond

type Intent int

const (
	IntentNavigate Intent = iota
	IntentToggleFavourite
)

func (i Intent) String() string {
	switch i {
	case IntentNavigate:
		return "navigate"
	case IntentToggleFavourite:
		return "toggle_favourite"
	default:
		return "unknown"
	}
}

// Click is one raw click on a target (a movie card, keyed by movie id).
type Click struct {
	TargetID int
	At       time.Time
}

// Classified is an intent attributed to a target.
type Classified struct {
	TargetID int
	Intent   Intent
	At       time.Time
}

// Classify is a pure function of a click sequence and a disambiguation
// window. Two clicks on the same target within the window collapse into
// one IntentToggleFavourite; everything else resolves to IntentNavigate
// once its window expires. The input must be ordered by time.
func Classify(clicks []Click, window time.Duration) []Classified {
	if window <= 0 {
		window = DefaultWindow
	}

	var out []Classified
	var pending *Click

	flush := func() {
		if pending != nil {
			out = append(out, Classified{
				TargetID: pending.TargetID,
				Intent:   IntentNavigate,
				At:       pending.At,
			})
			pending = nil
		}
	}

	for i := range clicks {
		click := clicks[i]
		if pending == nil {
			pending = &click
			continue
		}

		sameTarget := pending.TargetID == click.TargetID
		inWindow := click.At.Sub(pending.At) <= window

		if sameTarget && inWindow {
			out = append(out, Classified{
				TargetID: click.TargetID,
				Intent:   IntentToggleFavourite,
				At:       click.At,
			})
			pending = nil
			continue
		}

		flush()
		pending = &click
	}
	flush()

	return out
}
