package services

import "strings"

// Severity bands for the dominant emotion's intensity.
const (
	severityLow      = "low"
	severityModerate = "moderate"
	severityHigh     = "high"
)

var severityPrefix = map[string]string{
	severityLow:      "Mild intensity detected — a short break may help.",
	severityModerate: "Moderate intensity — try 5-10 minutes of intentional grounding or breathing.",
	severityHigh:     "High intensity — prioritize calming actions now.",
}

// GenerateTips returns coping suggestions for an emotion at a given
// intensity. The first line is a severity prefix; the rest come from a
// static per-emotion lookup, with extra suggestions for high severity.
func GenerateTips(emotion string, intensity float64) []string {
	emotion = strings.ToLower(emotion)

	var severity string
	switch {
	case intensity >= 70:
		severity = severityHigh
	case intensity >= 40:
		severity = severityModerate
	default:
		severity = severityLow
	}

	var tips []string

	switch emotion {
	case "happy":
		tips = append(tips,
			"Nice! Keep doing what you're doing — try to capture this moment.",
			"Share your happiness with someone or jot down three things you're grateful for.",
		)
	case "sad":
		tips = append(tips,
			"Try writing about what's bothering you — journaling often helps.",
			"Connect with a friend or take a short walk to change environment.",
		)
		if severity == severityHigh {
			tips = append(tips, "If sadness is intense or persistent, consider talking to a mental health professional.")
		}
	case "angry":
		tips = append(tips,
			"Pause: take 5 slow deep breaths (inhale 4s, hold 4s, exhale 6s).",
			"Step away from the trigger for a few minutes — a short walk can help calm your body.",
		)
		if severity == severityHigh {
			tips = append(tips, "Use progressive muscle relaxation or count back from 100 to refocus.")
		}
	case "surprise":
		tips = append(tips,
			"Take a moment to orient yourself and label what surprised you.",
			"If surprised positively, jot it down; if negatively, take a deep breath and assess.",
		)
	case "fear":
		tips = append(tips,
			"Grounding: name 5 things you can see, 4 you can touch, 3 you can hear.",
			"Try controlled breathing and remind yourself you are safe right now.",
		)
		if severity == severityHigh {
			tips = append(tips, "If fear/anxiety is frequent, consider talking to a counselor.")
		}
	case "disgust":
		tips = append(tips,
			"Shift attention to something neutral or pleasant (favorite song, gentle stretch).",
			"Practice slow breathing and try to reframe the thought causing disgust.",
		)
	default:
		tips = append(tips, "You're neutral — maybe try a short activity you enjoy (music, stretch, drink water).")
	}

	return append([]string{severityPrefix[severity]}, tips...)
}
