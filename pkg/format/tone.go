package format

// Tone is the colour tier a percentage is rendered with.
type Tone int

const (
	ToneDanger Tone = iota
	ToneWarning
	ToneInfo
	ToneSuccess
)

var toneNames = map[Tone]string{
	ToneDanger:  "danger",
	ToneWarning: "warning",
	ToneInfo:    "info",
	ToneSuccess: "success",
}

func (t Tone) String() string {
	if s, ok := toneNames[t]; ok {
		return s
	}
	return "unknown"
}

// Emphasized reports whether the tier is rendered in bold.
func (t Tone) Emphasized() bool { return t == ToneSuccess }

// Tier classifies a percentage: >=90 success, >=70 info, >=50 warning, else danger.
func Tier(v float64) Tone {
	switch {
	case v >= 90:
		return ToneSuccess
	case v >= 70:
		return ToneInfo
	case v >= 50:
		return ToneWarning
	default:
		return ToneDanger
	}
}
