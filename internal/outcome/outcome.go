package outcome

// Outcome grades a query by comparing what the filter predicted with what the
// reference set actually holds.
type Outcome int

const (
	// None means no query has been graded yet.
	None Outcome = iota
	TruePositive
	FalsePositive
	TrueNegative
	// FalseNegative cannot happen while items are never deleted: every
	// inserted item enables all of its slots. It is still classified so an
	// inconsistent hash configuration surfaces instead of being masked.
	FalseNegative
)

type Severity int

const (
	Neutral Severity = iota
	OK
	Mistake
)

// Classify is total over the four (predicted, actual) combinations.
func Classify(predicted, actual bool) Outcome {
	switch {
	case predicted && actual:
		return TruePositive
	case predicted && !actual:
		return FalsePositive
	case !predicted && !actual:
		return TrueNegative
	default:
		return FalseNegative
	}
}

func (o Outcome) String() string {
	switch o {
	case None:
		return "None"
	case TruePositive:
		return "TruePositive"
	case FalsePositive:
		return "FalsePositive"
	case TrueNegative:
		return "TrueNegative"
	case FalseNegative:
		return "FalseNegative"
	default:
		return "Unknown"
	}
}

// Label is the sentence shown to the student next to the outcome.
func (o Outcome) Label() string {
	switch o {
	case TruePositive:
		return "OK. The element is present and the filter guessed right"
	case FalsePositive:
		return "MISTAKE. The element is absent but the filter says it is present"
	case TrueNegative:
		return "OK. The element is absent and the filter agrees"
	case FalseNegative:
		return "MISTAKE. The element is present but the filter says it is absent " +
			"(only possible if something was deleted from the filter)"
	default:
		return "Run a query first"
	}
}

func (o Outcome) Severity() Severity {
	switch o {
	case TruePositive, TrueNegative:
		return OK
	case FalsePositive, FalseNegative:
		return Mistake
	default:
		return Neutral
	}
}

func (s Severity) String() string {
	switch s {
	case OK:
		return "ok"
	case Mistake:
		return "error"
	default:
		return "neutral"
	}
}

// Verdict is what the filter alone claims about text.
func Verdict(text string, predicted bool) string {
	if predicted {
		return "element " + text + " may be present"
	}
	return "element " + text + " is definitely not present"
}
