package persons

// YearHint is the three-way birth-year outcome of a comparison. Unknown means
// at least one side has no recorded year; it is never coerced to a default.
type YearHint string

const (
	YearUnknown YearHint = "UNKNOWN"
	YearMatch   YearHint = "MATCH"
	YearEarlier YearHint = "TARGET_EARLIER"
	YearLater   YearHint = "TARGET_LATER"
)

// Comparison holds the per-category outcome of one guess against the target.
type Comparison struct {
	Correct        bool     `json:"correct"`
	BirthYear      YearHint `json:"birthYear"`
	LiteraryMatch  bool     `json:"literaryMatch"`
	PoliticalMatch bool     `json:"politicalMatch"`
	ThinkerMatch   bool     `json:"thinkerMatch"`
	ScientistMatch bool     `json:"scientistMatch"`
}

// Compare evaluates a guessed person against the target.
func Compare(target, guessed Person) Comparison {
	c := Comparison{
		Correct:        target.ID == guessed.ID,
		BirthYear:      YearUnknown,
		LiteraryMatch:  target.IsLiterary == guessed.IsLiterary,
		PoliticalMatch: target.IsPolitical == guessed.IsPolitical,
		ThinkerMatch:   target.IsThinker == guessed.IsThinker,
		ScientistMatch: target.IsScientist == guessed.IsScientist,
	}
	if target.BirthYear != nil && guessed.BirthYear != nil {
		switch {
		case *target.BirthYear == *guessed.BirthYear:
			c.BirthYear = YearMatch
		case *target.BirthYear < *guessed.BirthYear:
			c.BirthYear = YearEarlier
		default:
			c.BirthYear = YearLater
		}
	}
	return c
}
