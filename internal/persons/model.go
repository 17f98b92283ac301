package persons

// Person is one catalog record. BirthYear is nil when the year is not known.
type Person struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	BirthYear   *int   `json:"birthYear,omitempty"`
	IsLiterary  bool   `json:"isLiterary"`
	IsPolitical bool   `json:"isPolitical"`
	IsThinker   bool   `json:"isThinker"`
	IsScientist bool   `json:"isScientist"`
}
