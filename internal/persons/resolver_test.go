package persons

import "testing"

func TestCompare(t *testing.T) {
	target := Person{ID: 1, Name: "Isaac Newton", BirthYear: year(1643), IsScientist: true, IsThinker: true}

	tests := []struct {
		name     string
		guessed  Person
		correct  bool
		yearHint YearHint
	}{
		{
			name:     "exact match",
			guessed:  target,
			correct:  true,
			yearHint: YearMatch,
		},
		{
			name:     "target born earlier",
			guessed:  Person{ID: 2, Name: "Marie Curie", BirthYear: year(1867), IsScientist: true},
			correct:  false,
			yearHint: YearEarlier,
		},
		{
			name:     "target born later",
			guessed:  Person{ID: 3, Name: "Shakespeare", BirthYear: year(1564), IsLiterary: true},
			correct:  false,
			yearHint: YearLater,
		},
		{
			name:     "guessed year unknown",
			guessed:  Person{ID: 4, Name: "Homer", IsLiterary: true},
			correct:  false,
			yearHint: YearUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Compare(target, tt.guessed)
			if c.Correct != tt.correct {
				t.Errorf("Correct = %v, want %v", c.Correct, tt.correct)
			}
			if c.BirthYear != tt.yearHint {
				t.Errorf("BirthYear = %q, want %q", c.BirthYear, tt.yearHint)
			}
		})
	}
}

func TestCompare_TargetYearUnknown(t *testing.T) {
	target := Person{ID: 1, Name: "Laozi", IsThinker: true}
	guessed := Person{ID: 2, Name: "Plato", BirthYear: year(-427), IsThinker: true}

	c := Compare(target, guessed)
	if c.BirthYear != YearUnknown {
		t.Errorf("BirthYear = %q, want %q when target year is missing", c.BirthYear, YearUnknown)
	}
	if !c.ThinkerMatch {
		t.Error("ThinkerMatch should be true")
	}
	if c.LiteraryMatch != true {
		t.Error("LiteraryMatch should be true when both flags are false")
	}
}

func TestCompare_CategoryFlags(t *testing.T) {
	target := Person{ID: 1, IsLiterary: true, IsPolitical: false, IsThinker: true, IsScientist: false}
	guessed := Person{ID: 2, IsLiterary: false, IsPolitical: false, IsThinker: true, IsScientist: true}

	c := Compare(target, guessed)
	if c.LiteraryMatch {
		t.Error("LiteraryMatch should be false")
	}
	if !c.PoliticalMatch {
		t.Error("PoliticalMatch should be true")
	}
	if !c.ThinkerMatch {
		t.Error("ThinkerMatch should be true")
	}
	if c.ScientistMatch {
		t.Error("ScientistMatch should be false")
	}
}
