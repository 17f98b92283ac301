package persons

func year(y int) *int { return &y }

// Seed returns the built-in catalog used when no database is configured.
func Seed() []Person {
	return []Person{
		{Name: "William Shakespeare", BirthYear: year(1564), IsLiterary: true},
		{Name: "Isaac Newton", BirthYear: year(1643), IsScientist: true, IsThinker: true},
		{Name: "Marie Curie", BirthYear: year(1867), IsScientist: true},
		{Name: "Abraham Lincoln", BirthYear: year(1809), IsPolitical: true},
		{Name: "Confucius", BirthYear: year(-551), IsThinker: true},
		{Name: "Jane Austen", BirthYear: year(1775), IsLiterary: true},
		{Name: "Albert Einstein", BirthYear: year(1879), IsScientist: true, IsThinker: true},
		{Name: "Winston Churchill", BirthYear: year(1874), IsPolitical: true, IsLiterary: true},
		{Name: "Plato", BirthYear: year(-427), IsThinker: true},
		{Name: "Charles Darwin", BirthYear: year(1809), IsScientist: true},
		{Name: "Leo Tolstoy", BirthYear: year(1828), IsLiterary: true, IsThinker: true},
		{Name: "Cleopatra", BirthYear: year(-69), IsPolitical: true},
		{Name: "Ada Lovelace", BirthYear: year(1815), IsScientist: true},
		{Name: "Homer", IsLiterary: true},
		{Name: "Laozi", IsThinker: true},
		{Name: "Napoleon Bonaparte", BirthYear: year(1769), IsPolitical: true},
	}
}
