package persons

import "testing"

func TestMemoryCatalog_Search(t *testing.T) {
	c := NewMemoryCatalog(Seed()...)

	matches, err := c.Search("newton")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].Name != "Isaac Newton" {
		t.Errorf("Search(newton) = %+v, want Isaac Newton", matches)
	}

	matches, _ = c.Search("zzz-no-such-person")
	if len(matches) != 0 {
		t.Errorf("Search for nonsense returned %d matches, want 0", len(matches))
	}
}

func TestMemoryCatalog_Get(t *testing.T) {
	c := NewMemoryCatalog()
	added, err := c.Add(Person{Name: "Plato", IsThinker: true})
	if err != nil {
		t.Fatal(err)
	}

	got, err := c.Get(added[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Plato" {
		t.Errorf("Name = %q, want Plato", got.Name)
	}

	if _, err := c.Get(9999); err != ErrNotFound {
		t.Errorf("Get(9999) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryCatalog_Random(t *testing.T) {
	empty := NewMemoryCatalog()
	if _, err := empty.Random(); err != ErrEmptyCatalog {
		t.Errorf("Random() on empty catalog error = %v, want ErrEmptyCatalog", err)
	}

	c := NewMemoryCatalog(Seed()...)
	for i := 0; i < 20; i++ {
		p, err := c.Random()
		if err != nil {
			t.Fatal(err)
		}
		if p.ID == 0 || p.Name == "" {
			t.Fatalf("Random() returned zero-value person: %+v", p)
		}
	}
}

func TestMemoryCatalog_AddAssignsIDs(t *testing.T) {
	c := NewMemoryCatalog()
	added, _ := c.Add(Person{Name: "A"}, Person{Name: "B"})
	if added[0].ID == added[1].ID {
		t.Errorf("Add assigned duplicate IDs: %d", added[0].ID)
	}
}
