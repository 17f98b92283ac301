package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"guesswho/internal/persons"
)

// PersonCatalog serves the person catalog from Postgres. It satisfies
// persons.Catalog.
type PersonCatalog struct {
	db *DB
}

func NewPersonCatalog(d *DB) *PersonCatalog {
	return &PersonCatalog{db: d}
}

func scanPerson(row interface{ Scan(...any) error }) (persons.Person, error) {
	var p persons.Person
	var birthYear sql.NullInt64
	if err := row.Scan(&p.ID, &p.Name, &birthYear, &p.IsLiterary, &p.IsPolitical, &p.IsThinker, &p.IsScientist); err != nil {
		return persons.Person{}, err
	}
	if birthYear.Valid {
		y := int(birthYear.Int64)
		p.BirthYear = &y
	}
	return p, nil
}

func (c *PersonCatalog) Search(name string) ([]persons.Person, error) {
	rows, err := c.db.conn.Query(`
		SELECT id, name, birth_year, is_literary, is_political, is_thinker, is_scientist
		FROM persons
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT 50
	`, name)
	if err != nil {
		return nil, fmt.Errorf("searching persons: %w", err)
	}
	defer rows.Close()

	matches := make([]persons.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		matches = append(matches, p)
	}
	return matches, rows.Err()
}

func (c *PersonCatalog) Random() (persons.Person, error) {
	p, err := scanPerson(c.db.conn.QueryRow(`
		SELECT id, name, birth_year, is_literary, is_political, is_thinker, is_scientist
		FROM persons
		ORDER BY random()
		LIMIT 1
	`))
	if errors.Is(err, sql.ErrNoRows) {
		return persons.Person{}, persons.ErrEmptyCatalog
	}
	if err != nil {
		return persons.Person{}, fmt.Errorf("picking random person: %w", err)
	}
	return p, nil
}

func (c *PersonCatalog) Get(id int64) (persons.Person, error) {
	p, err := scanPerson(c.db.conn.QueryRow(`
		SELECT id, name, birth_year, is_literary, is_political, is_thinker, is_scientist
		FROM persons
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return persons.Person{}, persons.ErrNotFound
	}
	if err != nil {
		return persons.Person{}, fmt.Errorf("getting person %d: %w", id, err)
	}
	return p, nil
}

func (c *PersonCatalog) Add(ps ...persons.Person) ([]persons.Person, error) {
	added := make([]persons.Person, 0, len(ps))
	for _, p := range ps {
		var birthYear sql.NullInt64
		if p.BirthYear != nil {
			birthYear = sql.NullInt64{Int64: int64(*p.BirthYear), Valid: true}
		}
		err := c.db.conn.QueryRow(`
			INSERT INTO persons (name, birth_year, is_literary, is_political, is_thinker, is_scientist)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, p.Name, birthYear, p.IsLiterary, p.IsPolitical, p.IsThinker, p.IsScientist).Scan(&p.ID)
		if err != nil {
			return added, fmt.Errorf("inserting person %q: %w", p.Name, err)
		}
		added = append(added, p)
	}
	return added, nil
}

// SeedIfEmpty loads the built-in person set into an empty catalog table.
func (c *PersonCatalog) SeedIfEmpty() error {
	var count int
	if err := c.db.conn.QueryRow(`SELECT count(*) FROM persons`).Scan(&count); err != nil {
		return fmt.Errorf("counting persons: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := c.Add(persons.Seed()...); err != nil {
		return err
	}
	log.Printf("[DB] Seeded person catalog\n")
	return nil
}
