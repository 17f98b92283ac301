package persons

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
)

// ErrNotFound is returned for lookups of unknown person IDs.
var ErrNotFound = errors.New("person not found")

// ErrEmptyCatalog is returned by Random when no persons are loaded.
var ErrEmptyCatalog = errors.New("person catalog is empty")

// Catalog is the query contract the game consumes. Implementations: the
// Postgres catalog in internal/db and the in-memory MemoryCatalog below.
type Catalog interface {
	Search(name string) ([]Person, error)
	Random() (Person, error)
	Get(id int64) (Person, error)
	Add(persons ...Person) ([]Person, error)
}

// MemoryCatalog serves the catalog from a map. Used when no database is
// configured and throughout the tests.
type MemoryCatalog struct {
	mu      sync.Mutex
	persons map[int64]Person
	ids     []int64
	nextID  int64
}

func NewMemoryCatalog(seed ...Person) *MemoryCatalog {
	c := &MemoryCatalog{
		persons: make(map[int64]Person),
		nextID:  1,
	}
	c.Add(seed...)
	return c
}

func (c *MemoryCatalog) Add(persons ...Person) ([]Person, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	added := make([]Person, 0, len(persons))
	for _, p := range persons {
		if p.ID == 0 {
			p.ID = c.nextID
		}
		if p.ID >= c.nextID {
			c.nextID = p.ID + 1
		}
		if _, exists := c.persons[p.ID]; !exists {
			c.ids = append(c.ids, p.ID)
		}
		c.persons[p.ID] = p
		added = append(added, p)
	}
	return added, nil
}

func (c *MemoryCatalog) Search(name string) ([]Person, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	needle := strings.ToLower(strings.TrimSpace(name))
	matches := make([]Person, 0)
	for _, id := range c.ids {
		p := c.persons[id]
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (c *MemoryCatalog) Random() (Person, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.ids) == 0 {
		return Person{}, ErrEmptyCatalog
	}
	return c.persons[c.ids[rand.Intn(len(c.ids))]], nil
}

func (c *MemoryCatalog) Get(id int64) (Person, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.persons[id]
	if !ok {
		return Person{}, ErrNotFound
	}
	return p, nil
}
