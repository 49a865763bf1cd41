package activity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category groups activities for rule matching.
type Category string

const (
	Outdoor Category = "outdoor"
	Indoor  Category = "indoor"
	Sports  Category = "sports"
)

func (c Category) validate() error {
	switch c {
	case Outdoor, Indoor, Sports:
		return nil
	}
	return invalidEnum("category", string(c), string(Outdoor), string(Indoor), string(Sports))
}

// Activity is one catalog entry.
type Activity struct {
	Name        string   `yaml:"name"`
	Category    Category `yaml:"category"`
	BaseScore   int      `yaml:"base_score"`
	Description string   `yaml:"description"`
}

// Validate checks the category enumeration and the base score bounds.
func (a Activity) Validate() error {
	if a.Name == "" {
		return &ConfigurationError{Field: "name", Value: a.Name, Reason: "must not be empty"}
	}
	if err := a.Category.validate(); err != nil {
		return err
	}
	if a.BaseScore < 0 || a.BaseScore > 100 {
		return &ConfigurationError{Field: "base_score", Value: fmt.Sprintf("%d", a.BaseScore), Reason: "must be within [0,100]"}
	}
	return nil
}

// Catalog is the ordered activity registry. Order is significant: it breaks score ties.
type Catalog []Activity

// Validate checks every entry and the catalog-wide name uniqueness.
func (c Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c))
	for _, a := range c {
		if err := a.Validate(); err != nil {
			return err
		}
		if _, dup := seen[a.Name]; dup {
			return &ConfigurationError{Field: "name", Value: a.Name, Reason: "duplicate activity name"}
		}
		seen[a.Name] = struct{}{}
	}
	return nil
}

// DefaultCatalog returns a fresh copy of the reference catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		{Name: "hiking", Category: Outdoor, BaseScore: 70, Description: "Explore nature trails"},
		{Name: "picnic", Category: Outdoor, BaseScore: 65, Description: "Enjoy outdoor meal with friends"},
		{Name: "cycling", Category: Outdoor, BaseScore: 75, Description: "Ride through the city or countryside"},
		{Name: "beach", Category: Outdoor, BaseScore: 80, Description: "Relax and swim at the beach"},
		{Name: "park_walk", Category: Outdoor, BaseScore: 60, Description: "Stroll through a scenic park"},

		{Name: "cinema", Category: Indoor, BaseScore: 70, Description: "Watch a movie"},
		{Name: "museum", Category: Indoor, BaseScore: 65, Description: "Explore art and culture"},
		{Name: "restaurant", Category: Indoor, BaseScore: 75, Description: "Dine at a local restaurant"},
		{Name: "cafe", Category: Indoor, BaseScore: 60, Description: "Relax at a cozy café"},
		{Name: "gaming", Category: Indoor, BaseScore: 70, Description: "Video games or board games"},
		{Name: "reading", Category: Indoor, BaseScore: 50, Description: "Read at home or library"},

		{Name: "running", Category: Sports, BaseScore: 80, Description: "Morning or evening jog"},
		{Name: "tennis", Category: Sports, BaseScore: 75, Description: "Play tennis with friends"},
		{Name: "swimming", Category: Sports, BaseScore: 80, Description: "Swim at a pool or beach"},
		{Name: "yoga", Category: Sports, BaseScore: 65, Description: "Yoga session"},
	}
}

// LoadCatalog reads a YAML catalog of the form
//
//	activities:
//	  - {name: hiking, category: outdoor, base_score: 70, description: "..."}
//
// and validates it before returning.
func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var doc struct {
		Activities Catalog `yaml:"activities"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := doc.Activities.Validate(); err != nil {
		return nil, err
	}
	return doc.Activities, nil
}
