// Package catalog loads the static menu and restaurant list. The catalog is
// read once at process start and immutable afterwards.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/concierge-ai/concierge/internal/pizzeria/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the static pizza menu and restaurant list.
type Catalog struct {
	Menu        []domain.MenuEntry
	Restaurants []domain.Restaurant
}

type menuEntryYAML struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Description    string `yaml:"description"`
	BasePriceCents int    `yaml:"base_price_cents"`
}

type restaurantYAML struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	Phone            string `yaml:"phone"`
	DeliveryFeeCents int    `yaml:"delivery_fee_cents"`
}

type catalogYAMLDoc struct {
	Menu        []menuEntryYAML  `yaml:"menu"`
	Restaurants []restaurantYAML `yaml:"restaurants"`
}

// Load parses the embedded catalog.
func Load() (Catalog, error) {
	return parse(catalogYAML)
}

func parse(raw []byte) (Catalog, error) {
	var doc catalogYAMLDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Menu) == 0 {
		return Catalog{}, fmt.Errorf("catalog has no menu entries")
	}
	if len(doc.Restaurants) == 0 {
		return Catalog{}, fmt.Errorf("catalog has no restaurants")
	}

	out := Catalog{
		Menu:        make([]domain.MenuEntry, 0, len(doc.Menu)),
		Restaurants: make([]domain.Restaurant, 0, len(doc.Restaurants)),
	}
	for _, e := range doc.Menu {
		if e.ID == "" || e.Name == "" || e.BasePriceCents <= 0 {
			return Catalog{}, fmt.Errorf("catalog menu entry %q is incomplete", e.ID)
		}
		out.Menu = append(out.Menu, domain.MenuEntry{
			ID:             e.ID,
			Name:           e.Name,
			Description:    e.Description,
			BasePriceCents: e.BasePriceCents,
		})
	}
	for _, r := range doc.Restaurants {
		if r.ID == "" || r.Name == "" || r.DeliveryFeeCents < 0 {
			return Catalog{}, fmt.Errorf("catalog restaurant %q is incomplete", r.ID)
		}
		out.Restaurants = append(out.Restaurants, domain.Restaurant{
			ID:               r.ID,
			Name:             r.Name,
			Phone:            r.Phone,
			DeliveryFeeCents: r.DeliveryFeeCents,
		})
	}
	return out, nil
}
