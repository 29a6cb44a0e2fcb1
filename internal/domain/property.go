package domain

import (
	"fmt"
	"strings"
)

type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeUnit      PropertyType = "unit"
	PropertyTypeTownhouse PropertyType = "townhouse"
	PropertyTypeOther     PropertyType = "other"
)

// ParsePropertyType maps the single-letter dataset codes (h, u, t) to a
// PropertyType. Full names are accepted as well.
func ParsePropertyType(code string) PropertyType {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "h", "house":
		return PropertyTypeHouse
	case "u", "unit":
		return PropertyTypeUnit
	case "t", "townhouse":
		return PropertyTypeTownhouse
	default:
		return PropertyTypeOther
	}
}

// PropertyRecord is one sold property. Nil pointer fields are unknown values.
type PropertyRecord struct {
	Address   string       `json:"address"`
	Suburb    string       `json:"suburb"`
	Rooms     int          `json:"rooms"`
	Type      PropertyType `json:"type"`
	Price     *float64     `json:"price"`
	Bathrooms *int         `json:"bathrooms"`
	LandSize  *float64     `json:"land_size"`
	YearBuilt *int         `json:"year_built"`
	Latitude  *float64     `json:"latitude"`
	Longitude *float64     `json:"longitude"`
	Postcode  string       `json:"postcode,omitempty"`
	SaleDate  string       `json:"sale_date,omitempty"`
	Region    string       `json:"region,omitempty"`
}

// Clone returns a copy that shares no pointer fields with p.
func (p PropertyRecord) Clone() PropertyRecord {
	p.Price = clonePtr(p.Price)
	p.Bathrooms = clonePtr(p.Bathrooms)
	p.LandSize = clonePtr(p.LandSize)
	p.YearBuilt = clonePtr(p.YearBuilt)
	p.Latitude = clonePtr(p.Latitude)
	p.Longitude = clonePtr(p.Longitude)
	return p
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func (p PropertyRecord) Summary() string {
	return fmt.Sprintf("%s, %s", p.Address, p.Suburb)
}

type SuburbSummary struct {
	Suburb        string   `json:"suburb"`
	PropertyCount int      `json:"property_count"`
	MedianPrice   *float64 `json:"median_price"`
	MeanLandSize  *float64 `json:"average_land_size"`
}

func (s SuburbSummary) Summary() string {
	return fmt.Sprintf("%s: %d properties", s.Suburb, s.PropertyCount)
}
