package tools

import (
	"context"

	"github.com/isaacphi/realty/internal/domain"
)

const (
	FindPropertyTool = "find_property"
	SuburbTrendsTool = "suburb_trends"
)

type PropertyArgs struct {
	Address string `json:"address" jsonschema:"minLength=1,description=Street address or part of one such as 85 Turner St" validate:"required"`
}

type SuburbArgs struct {
	Suburb string `json:"suburb" jsonschema:"minLength=1,description=Suburb name such as Abbotsford" validate:"required"`
}

// Lookup is the read side of the property dataset.
type Lookup interface {
	FindProperty(fragment string) (*domain.PropertyRecord, error)
	SuburbTrends(suburb string) (*domain.SuburbSummary, error)
}

// NewRealtyRegistry registers find_property and suburb_trends over data.
func NewRealtyRegistry(data Lookup) (*Registry, error) {
	findProperty, err := New(FindPropertyTool,
		"Look up a single sold property by street address. Matching is case-insensitive on any part of the address and returns the first match.",
		func(ctx context.Context, args PropertyArgs) (any, error) {
			return data.FindProperty(args.Address)
		})
	if err != nil {
		return nil, err
	}
	suburbTrends, err := New(SuburbTrendsTool,
		"Summarise sales in a suburb: number of properties, median sale price and average land size in square metres. The suburb name must match exactly, ignoring case.",
		func(ctx context.Context, args SuburbArgs) (any, error) {
			return data.SuburbTrends(args.Suburb)
		})
	if err != nil {
		return nil, err
	}

	registry := NewRegistry()
	for _, t := range []Tool{findProperty, suburbTrends} {
		if err := registry.Register(t); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
