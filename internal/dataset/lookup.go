package dataset

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/isaacphi/realty/internal/domain"
)

// FindProperty returns the first record, in file order, whose address
// contains fragment case-insensitively. A blank fragment matches nothing.
func (d *Dataset) FindProperty(fragment string) (*domain.PropertyRecord, error) {
	needle := normalize(fragment)
	if needle != "" {
		for i, key := range d.addressKeys {
			if strings.Contains(key, needle) {
				rec := d.records[i].Clone()
				return &rec, nil
			}
		}
	}
	return nil, domain.NotFoundError{Kind: "property", Query: fragment}
}

// SuburbTrends aggregates every record whose suburb equals suburb,
// case-insensitively. MedianPrice is nil when no matching record has a
// price, MeanLandSize likewise for land size.
func (d *Dataset) SuburbTrends(suburb string) (*domain.SuburbSummary, error) {
	needle := normalize(suburb)
	var (
		name      string
		count     int
		prices    []float64
		landSizes []float64
	)
	if needle != "" {
		for i, key := range d.suburbKeys {
			if key != needle {
				continue
			}
			rec := d.records[i]
			if count == 0 {
				name = rec.Suburb
			}
			count++
			if rec.Price != nil {
				prices = append(prices, *rec.Price)
			}
			if rec.LandSize != nil {
				landSizes = append(landSizes, *rec.LandSize)
			}
		}
	}
	if count == 0 {
		return nil, domain.NotFoundError{Kind: "suburb", Query: suburb}
	}

	summary := &domain.SuburbSummary{Suburb: name, PropertyCount: count}
	if len(prices) > 0 {
		m := median(prices)
		summary.MedianPrice = &m
	}
	if len(landSizes) > 0 {
		m := stat.Mean(landSizes, nil)
		summary.MeanLandSize = &m
	}
	return summary, nil
}

// median averages the two middle values for an even count.
func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
