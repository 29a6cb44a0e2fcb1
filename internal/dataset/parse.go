package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/isaacphi/realty/internal/domain"
)

type column int

const (
	colAddress column = iota
	colSuburb
	colRooms
	colType
	colPrice
	colBathrooms
	colLandSize
	colYearBuilt
	colLatitude
	colLongitude
	colPostcode
	colDate
	colRegion
	numColumns
)

// headerAliases lists accepted header names per column, compared lowercased.
// The published Melbourne file misspells the coordinate headers.
var headerAliases = [numColumns][]string{
	colAddress:   {"address"},
	colSuburb:    {"suburb"},
	colRooms:     {"rooms"},
	colType:      {"type"},
	colPrice:     {"price"},
	colBathrooms: {"bathroom", "bathrooms"},
	colLandSize:  {"landsize", "land_size", "land size"},
	colYearBuilt: {"yearbuilt", "year_built", "year built"},
	colLatitude:  {"lattitude", "latitude", "lat"},
	colLongitude: {"longtitude", "longitude", "lng", "lon"},
	colPostcode:  {"postcode"},
	colDate:      {"date", "sale_date"},
	colRegion:    {"regionname", "region"},
}

var requiredColumns = []column{colAddress, colSuburb, colRooms, colType, colPrice}

var nullTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
}

// columns maps each logical column to its index in a row, -1 when absent.
type columns [numColumns]int

func resolveColumns(header []string) (columns, error) {
	var cols columns
	for i := range cols {
		cols[i] = -1
	}
	for idx, name := range header {
		name = normalize(strings.TrimPrefix(name, "\ufeff"))
		for col, aliases := range headerAliases {
			if cols[col] >= 0 {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					cols[col] = idx
				}
			}
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if cols[col] < 0 {
			missing = append(missing, headerAliases[col][0])
		}
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("header is missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func (c columns) field(row []string, col column) string {
	idx := c[col]
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseRow(cols columns, row []string) (domain.PropertyRecord, error) {
	rec := domain.PropertyRecord{
		Address:  cols.field(row, colAddress),
		Suburb:   cols.field(row, colSuburb),
		Type:     domain.ParsePropertyType(cols.field(row, colType)),
		Postcode: trimDecimal(cols.field(row, colPostcode)),
		SaleDate: cols.field(row, colDate),
		Region:   cols.field(row, colRegion),
	}
	if isNull(rec.Address) {
		return rec, fmt.Errorf("address is empty")
	}
	if isNull(rec.Suburb) {
		return rec, fmt.Errorf("suburb is empty")
	}

	rooms, err := parseOptionalInt(cols.field(row, colRooms))
	if err != nil {
		return rec, fmt.Errorf("rooms: %w", err)
	}
	if rooms == nil {
		return rec, fmt.Errorf("rooms is empty")
	}
	rec.Rooms = *rooms

	if rec.Price, err = parseOptionalFloat(stripCurrency(cols.field(row, colPrice))); err != nil {
		return rec, fmt.Errorf("price: %w", err)
	}
	if rec.Bathrooms, err = parseOptionalInt(cols.field(row, colBathrooms)); err != nil {
		return rec, fmt.Errorf("bathrooms: %w", err)
	}
	if rec.LandSize, err = parseOptionalFloat(cols.field(row, colLandSize)); err != nil {
		return rec, fmt.Errorf("land size: %w", err)
	}
	if rec.YearBuilt, err = parseOptionalInt(cols.field(row, colYearBuilt)); err != nil {
		return rec, fmt.Errorf("year built: %w", err)
	}
	if rec.Latitude, err = parseCoordinate(cols.field(row, colLatitude)); err != nil {
		return rec, fmt.Errorf("latitude: %w", err)
	}
	if rec.Longitude, err = parseCoordinate(cols.field(row, colLongitude)); err != nil {
		return rec, fmt.Errorf("longitude: %w", err)
	}
	return rec, nil
}

func isNull(s string) bool {
	_, ok := nullTokens[strings.ToLower(s)]
	return ok
}

func stripCurrency(s string) string {
	return strings.NewReplacer("$", "", ",", "").Replace(s)
}

func trimDecimal(s string) string {
	return strings.TrimSuffix(s, ".0")
}

func parseOptionalFloat(s string) (*float64, error) {
	if isNull(s) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 {
		return nil, fmt.Errorf("%q is negative", s)
	}
	return &v, nil
}

// parseOptionalInt accepts whole numbers written as floats ("2.0"), which is
// how spreadsheet exports write nullable integer columns.
func parseOptionalInt(s string) (*int, error) {
	f, err := parseOptionalFloat(s)
	if err != nil || f == nil {
		return nil, err
	}
	if *f != math.Trunc(*f) {
		return nil, fmt.Errorf("%q is not a whole number", s)
	}
	v := int(*f)
	return &v, nil
}

func parseCoordinate(s string) (*float64, error) {
	if isNull(s) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%q is not a coordinate", s)
	}
	return &v, nil
}
