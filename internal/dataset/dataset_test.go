package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphi/realty/internal/domain"
)

const header = "Suburb,Address,Rooms,Type,Price,Bathroom,Landsize,YearBuilt,Lattitude,Longtitude\n"

func mustParse(t *testing.T, body string) *Dataset {
	t.Helper()
	d, err := parse("test.csv", strings.NewReader(header+body))
	require.NoError(t, err)
	return d
}

func TestLoadBundled(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BundledSource, d.Source())
	assert.Equal(t, 30, d.Len())
	assert.Zero(t, d.Report().Skipped)

	rec, err := d.FindProperty("85 Turner St")
	require.NoError(t, err)
	assert.Equal(t, "85 Turner St", rec.Address)
	assert.Equal(t, "Abbotsford", rec.Suburb)
	assert.Equal(t, 2, rec.Rooms)
	assert.Equal(t, domain.PropertyTypeHouse, rec.Type)
	require.NotNil(t, rec.Price)
	assert.Equal(t, 1480000.0, *rec.Price)
	require.NotNil(t, rec.Latitude)
	assert.InDelta(t, -37.7996, *rec.Latitude, 1e-9)
	assert.Nil(t, rec.YearBuilt)
	assert.Equal(t, "3067", rec.Postcode)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "houses.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+"Richmond,1 Swan St,3,h,900000,1,200,1920,-37.82,145.0\n"), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, d.Source())
	assert.Equal(t, 1, d.Len())
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
		assert.True(t, domain.IsDataLoadError(err))
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := parse("empty.csv", strings.NewReader(""))
		assert.True(t, domain.IsDataLoadError(err))
	})

	t.Run("missing required column", func(t *testing.T) {
		_, err := parse("bad.csv", strings.NewReader("Suburb,Address,Rooms\nAbbotsford,1 A St,2\n"))
		require.Error(t, err)
		assert.True(t, domain.IsDataLoadError(err))
		assert.Contains(t, err.Error(), "type")
		assert.Contains(t, err.Error(), "price")
	})
}

func TestSkipsUnparsableRows(t *testing.T) {
	d := mustParse(t, strings.Join([]string{
		"Abbotsford,1 Good St,2,h,1000000,1,100,1900,-37.8,144.9",
		"Abbotsford,2 Short St,2,h",
		"Abbotsford,3 Bad St,two,h,1000000,1,100,1900,-37.8,144.9",
		"Abbotsford,4 Neg St,2,h,-5,1,100,1900,-37.8,144.9",
		"Abbotsford,,2,h,1000000,1,100,1900,-37.8,144.9",
		"Abbotsford,5 Fine St,3,u,NA,2.0,nan,,,",
	}, "\n")+"\n")

	assert.Equal(t, 2, d.Len())
	report := d.Report()
	assert.Equal(t, 6, report.Rows)
	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, 4, report.Skipped)
	require.Len(t, report.Problems, 4)
	assert.Equal(t, 3, report.Problems[0].Line)

	rec := d.Record(1)
	assert.Equal(t, "5 Fine St", rec.Address)
	assert.Nil(t, rec.Price)
	require.NotNil(t, rec.Bathrooms)
	assert.Equal(t, 2, *rec.Bathrooms)
	assert.Nil(t, rec.LandSize)
	assert.Nil(t, rec.Latitude)
	assert.Equal(t, domain.PropertyTypeUnit, rec.Type)
}

func TestAlternateHeaders(t *testing.T) {
	d, err := parse("alt.csv", strings.NewReader(
		"address,suburb,rooms,type,price,latitude,longitude\n\"1 Main Rd, Rear\",Carlton,2,t,\"$650,000\",-37.8,144.97\n"))
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())

	rec := d.Record(0)
	assert.Equal(t, "1 Main Rd, Rear", rec.Address)
	assert.Equal(t, domain.PropertyTypeTownhouse, rec.Type)
	require.NotNil(t, rec.Price)
	assert.Equal(t, 650000.0, *rec.Price)
	assert.Nil(t, rec.Bathrooms)
	require.NotNil(t, rec.Longitude)
}

func TestFindProperty(t *testing.T) {
	d := mustParse(t, strings.Join([]string{
		"Abbotsford,85 Turner St,2,h,1480000,1,202,,-37.7996,144.9984",
		"Abbotsford,53 Turner St,2,h,,1,201,1900,-37.7995,144.9974",
		"Richmond,12 Swan St,3,u,700000,1,0,1990,-37.82,145.0",
	}, "\n")+"\n")

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{name: "exact address", fragment: "85 Turner St", want: "85 Turner St"},
		{name: "case insensitive", fragment: "85 TURNER st", want: "85 Turner St"},
		{name: "first match in file order", fragment: "turner", want: "85 Turner St"},
		{name: "partial fragment", fragment: "53 Tur", want: "53 Turner St"},
		{name: "surrounding whitespace", fragment: "  swan st ", want: "12 Swan St"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := d.FindProperty(tt.fragment)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Address)
		})
	}

	for _, fragment := range []string{"999 Nowhere Rd", "", "   "} {
		_, err := d.FindProperty(fragment)
		require.Error(t, err, fragment)
		assert.True(t, domain.IsNotFoundError(err))
	}
}

func TestFindPropertyReturnsCopy(t *testing.T) {
	d := mustParse(t, "Abbotsford,85 Turner St,2,h,1480000,1,202,,-37.7996,144.9984\n")
	rec, err := d.FindProperty("turner")
	require.NoError(t, err)
	rec.Address = "changed"
	*rec.Price = 1
	*rec.Bathrooms = 9
	*rec.LandSize = 1
	*rec.Latitude = 0

	again, err := d.FindProperty("turner")
	require.NoError(t, err)
	assert.Equal(t, "85 Turner St", again.Address)
	assert.Equal(t, 1480000.0, *again.Price)
	assert.Equal(t, 1, *again.Bathrooms)
	assert.Equal(t, 202.0, *again.LandSize)
	assert.Equal(t, -37.7996, *again.Latitude)

	summary, err := d.SuburbTrends("Abbotsford")
	require.NoError(t, err)
	require.NotNil(t, summary.MedianPrice)
	assert.Equal(t, 1480000.0, *summary.MedianPrice)
	assert.Equal(t, 202.0, *summary.MeanLandSize)

	stored := d.Record(0)
	*stored.Price = 2
	assert.Equal(t, 1480000.0, *d.Record(0).Price)
}

func TestSuburbTrends(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 1250; i++ {
		price := 575500 + i*1000
		fmt.Fprintf(&b, "Abbotsford,%d Test St,3,h,%d,1,%d,1950,-37.8,144.99\n", i+1, price, 100+i%3*100)
	}
	b.WriteString("Richmond,1 Swan St,3,h,5000000,1,900,1900,-37.82,145.0\n")
	d := mustParse(t, b.String())

	summary, err := d.SuburbTrends("abbotsford")
	require.NoError(t, err)
	assert.Equal(t, "Abbotsford", summary.Suburb)
	assert.Equal(t, 1250, summary.PropertyCount)
	require.NotNil(t, summary.MedianPrice)
	assert.Equal(t, 1200000.0, *summary.MedianPrice)
	require.NotNil(t, summary.MeanLandSize)
	assert.InDelta(t, 199.92, *summary.MeanLandSize, 0.01)
}

func TestSuburbTrendsNulls(t *testing.T) {
	d := mustParse(t, strings.Join([]string{
		"Carlton,1 A St,2,h,,1,,1900,,",
		"Carlton,2 B St,2,h,,1,300,1900,,",
		"Fitzroy,3 C St,2,h,800000,1,100,1900,,",
		"Fitzroy,4 D St,2,h,900000,1,,1900,,",
		"Fitzroy,5 E St,2,h,,1,,1900,,",
		"Fitzroy,6 F St,2,h,1300000,1,,1900,,",
	}, "\n")+"\n")

	carlton, err := d.SuburbTrends("CARLTON")
	require.NoError(t, err)
	assert.Equal(t, 2, carlton.PropertyCount)
	assert.Nil(t, carlton.MedianPrice)
	require.NotNil(t, carlton.MeanLandSize)
	assert.Equal(t, 300.0, *carlton.MeanLandSize)

	fitzroy, err := d.SuburbTrends("Fitzroy")
	require.NoError(t, err)
	assert.Equal(t, 4, fitzroy.PropertyCount)
	require.NotNil(t, fitzroy.MedianPrice)
	assert.Equal(t, 900000.0, *fitzroy.MedianPrice)
	assert.Equal(t, 100.0, *fitzroy.MeanLandSize)

	_, err = d.SuburbTrends("Fitz")
	assert.True(t, domain.IsNotFoundError(err))
	_, err = d.SuburbTrends("")
	assert.True(t, domain.IsNotFoundError(err))
}

func TestSuburbs(t *testing.T) {
	d := mustParse(t, strings.Join([]string{
		"Richmond,1 A St,2,h,,1,,1900,,",
		"Abbotsford,2 B St,2,h,,1,,1900,,",
		"richmond,3 C St,2,h,,1,,1900,,",
	}, "\n")+"\n")
	assert.Equal(t, []string{"Abbotsford", "Richmond"}, d.Suburbs())
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, median([]float64{5, 1, 3}))
	assert.Equal(t, 2.5, median([]float64{4, 1, 3, 2}))
	assert.Equal(t, 7.0, median([]float64{7}))
}
