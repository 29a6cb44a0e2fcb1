package dataset

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/isaacphi/realty/internal/dataset"
	"github.com/isaacphi/realty/internal/domain"
)

const unknown = "unknown"

func writeProperty(w io.Writer, rec *domain.PropertyRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Address:\t%s\n", rec.Address)
	fmt.Fprintf(tw, "Suburb:\t%s\n", rec.Suburb)
	fmt.Fprintf(tw, "Type:\t%s\n", rec.Type)
	fmt.Fprintf(tw, "Rooms:\t%d\n", rec.Rooms)
	fmt.Fprintf(tw, "Bathrooms:\t%s\n", formatInt(rec.Bathrooms))
	fmt.Fprintf(tw, "Price:\t%s\n", formatMoney(rec.Price))
	fmt.Fprintf(tw, "Land size:\t%s\n", formatArea(rec.LandSize))
	fmt.Fprintf(tw, "Year built:\t%s\n", formatInt(rec.YearBuilt))
	if rec.Latitude != nil && rec.Longitude != nil {
		fmt.Fprintf(tw, "Location:\t%.4f, %.4f\n", *rec.Latitude, *rec.Longitude)
	}
	if rec.SaleDate != "" {
		fmt.Fprintf(tw, "Sold:\t%s\n", rec.SaleDate)
	}
	tw.Flush()
}

func writeSummary(w io.Writer, s *domain.SuburbSummary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Suburb:\t%s\n", s.Suburb)
	fmt.Fprintf(tw, "Properties:\t%d\n", s.PropertyCount)
	fmt.Fprintf(tw, "Median price:\t%s\n", formatMoney(s.MedianPrice))
	fmt.Fprintf(tw, "Average land size:\t%s\n", formatArea(s.MeanLandSize))
	tw.Flush()
}

func describeProblems(problems []dataset.RowProblem) []string {
	out := make([]string, 0, len(problems))
	for _, p := range problems {
		out = append(out, fmt.Sprintf("line %d: %s", p.Line, p.Reason))
	}
	return out
}

func formatInt(v *int) string {
	if v == nil {
		return unknown
	}
	return strconv.Itoa(*v)
}

func formatArea(v *float64) string {
	if v == nil {
		return unknown
	}
	return fmt.Sprintf("%s m²", groupThousands(fmt.Sprintf("%.0f", *v)))
}

func formatMoney(v *float64) string {
	if v == nil {
		return unknown
	}
	return "$" + groupThousands(fmt.Sprintf("%.0f", *v))
}

// groupThousands inserts commas into a string of digits.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
