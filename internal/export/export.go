// Package export flattens aggregated series into downloadable formats:
// delimited text and a JSON interchange document.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
)

// Metadata describes one export: when it was produced and the scope it
// covers.
type Metadata struct {
	ExportDate time.Time
	Range      models.DateRange
	Filters    models.LocationFilter
}

// DelimitedText renders a series as CSV: one header row with the bucket
// column and the category labels, then one row per bucket. Fields containing
// the delimiter, quotes or newlines are quoted. Bucket and category order is
// exactly the aggregator's; nothing is re-sorted.
func DelimitedText(series *models.Series) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	w.UseCRLF = true

	header := make([]string, 0, len(series.Categories)+1)
	header = append(header, "Bucket")
	for _, cat := range series.Categories {
		header = append(header, cat.Label)
	}
	_ = w.Write(header)

	for _, p := range series.Points {
		row := make([]string, 0, len(series.Categories)+1)
		row = append(row, p.Bucket)
		for _, cat := range series.Categories {
			row = append(row, formatValue(p.Value(cat.Key)))
		}
		_ = w.Write(row)
	}

	w.Flush()
	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// document is the JSON interchange layout.
type document struct {
	Metadata documentMetadata `json:"metadata"`
	Data     []documentBucket `json:"data"`
}

type documentMetadata struct {
	ExportDate   string          `json:"exportDate"`
	ViewType     string          `json:"viewType"`
	Breakdown    string          `json:"breakdown"`
	Metric       string          `json:"metric"`
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
	Filters      documentFilters `json:"filters"`
	TotalRecords float64         `json:"totalRecords"`
}

type documentFilters struct {
	Division   string `json:"division,omitempty"`
	Department string `json:"department,omitempty"`
	Store      string `json:"store,omitempty"`
	Camera     string `json:"camera,omitempty"`
}

type documentBucket struct {
	Bucket string          `json:"bucket"`
	Values []documentValue `json:"values"`
	Total  float64         `json:"total"`
}

type documentValue struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
}

// Document renders a series plus its metadata as an indented JSON document.
// Category order inside each bucket mirrors the aggregator's discovery
// order.
func Document(series *models.Series, meta Metadata) (string, error) {
	doc := document{
		Metadata: documentMetadata{
			ExportDate: meta.ExportDate.Format(time.RFC3339),
			ViewType:   series.View.String(),
			Breakdown:  series.Breakdown.String(),
			Metric:     series.Metric.String(),
			StartDate:  meta.Range.Start.Format("2006-01-02"),
			EndDate:    meta.Range.End.Format("2006-01-02"),
			Filters: documentFilters{
				Division:   meta.Filters.Division,
				Department: meta.Filters.Department,
				Store:      meta.Filters.Store,
				Camera:     meta.Filters.Camera,
			},
			TotalRecords: series.Total(),
		},
		Data: make([]documentBucket, 0, len(series.Points)),
	}

	for _, p := range series.Points {
		bucket := documentBucket{
			Bucket: p.Bucket,
			Values: make([]documentValue, 0, len(series.Categories)),
			Total:  p.Total(),
		}
		for _, cat := range series.Categories {
			bucket.Values = append(bucket.Values, documentValue{
				Category: string(cat.Key),
				Label:    cat.Label,
				Value:    p.Value(cat.Key),
			})
		}
		doc.Data = append(doc.Data, bucket)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal export document: %w", err)
	}
	return string(out), nil
}
