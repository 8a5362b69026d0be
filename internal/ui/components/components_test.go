package components

import (
	"strings"
	"testing"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
)

func TestRenderBarChart(t *testing.T) {
	out := RenderBarChart([]float64{10, 5, 0}, []string{"10 AM", "11 AM", "12 PM"}, 60)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("bar chart has %d lines, want 3", len(lines))
	}
	for _, label := range []string{"10 AM", "11 AM", "12 PM"} {
		if !strings.Contains(out, label) {
			t.Errorf("bar chart missing label %q", label)
		}
	}
	if !strings.Contains(lines[0], "█") {
		t.Error("non-zero bucket rendered without a bar")
	}
	if strings.Contains(lines[2], "█") {
		t.Error("zero bucket rendered with a bar")
	}
}

func TestRenderBarChartEmpty(t *testing.T) {
	if out := RenderBarChart(nil, nil, 40); out != "" {
		t.Errorf("empty bar chart = %q, want empty string", out)
	}
}

func TestRenderSparkline(t *testing.T) {
	out := RenderSparkline([]float64{1, 2, 3, 4}, 4)
	if got := len([]rune(out)); got != 4 {
		t.Errorf("sparkline width = %d, want 4", got)
	}

	if out := RenderSparkline(nil, 10); out != "" {
		t.Errorf("empty sparkline = %q, want empty", out)
	}
}

func TestRenderLegend(t *testing.T) {
	cats := []models.Category{
		{Key: "male", Label: "Male", Color: "#1f77b4"},
		{Key: "female", Label: "Female", Color: "#ff7f0e"},
	}

	out := RenderLegend(cats)
	if !strings.Contains(out, "Male") || !strings.Contains(out, "Female") {
		t.Errorf("legend missing labels: %q", out)
	}
}

func TestRenderSeriesChartEmpty(t *testing.T) {
	out := RenderSeriesChart(nil, 40, 5, "")
	if !strings.Contains(out, "No data") {
		t.Errorf("nil series chart = %q, want no-data message", out)
	}
}

func TestShareBarClamping(t *testing.T) {
	over := ShareBar{Label: "Male", Percent: 150, Width: 20}.Render()
	if !strings.Contains(over, "100.0%") {
		t.Errorf("over-100 bar = %q, want clamped to 100.0%%", over)
	}

	under := ShareBar{Label: "Female", Percent: -5, Width: 20}.Render()
	if !strings.Contains(under, "0.0%") {
		t.Errorf("negative bar = %q, want clamped to 0.0%%", under)
	}
}

func TestRenderBucketHeatmap(t *testing.T) {
	out := RenderBucketHeatmap([]float64{0, 5, 10}, "10 AM", "10 PM")
	if !strings.HasPrefix(out, "10 AM ") {
		t.Errorf("heatmap missing leading label: %q", out)
	}
	if !strings.HasSuffix(out, " 10 PM") {
		t.Errorf("heatmap missing trailing label: %q", out)
	}
}
