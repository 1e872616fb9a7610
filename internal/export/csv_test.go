package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/rafaelq/fieldlog/internal/models"
)

func TestWriteCSV(t *testing.T) {
	logs := []models.WorkLog{
		{
			Date: "2026-08-30", OperatorName: "João da Silva", TractorName: "Trator 01",
			ServiceName: "Aragem", ServiceDescription: `field "A", lower half`,
			StartHorimeter: 1250.5, EndHorimeter: 1258.75,
			TotalHours: 8.25, FuelLiters: 40,
			Notes: "rain stopped work,\nresumed after lunch",
		},
	}

	var sb strings.Builder
	if err := WriteCSV(&sb, logs); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want header + 1 row", len(records))
	}

	if records[0][0] != "Data" || records[0][9] != "Observações" {
		t.Errorf("header = %v", records[0])
	}

	row := records[1]
	want := []string{
		"2026-08-30", "João da Silva", "Trator 01", "Aragem", `field "A", lower half`,
		"1250.5", "1258.75", "8.2", "40", "rain stopped work,\nresumed after lunch",
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, row[i], want[i])
		}
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Errorf("empty export = %d lines, want header only", len(lines))
	}
}
