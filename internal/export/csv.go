// Package export renders the work-log history as CSV for spreadsheet use.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rafaelq/fieldlog/internal/models"
)

// header matches the column set the farm's spreadsheets already use.
var header = []string{
	"Data", "Operador", "Trator", "Serviço", "Descrição do Serviço",
	"Horímetro Inicial", "Horímetro Final", "Horas", "Combustível (L)", "Observações",
}

// WriteCSV writes the logs in collection order. Hours are rounded to one
// decimal for display; horimeter readings keep full precision.
func WriteCSV(w io.Writer, logs []models.WorkLog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, l := range logs {
		rec := []string{
			l.Date,
			l.OperatorName,
			l.TractorName,
			l.ServiceName,
			l.ServiceDescription,
			formatReading(l.StartHorimeter),
			formatReading(l.EndHorimeter),
			strconv.FormatFloat(l.TotalHours, 'f', 1, 64),
			formatReading(l.FuelLiters),
			l.Notes,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatReading(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
