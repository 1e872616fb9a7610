package mirror

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rafaelq/fieldlog/internal/models"
)

// flexFloat decodes a JSON number or a numeric string, falling back to zero
// when the value cannot be parsed. The remote document store does not
// guarantee numeric typing for fields written by other clients.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = flexFloat(v)
			return nil
		}
	}
	*f = 0
	return nil
}

// remoteTractor and remoteLog mirror the model structs with coercing numeric
// fields for ingest.

type remoteTractor struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Model               string    `json:"model"`
	CurrentHorimeter    flexFloat `json:"currentHorimeter"`
	ExpectedConsumption flexFloat `json:"expectedConsumption"`
	LastUpdateDate      string    `json:"lastUpdateDate"`
}

func (r remoteTractor) tractor() models.Tractor {
	return models.Tractor{
		ID:                  r.ID,
		Name:                r.Name,
		Model:               r.Model,
		CurrentHorimeter:    float64(r.CurrentHorimeter),
		ExpectedConsumption: float64(r.ExpectedConsumption),
		LastUpdateDate:      r.LastUpdateDate,
	}
}

type remoteLog struct {
	ID                  string    `json:"id"`
	OperatorID          string    `json:"operatorId"`
	OperatorName        string    `json:"operatorName"`
	TractorID           string    `json:"tractorId"`
	TractorName         string    `json:"tractorName"`
	ServiceID           string    `json:"serviceId"`
	ServiceName         string    `json:"serviceName"`
	ServiceDescription  string    `json:"serviceDescription"`
	Date                string    `json:"date"`
	StartHorimeter      flexFloat `json:"startHorimeter"`
	EndHorimeter        flexFloat `json:"endHorimeter"`
	StartHorimeterPhoto string    `json:"startHorimeterPhoto"`
	EndHorimeterPhoto   string    `json:"endHorimeterPhoto"`
	FuelLiters          flexFloat `json:"fuelLiters"`
	Notes               string    `json:"notes"`
	TotalHours          flexFloat `json:"totalHours"`
	CreatedAt           string    `json:"createdAt"`
}

func (r remoteLog) workLog() models.WorkLog {
	return models.WorkLog{
		ID:                  r.ID,
		OperatorID:          r.OperatorID,
		OperatorName:        r.OperatorName,
		TractorID:           r.TractorID,
		TractorName:         r.TractorName,
		ServiceID:           r.ServiceID,
		ServiceName:         r.ServiceName,
		ServiceDescription:  r.ServiceDescription,
		Date:                r.Date,
		StartHorimeter:      float64(r.StartHorimeter),
		EndHorimeter:        float64(r.EndHorimeter),
		StartHorimeterPhoto: r.StartHorimeterPhoto,
		EndHorimeterPhoto:   r.EndHorimeterPhoto,
		FuelLiters:          float64(r.FuelLiters),
		Notes:               r.Notes,
		TotalHours:          float64(r.TotalHours),
		CreatedAt:           r.CreatedAt,
	}
}
