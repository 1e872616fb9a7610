package stats

import (
	"testing"

	"github.com/rafaelq/fieldlog/internal/models"
)

var testTractors = []models.Tractor{
	{ID: "t1", Name: "Trator 01", ExpectedConsumption: 12},
	{ID: "t2", Name: "Trator 02", ExpectedConsumption: 8},
	{ID: "t3", Name: "Trator 03", ExpectedConsumption: 7.5},
}

func log(tractorID, service string, hours, fuel float64) models.WorkLog {
	return models.WorkLog{TractorID: tractorID, ServiceName: service, TotalHours: hours, FuelLiters: fuel}
}

func TestComputeUnfiltered(t *testing.T) {
	logs := []models.WorkLog{
		log("t1", "Aragem", 8, 96),
		log("t2", "Plantio", 4, 32),
		log("t1", "Aragem", 2, 22),
	}

	s := Compute(logs, testTractors, FilterAll)

	if s.TotalHours != 14 {
		t.Errorf("totalHours = %v, want 14", s.TotalHours)
	}
	if s.TotalFuel != 150 {
		t.Errorf("totalFuel = %v, want 150", s.TotalFuel)
	}
	if want := 150.0 / 14.0; s.AverageConsumption != want {
		t.Errorf("averageConsumption = %v, want %v", s.AverageConsumption, want)
	}
	if s.FilteredLogCount != 3 {
		t.Errorf("filteredLogCount = %d, want 3", s.FilteredLogCount)
	}
}

func TestComputeZeroHoursNeverDivides(t *testing.T) {
	logs := []models.WorkLog{log("t1", "Aragem", 0, 50)}

	s := Compute(logs, testTractors, "")
	if s.AverageConsumption != 0 {
		t.Errorf("averageConsumption with zero hours = %v, want 0", s.AverageConsumption)
	}

	empty := Compute(nil, testTractors, "")
	if empty.TotalHours != 0 || empty.AverageConsumption != 0 {
		t.Errorf("empty collection stats = %+v, want zeroes", empty)
	}
}

func TestComputeFilterDoesNotTouchMachineSeries(t *testing.T) {
	logs := []models.WorkLog{
		log("t1", "Aragem", 8, 96),
		log("t2", "Plantio", 4, 32),
		log("t3", "Colheita", 6, 45),
	}

	s := Compute(logs, testTractors, "t2")

	if s.TotalHours != 4 || s.TotalFuel != 32 {
		t.Errorf("filtered totals = %v h / %v L, want 4 / 32", s.TotalHours, s.TotalFuel)
	}

	// Machine comparison is always global.
	want := map[string]float64{"t1": 8, "t2": 4, "t3": 6}
	if len(s.MachineHours) != 3 {
		t.Fatalf("machine series length = %d, want every tractor", len(s.MachineHours))
	}
	for _, m := range s.MachineHours {
		if m.Hours != want[m.TractorID] {
			t.Errorf("machine %s hours = %v, want %v", m.TractorID, m.Hours, want[m.TractorID])
		}
	}

	// Service distribution follows the filter.
	if len(s.ServiceDistribution) != 1 || s.ServiceDistribution[0].Name != "Plantio" {
		t.Errorf("filtered service distribution = %+v, want only Plantio", s.ServiceDistribution)
	}
}

func TestServiceDistributionTopFive(t *testing.T) {
	logs := []models.WorkLog{
		log("t1", "A", 10, 0),
		log("t1", "B", 30, 0),
		log("t1", "C", 5, 0),
		log("t1", "D", 20, 0),
		log("t1", "E", 2, 0),
		log("t1", "F", 1, 0),
	}

	s := Compute(logs, testTractors, "")

	want := []ServiceHours{
		{Name: "B", Hours: 30},
		{Name: "D", Hours: 20},
		{Name: "A", Hours: 10},
		{Name: "C", Hours: 5},
		{Name: "E", Hours: 2},
	}
	if len(s.ServiceDistribution) != len(want) {
		t.Fatalf("distribution length = %d, want 5 (F excluded)", len(s.ServiceDistribution))
	}
	for i, w := range want {
		if s.ServiceDistribution[i] != w {
			t.Errorf("distribution[%d] = %+v, want %+v", i, s.ServiceDistribution[i], w)
		}
	}
}

func TestServiceDistributionTiesKeepEncounterOrder(t *testing.T) {
	logs := []models.WorkLog{
		log("t1", "First", 5, 0),
		log("t1", "Second", 5, 0),
		log("t1", "Third", 9, 0),
	}

	s := Compute(logs, testTractors, "")

	got := []string{s.ServiceDistribution[0].Name, s.ServiceDistribution[1].Name, s.ServiceDistribution[2].Name}
	want := []string{"Third", "First", "Second"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie order = %v, want %v", got, want)
		}
	}
}

func TestSummarize(t *testing.T) {
	logs := []models.WorkLog{
		log("t1", "Aragem", 10, 110),
		log("t1", "Plantio", 10, 130),
	}

	sums := Summarize(logs, testTractors)
	if len(sums) != 3 {
		t.Fatalf("summaries = %d, want one per tractor", len(sums))
	}

	t1 := sums[0]
	if t1.Hours != 20 || t1.Fuel != 240 || t1.Consumption != 12 {
		t.Errorf("t1 summary = %+v, want 20h 240L 12L/h", t1)
	}

	t2 := sums[1]
	if t2.Hours != 0 || t2.Consumption != 0 {
		t.Errorf("idle tractor summary = %+v, want zeroes (no division)", t2)
	}
}
