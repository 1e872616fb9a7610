// Package stats derives dashboard statistics from the work-log collection.
// All sums are plain floating-point accumulation over physical quantities;
// display rounds to one decimal.
package stats

import (
	"sort"

	"github.com/rafaelq/fieldlog/internal/models"
)

// FilterAll is the sentinel tractor filter selecting the whole collection.
const FilterAll = "all"

// MachineHours is one bar of the machine-comparison series.
type MachineHours struct {
	TractorID string
	Name      string
	Hours     float64
}

// ServiceHours is one slice of the service-distribution chart.
type ServiceHours struct {
	Name  string
	Hours float64
}

// Stats is the dashboard aggregate.
type Stats struct {
	TotalHours         float64
	TotalFuel          float64
	AverageConsumption float64 // liters per hour, 0 when no hours
	FilteredLogCount   int

	// MachineHours always spans every tractor over the full log collection;
	// the dashboard filter never narrows it.
	MachineHours []MachineHours

	// ServiceDistribution covers the filtered set, sorted by hours
	// descending, truncated to the top 5. Ties keep encounter order.
	ServiceDistribution []ServiceHours
}

// Compute aggregates the log collection, optionally filtered to one tractor.
// An empty filter or FilterAll selects everything.
func Compute(logs []models.WorkLog, tractors []models.Tractor, filterTractorID string) Stats {
	filtered := logs
	if filterTractorID != "" && filterTractorID != FilterAll {
		filtered = nil
		for _, l := range logs {
			if l.TractorID == filterTractorID {
				filtered = append(filtered, l)
			}
		}
	}

	s := Stats{FilteredLogCount: len(filtered)}
	for _, l := range filtered {
		s.TotalHours += l.TotalHours
		s.TotalFuel += l.FuelLiters
	}
	if s.TotalHours > 0 {
		s.AverageConsumption = s.TotalFuel / s.TotalHours
	}

	s.MachineHours = machineHours(logs, tractors)
	s.ServiceDistribution = serviceDistribution(filtered)
	return s
}

// machineHours sums per-tractor hours across the unfiltered collection.
func machineHours(logs []models.WorkLog, tractors []models.Tractor) []MachineHours {
	out := make([]MachineHours, len(tractors))
	for i, t := range tractors {
		out[i] = MachineHours{TractorID: t.ID, Name: t.Name}
		for _, l := range logs {
			if l.TractorID == t.ID {
				out[i].Hours += l.TotalHours
			}
		}
	}
	return out
}

// serviceDistribution groups hours by service name, keeping first-encounter
// order for ties, and truncates to the top 5.
func serviceDistribution(logs []models.WorkLog) []ServiceHours {
	totals := make(map[string]int) // name -> index into out
	var out []ServiceHours
	for _, l := range logs {
		i, ok := totals[l.ServiceName]
		if !ok {
			i = len(out)
			totals[l.ServiceName] = i
			out = append(out, ServiceHours{Name: l.ServiceName})
		}
		out[i].Hours += l.TotalHours
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Hours > out[j].Hours
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// TractorSummary describes one machine's lifetime usage for the fleet view.
type TractorSummary struct {
	Tractor     models.Tractor
	Hours       float64
	Fuel        float64
	Consumption float64 // liters per hour, 0 when no hours
}

// Summarize computes per-tractor usage across the full log collection.
func Summarize(logs []models.WorkLog, tractors []models.Tractor) []TractorSummary {
	out := make([]TractorSummary, len(tractors))
	for i, t := range tractors {
		out[i] = TractorSummary{Tractor: t}
		for _, l := range logs {
			if l.TractorID == t.ID {
				out[i].Hours += l.TotalHours
				out[i].Fuel += l.FuelLiters
			}
		}
		if out[i].Hours > 0 {
			out[i].Consumption = out[i].Fuel / out[i].Hours
		}
	}
	return out
}
