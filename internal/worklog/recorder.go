// Package worklog validates operator input and records work sessions,
// cascading the machine's horimeter cache and triggering opportunistic
// remote pushes.
package worklog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rafaelq/fieldlog/internal/mirror"
	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/store"
)

// Validation sentinels, matched with errors.Is. All are rejected before any
// state mutation.
var (
	ErrMissingEvidence       = errors.New("both horimeter photos are required")
	ErrInvalidHorimeterRange = errors.New("end horimeter is below start horimeter")
	ErrInvalidNumericInput   = errors.New("horimeter readings must be non-negative numbers")
	ErrUnknownTractor        = errors.New("unknown tractor")
	ErrMissingService        = errors.New("service name is required")
)

// Draft is raw operator input as captured by the form. Numeric readings stay
// strings until validated.
type Draft struct {
	TractorID          string
	ServiceName        string
	ServiceDescription string
	StartHorimeter     string
	EndHorimeter       string
	StartPhoto         string // opaque encoded blob
	EndPhoto           string
	FuelLiters         string
	Notes              string
}

// Pusher is the remote-mirror hook used for auto-sync. Push failure never
// rolls back the local write.
type Pusher interface {
	Push(snap mirror.Snapshot) error
}

// Result is a successful submission. PushErr carries a non-fatal auto-sync
// failure for status reporting; the local write already succeeded.
type Result struct {
	Log     models.WorkLog
	Pushed  bool
	PushErr error
}

// Recorder builds work logs from drafts and writes them through the store.
type Recorder struct {
	store  *store.Store
	pusher Pusher

	now func() time.Time
}

// New creates a recorder. pusher may be nil when no remote mirror is wired.
func New(st *store.Store, pusher Pusher) *Recorder {
	return &Recorder{store: st, pusher: pusher, now: time.Now}
}

// Submit validates the draft and, on success, appends the work log and then
// updates the referenced tractor's horimeter cache as an independent second
// write. When auto-sync is enabled the full log and tractor collections are
// pushed best-effort afterwards.
func (r *Recorder) Submit(operator models.User, d Draft) (*Result, error) {
	if d.StartPhoto == "" || d.EndPhoto == "" {
		return nil, ErrMissingEvidence
	}

	start, startOK := parseHorimeter(d.StartHorimeter)
	end, endOK := parseHorimeter(d.EndHorimeter)
	if startOK && endOK && end < start {
		return nil, ErrInvalidHorimeterRange
	}
	if !startOK || !endOK {
		return nil, ErrInvalidNumericInput
	}

	tractor, ok := r.store.Tractor(d.TractorID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTractor, d.TractorID)
	}

	serviceName := strings.TrimSpace(d.ServiceName)
	if serviceName == "" {
		return nil, ErrMissingService
	}

	fuel, err := strconv.ParseFloat(strings.TrimSpace(d.FuelLiters), 64)
	if err != nil || math.IsNaN(fuel) {
		fuel = 0
	}

	now := r.now()
	log := models.WorkLog{
		ID:                  strconv.FormatInt(now.UnixMilli(), 10),
		OperatorID:          operator.ID,
		OperatorName:        operator.Name,
		TractorID:           tractor.ID,
		TractorName:         tractor.Name,
		ServiceID:           serviceSlug(serviceName),
		ServiceName:         serviceName,
		ServiceDescription:  d.ServiceDescription,
		Date:                now.Format("2006-01-02"),
		StartHorimeter:      start,
		EndHorimeter:        end,
		StartHorimeterPhoto: d.StartPhoto,
		EndHorimeterPhoto:   d.EndPhoto,
		FuelLiters:          fuel,
		Notes:               d.Notes,
		TotalHours:          end - start,
		CreatedAt:           now.Format(time.RFC3339),
	}

	if err := r.store.AppendLog(log); err != nil {
		return nil, err
	}

	// Independent second write. A crash between the two leaves the tractor
	// cache stale relative to the just-recorded log; it is reconstructible
	// from log history.
	tractor.CurrentHorimeter = end
	tractor.LastUpdateDate = now.Format("2006-01-02")
	if err := r.store.UpdateTractor(tractor.ID, tractor); err != nil {
		return nil, err
	}

	res := &Result{Log: log}
	if r.pusher != nil && r.store.Config().AutoSyncEnabled {
		res.PushErr = r.pusher.Push(mirror.Snapshot{
			Logs:     r.store.Logs(),
			Tractors: r.store.Tractors(),
		})
		res.Pushed = res.PushErr == nil
	}
	return res, nil
}

// parseHorimeter accepts finite, non-negative decimal readings.
func parseHorimeter(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// serviceSlug derives the service id from the free-typed name: lowercased,
// whitespace runs collapsed to single dashes.
func serviceSlug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
