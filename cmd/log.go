package cmd

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/rafaelq/fieldlog/internal/mirror"
	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/output"
	"github.com/rafaelq/fieldlog/internal/store"
	"github.com/rafaelq/fieldlog/internal/worklog"
	"github.com/spf13/cobra"
)

var logFlags struct {
	tractor    string
	service    string
	desc       string
	start      string
	end        string
	startPhoto string
	endPhoto   string
	fuel       string
	notes      string
}

var logCmd = &cobra.Command{
	Use:     "log",
	Short:   "Record a work session",
	GroupID: "core",
	Long: `Record a work session for a machine. Requires an operator session.

With no flags an interactive form is shown. Photo flags take file paths;
the images are embedded into the record.`,
	Example: `  fieldlog log
  fieldlog log --tractor t1 --service Gradagem \
      --start 1250.5 --end 1255.0 \
      --start-photo before.jpg --end-photo after.jpg --fuel 32`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		operator, err := requireUser(st, models.RoleOperator)
		if err != nil {
			return err
		}

		draft := worklog.Draft{
			TractorID:          logFlags.tractor,
			ServiceName:        logFlags.service,
			ServiceDescription: logFlags.desc,
			StartHorimeter:     logFlags.start,
			EndHorimeter:       logFlags.end,
			FuelLiters:         logFlags.fuel,
			Notes:              logFlags.notes,
		}

		startPath, endPath := logFlags.startPhoto, logFlags.endPhoto
		if !cmd.Flags().Changed("tractor") {
			if startPath, endPath, err = runLogForm(st, &draft); err != nil {
				return err
			}
		}

		if draft.StartPhoto, err = encodePhoto(startPath); err != nil {
			return err
		}
		if draft.EndPhoto, err = encodePhoto(endPath); err != nil {
			return err
		}

		rec := worklog.New(st, mirror.New(st.Config().RemoteEndpointURL))
		res, err := rec.Submit(operator, draft)
		if err != nil {
			return reportSubmitError(err)
		}

		output.Success("Recorded %s on %s (%s)", res.Log.ServiceName, res.Log.TractorName, output.Hours(res.Log.TotalHours))
		if res.Pushed {
			output.Subtle("Synced to remote")
		} else if res.PushErr != nil {
			output.Warning("Saved locally; remote sync failed: %v", res.PushErr)
		}
		return nil
	},
}

// runLogForm captures the draft interactively. Returns the photo file paths.
func runLogForm(st *store.Store, d *worklog.Draft) (startPath, endPath string, err error) {
	tractors := st.Tractors()
	if len(tractors) == 0 {
		return "", "", fmt.Errorf("no tractors registered: add one with 'fieldlog tractor add'")
	}

	tractorOpts := make([]huh.Option[string], 0, len(tractors))
	for _, t := range tractors {
		label := fmt.Sprintf("%s (%s, %s)", t.Name, t.Model, output.Hours(t.CurrentHorimeter))
		tractorOpts = append(tractorOpts, huh.NewOption(label, t.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Machine").
				Options(tractorOpts...).
				Value(&d.TractorID),
			// Free text; the catalog only feeds suggestions.
			huh.NewInput().
				Title("Service").
				Suggestions(serviceSuggestions(st)).
				Value(&d.ServiceName),
			huh.NewInput().
				Title("Service description").
				Value(&d.ServiceDescription),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start horimeter").
				Value(&d.StartHorimeter),
			huh.NewInput().
				Title("End horimeter").
				Value(&d.EndHorimeter),
			huh.NewInput().
				Title("Fuel used (liters)").
				Value(&d.FuelLiters),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start horimeter photo (file path)").
				Value(&startPath),
			huh.NewInput().
				Title("End horimeter photo (file path)").
				Value(&endPath),
			huh.NewText().
				Title("Notes").
				Value(&d.Notes),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return startPath, endPath, nil
}

// serviceSuggestions lists the catalog names for the form's service field.
func serviceSuggestions(st *store.Store) []string {
	services := st.Services()
	names := make([]string, len(services))
	for i, s := range services {
		names[i] = s.Name
	}
	return names
}

// encodePhoto embeds an image file as a base64 data URL. An empty path is
// passed through so the recorder reports the missing evidence itself.
func encodePhoto(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read photo %s: %w", path, err)
	}
	mt := mime.TypeByExtension(filepath.Ext(path))
	if mt == "" {
		mt = "application/octet-stream"
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

func reportSubmitError(err error) error {
	switch {
	case errors.Is(err, worklog.ErrMissingEvidence):
		output.Error("Both horimeter photos are required")
	case errors.Is(err, worklog.ErrInvalidHorimeterRange):
		output.Error("End horimeter cannot be below the start horimeter")
	case errors.Is(err, worklog.ErrInvalidNumericInput):
		output.Error("Horimeter readings must be non-negative numbers")
	case errors.Is(err, worklog.ErrUnknownTractor):
		output.Error("Unknown tractor: %v", err)
	case errors.Is(err, worklog.ErrMissingService):
		output.Error("Service name is required")
	default:
		return err
	}
	os.Exit(1)
	return nil
}

func init() {
	logCmd.Flags().StringVar(&logFlags.tractor, "tractor", "", "Tractor id")
	logCmd.Flags().StringVar(&logFlags.service, "service", "", "Service name")
	logCmd.Flags().StringVar(&logFlags.desc, "desc", "", "Service description")
	logCmd.Flags().StringVar(&logFlags.start, "start", "", "Start horimeter reading")
	logCmd.Flags().StringVar(&logFlags.end, "end", "", "End horimeter reading")
	logCmd.Flags().StringVar(&logFlags.startPhoto, "start-photo", "", "Start horimeter photo file")
	logCmd.Flags().StringVar(&logFlags.endPhoto, "end-photo", "", "End horimeter photo file")
	logCmd.Flags().StringVar(&logFlags.fuel, "fuel", "", "Fuel used in liters")
	logCmd.Flags().StringVar(&logFlags.notes, "notes", "", "Free-form notes")
	rootCmd.AddCommand(logCmd)
}
