package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim"
)

// WriteResultJSON writes the full result, snapshots included, to path.
func WriteResultJSON(path string, res *sim.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteSnapshotsCSV writes one row per snapshot to path.
func WriteSnapshotsCSV(path string, res *sim.Result) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()
	return EncodeSnapshotsCSV(file, res)
}

// EncodeSnapshotsCSV writes the snapshot table: step, time, totals, then
// on-stair and evacuated per stair, then remaining per floor.
func EncodeSnapshotsCSV(w io.Writer, res *sim.Result) error {
	cw := csv.NewWriter(w)

	header := []string{"step", "elapsed_seconds", "total_evacuated", "remaining_in_building"}
	for _, name := range res.StairNames {
		header = append(header, "on_stair_"+name, "evacuated_"+name)
	}
	for _, f := range res.Floors {
		header = append(header, "remaining_floor_"+strconv.Itoa(f.Floor))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, snap := range res.Snapshots {
		row := []string{
			strconv.Itoa(snap.Step),
			formatFloat(snap.ElapsedSeconds),
			formatFloat(snap.TotalEvacuated),
			formatFloat(snap.RemainingInBuilding),
		}
		for _, st := range snap.Stairs {
			row = append(row, formatFloat(st.OnStair), formatFloat(st.Evacuated))
		}
		for _, f := range snap.Floors {
			row = append(row, formatFloat(f.Remaining))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for step %d: %w", snap.Step, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	logrus.Debugf("encoded %d snapshot rows", len(res.Snapshots))
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
