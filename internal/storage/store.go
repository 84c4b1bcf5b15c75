// Package storage persists recorded animation runs as a metadata.json plus a
// frames.csv per run under a base directory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/flipdeck/flipdeck/internal/flip"
	"github.com/flipdeck/flipdeck/internal/session"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMS int       `json:"duration_ms"`
	Axis       string    `json:"axis"`
	SnapTime   float64   `json:"snap_time"`
	SnapTravel float64   `json:"snap_travel"`
	Backface   string    `json:"backface"`
	Flips      int       `json:"flips"`
	TickRate   int       `json:"tick_rate"`
	Frames     int       `json:"frames"`
}

// Sample is one row of a stored run: the pose scalars, without the derived
// matrices (those rebuild from the config when needed).
type Sample struct {
	Time     float64 // seconds
	Progress float64
	Angle    float64
	Front    bool
}

// Save writes one recorded run and returns its generated id.
func (s *Store) Save(label string, cfg flip.Config, tickRate, flips int, pts []session.Point) (string, error) {
	runID := fmt.Sprintf("%s_%d", label, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Label:      label,
		Timestamp:  time.Now(),
		DurationMS: int(cfg.Duration / time.Millisecond),
		Axis:       cfg.Axis.String(),
		SnapTime:   cfg.SnapTime,
		SnapTravel: cfg.SnapTravel,
		Backface:   cfg.Backface.String(),
		Flips:      flips,
		TickRate:   tickRate,
		Frames:     len(pts),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "progress", "angle", "front"}); err != nil {
		return "", err
	}
	for _, p := range pts {
		front := "0"
		if p.Frame.Face == flip.Front {
			front = "1"
		}
		row := []string{
			strconv.FormatFloat(p.Time.Seconds(), 'f', 6, 64),
			strconv.FormatFloat(p.Frame.Progress, 'f', 6, 64),
			strconv.FormatFloat(p.Frame.Angle, 'f', 6, 64),
			front,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		progress, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		angle, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}

		samples = append(samples, Sample{
			Time:     t,
			Progress: progress,
			Angle:    angle,
			Front:    record[3] == "1",
		})
	}

	return samples, nil
}
