// Package storage persists runs to disk: one directory per run with
// json metadata and csv series next to it.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/partisim/internal/engine"
	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
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
	RunID      string             `json:"run_id"`
	Preset     string             `json:"preset,omitempty"`
	Integrator string             `json:"integrator"`
	Boundary   string             `json:"boundary"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Seed       int64              `json:"seed"`
	Steps      int                `json:"steps"`
	FinalCount int                `json:"final_count"`
	Metrics    map[string]float64 `json:"metrics"`
	CreatedAt  time.Time          `json:"created_at"`
}

// SeriesRecord is one sampled step of a run.
type SeriesRecord struct {
	Time   float64 `csv:"time"`
	Count  int     `csv:"count"`
	Energy float64 `csv:"energy"`
	ComX   float64 `csv:"com_x"`
	ComY   float64 `csv:"com_y"`
}

// ParticleRecord is the final state of one particle.
type ParticleRecord struct {
	PosX    float64 `csv:"pos_x"`
	PosY    float64 `csv:"pos_y"`
	VelX    float64 `csv:"vel_x"`
	VelY    float64 `csv:"vel_y"`
	Mass    float64 `csv:"mass"`
	Charge  float64 `csv:"charge"`
	Species int     `csv:"species"`
	Size    float64 `csv:"size"`
	Age     float64 `csv:"age"`
}

// Save writes a run directory with metadata, the per-step series and
// the final particle states, and returns the run id.
func (s *Store) Save(meta RunMetadata, result *engine.Result, sys *particle.System) (string, error) {
	now := time.Now().UTC()
	runID := fmt.Sprintf("%s-%09d", now.Format("20060102-150405"), now.Nanosecond())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("creating run directory: %w", err)
	}

	meta.RunID = runID
	meta.Steps = result.StepsTaken
	meta.Metrics = result.Metrics
	meta.CreatedAt = time.Now().UTC()
	if sys != nil {
		meta.FinalCount = sys.Len()
	}
	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	if err := s.writeSeries(runDir, result); err != nil {
		return "", err
	}

	if sys != nil {
		if err := s.writeParticles(runDir, sys); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) writeMetadata(runDir string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return fmt.Errorf("creating metadata.json: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func (s *Store) writeSeries(runDir string, result *engine.Result) error {
	records := make([]SeriesRecord, len(result.Times))
	for i, t := range result.Times {
		records[i] = SeriesRecord{
			Time:   t,
			Count:  result.Counts[i],
			Energy: result.Energies[i],
			ComX:   result.Centers[i].X,
			ComY:   result.Centers[i].Y,
		}
	}

	f, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return fmt.Errorf("creating series.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing series: %w", err)
	}
	return nil
}

func (s *Store) writeParticles(runDir string, sys *particle.System) error {
	ps := sys.Particles()
	records := make([]ParticleRecord, len(ps))
	for i, p := range ps {
		records[i] = ParticleRecord{
			PosX:    p.Pos.X,
			PosY:    p.Pos.Y,
			VelX:    p.Vel.X,
			VelY:    p.Vel.Y,
			Mass:    p.Mass,
			Charge:  p.Charge,
			Species: p.Species,
			Size:    p.Size,
			Age:     p.Age,
		}
	}

	f, err := os.Create(filepath.Join(runDir, "particles.csv"))
	if err != nil {
		return fmt.Errorf("creating particles.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing particles: %w", err)
	}
	return nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}
	return &meta, nil
}

// LoadSeries reads the per-step samples of a saved run.
func (s *Store) LoadSeries(runID string) ([]SeriesRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, fmt.Errorf("opening series: %w", err)
	}
	defer f.Close()

	var records []SeriesRecord
	if err := gocsv.Unmarshal(f, &records); err != nil {
		return nil, fmt.Errorf("parsing series: %w", err)
	}
	return records, nil
}

// LoadParticles reads the final particle snapshot of a saved run.
func (s *Store) LoadParticles(runID string) ([]ParticleRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "particles.csv"))
	if err != nil {
		return nil, fmt.Errorf("opening particles: %w", err)
	}
	defer f.Close()

	var records []ParticleRecord
	if err := gocsv.Unmarshal(f, &records); err != nil {
		return nil, fmt.Errorf("parsing particles: %w", err)
	}
	return records, nil
}

// RestoreSystem rebuilds a particle system from saved records.
func RestoreSystem(records []ParticleRecord) *particle.System {
	sys := particle.NewSystem(len(records))
	for _, r := range records {
		p := particle.New(vec.New(r.PosX, r.PosY)).
			WithVelocity(vec.New(r.VelX, r.VelY)).
			WithMass(r.Mass).
			WithCharge(r.Charge).
			WithSpecies(r.Species).
			WithSize(r.Size)
		p.Age = r.Age
		sys.Add(p)
	}
	return sys
}

// List returns the run ids under the base directory, oldest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			runs = append(runs, e.Name())
		}
	}
	sort.Strings(runs)
	return runs, nil
}
