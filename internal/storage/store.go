// Package storage keeps run records on disk: one directory per run holding
// metadata.json and a stats.csv of per-tick derived statistics. Snapshots
// themselves are never written.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/godsim/internal/dynamo"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	statsFile    = "stats.csv"
)

var statsHeader = []string{
	"tick", "civilizations", "populations", "biomass",
	"avg_tech", "mean_temperature", "climate_stability", "action",
}

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
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      uint64             `json:"seed"`
	Ticks     int                `json:"ticks"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Depth     int                `json:"depth"`
	Generator string             `json:"generator"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a new run and returns its id. meta.ID and meta.Timestamp are
// filled in.
func (s *Store) Save(meta RunMetadata, stats []dynamo.Stats) (string, error) {
	now := time.Now()
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	meta.ID = fmt.Sprintf("%s_%d", name, now.UnixNano())
	meta.Timestamp = now
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if err := writeStats(filepath.Join(runDir, statsFile), stats); err != nil {
		return "", fmt.Errorf("write stats: %w", err)
	}
	return meta.ID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeStats(path string, stats []dynamo.Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(statsHeader); err != nil {
		return err
	}
	for _, st := range stats {
		row := []string{
			strconv.Itoa(st.Tick),
			strconv.Itoa(st.Civilizations),
			strconv.Itoa(st.Populations),
			strconv.FormatUint(st.Biomass, 10),
			strconv.FormatFloat(st.AvgTech, 'f', 6, 64),
			strconv.FormatFloat(st.MeanTemperature, 'f', 6, 64),
			strconv.FormatFloat(st.ClimateStability, 'f', 6, 64),
			st.Action,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadStats(runID string) ([]dynamo.Stats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(statsHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []dynamo.Stats{}, nil
	}

	stats := make([]dynamo.Stats, 0, len(records)-1)
	for i, rec := range records[1:] {
		st, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("run %s row %d: %w", runID, i+1, err)
		}
		stats = append(stats, st)
	}
	return stats, nil
}

func parseRow(rec []string) (dynamo.Stats, error) {
	var (
		st   dynamo.Stats
		errs []error
	)
	atoi := func(s string) int {
		v, err := strconv.Atoi(s)
		errs = append(errs, err)
		return v
	}
	float := func(s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		errs = append(errs, err)
		return v
	}

	st.Tick = atoi(rec[0])
	st.Civilizations = atoi(rec[1])
	st.Populations = atoi(rec[2])
	biomass, err := strconv.ParseUint(rec[3], 10, 64)
	errs = append(errs, err)
	st.Biomass = biomass
	st.AvgTech = float(rec[4])
	st.MeanTemperature = float(rec[5])
	st.ClimateStability = float(rec[6])
	st.Action = rec[7]
	return st, errors.Join(errs...)
}
