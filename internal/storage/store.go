package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/episim/internal/dynamo"
	"github.com/san-kum/episim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
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
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Method    string             `json:"method"`
	Dims      []string           `json:"dims"`
	Timestamp time.Time          `json:"timestamp"`
	Params    dynamo.Params      `json:"params"`
	N         float64            `json:"n"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Drift     float64            `json:"drift"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Duration is the simulated horizon in days.
func (m *RunMetadata) Duration() float64 {
	return float64(m.Steps) * m.Dt
}

// Save writes a finished run and returns its id. A failed save leaves no
// run directory behind.
func (s *Store) Save(res *sim.Result, params dynamo.Params, kpis map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%s", strings.ToLower(res.Meta.Model), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     res.Meta.Model,
		Method:    res.Meta.Method,
		Dims:      res.Meta.Dims,
		Timestamp: time.Now().UTC(),
		Params:    params,
		N:         res.N,
		Dt:        res.Dt,
		Steps:     res.Steps,
		Drift:     res.Drift,
		Metrics:   kpis,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save %s: %w", runID, err)
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), &res.Series); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save %s: %w", runID, err)
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSeries(path string, series *sim.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := append([]string{"t"}, series.Labels...)
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for k := range series.T {
		row[0] = strconv.FormatFloat(series.T[k], 'f', -1, 64)
		for i, vals := range series.Values {
			row[i+1] = strconv.FormatFloat(vals[k], 'f', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every stored run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads the trajectory of a stored run.
func (s *Store) LoadSeries(runID string) (*sim.Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
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
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty series file", runID)
	}

	header := records[0]
	if len(header) < 2 || header[0] != "t" {
		return nil, fmt.Errorf("%s: unexpected series header %v", runID, header)
	}

	rows := records[1:]
	series := &sim.Series{
		T:      make([]float64, len(rows)),
		Labels: append([]string(nil), header[1:]...),
		Values: make([][]float64, len(header)-1),
	}
	for i := range series.Values {
		series.Values[i] = make([]float64, len(rows))
	}

	for k, record := range rows {
		if len(record) != len(header) {
			return nil, fmt.Errorf("%s row %d: %w", runID, k+1, dynamo.ErrDimensionMismatch)
		}
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", runID, k+1, err)
			}
			if j == 0 {
				series.T[k] = v
			} else {
				series.Values[j-1][k] = v
			}
		}
	}

	return series, nil
}

// LoadResult reassembles a stored run into the shape Run returns.
func (s *Store) LoadResult(runID string) (*RunMetadata, *sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}

	res := &sim.Result{
		Series: *series,
		Meta:   sim.Meta{Model: meta.Model, Method: meta.Method, Dims: meta.Dims},
		Drift:  meta.Drift,
		Steps:  meta.Steps,
		N:      meta.N,
		Dt:     meta.Dt,
	}
	return meta, res, nil
}
