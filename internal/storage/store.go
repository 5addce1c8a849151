// Package storage persists wind runs: one directory per run with a json
// metadata file and a csv table of per-streamline launch values and
// outcomes.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/arnauq/qwind/internal/wind"
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

// RunMetadata is the per-run record written to metadata.json.
type RunMetadata struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	M            float64   `json:"m"`
	Mdot         float64   `json:"mdot"`
	Spin         float64   `json:"spin"`
	Eta          float64   `json:"eta"`
	NR           int       `json:"nr"`
	NCPUs        int       `json:"n_cpus"`
	Niter        int       `json:"niter"`
	Modes        []string  `json:"modes,omitempty"`
	RIn          float64   `json:"r_in"`
	ROut         float64   `json:"r_out"`
	MassLossRate float64   `json:"mass_loss_rate"` // g/s
	Escaped      int       `json:"escaped"`
	Launched     int       `json:"launched"`
}

// StreamlineRecord is one row of streamlines.csv.
type StreamlineRecord struct {
	Index   int
	R0      float64
	VT0     float64 // launch speed [c]
	Rho0    float64 // cm^-3
	Escaped bool
}

// Save writes one run directory under the store and returns its id.
func (s *Store) Save(meta RunMetadata, lines []wind.Line) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}

	// Two runs within the same second must not share a directory; a
	// counter suffix disambiguates instead of overwriting.
	base := fmt.Sprintf("wind_%d", time.Now().Unix())
	runID := base
	runDir := filepath.Join(s.baseDir, runID)
	for n := 1; ; n++ {
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
		runDir = filepath.Join(s.baseDir, runID)
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	for _, ln := range lines {
		if ln.Escaped() {
			meta.Escaped++
		}
	}
	meta.Launched = len(lines)

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

	csvFile, err := os.Create(filepath.Join(runDir, "streamlines.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"index", "r_0", "v_T_0", "rho_0", "escaped"}); err != nil {
		return "", err
	}
	for i, ln := range lines {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(ln.R0(), 'f', 6, 64),
			strconv.FormatFloat(ln.VT0(), 'e', 6, 64),
			strconv.FormatFloat(ln.Rho0(), 'e', 6, 64),
			strconv.FormatBool(ln.Escaped()),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns the metadata of every readable run, skipping entries that
// are missing or malformed.
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

// LoadStreamlines reads back the per-streamline table of a saved run.
func (s *Store) LoadStreamlines(runID string) ([]StreamlineRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "streamlines.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []StreamlineRecord{}, nil
	}

	out := make([]StreamlineRecord, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) < 5 {
			continue
		}
		idx, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		r0, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			continue
		}
		vt0, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			continue
		}
		rho0, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			continue
		}
		escaped, err := strconv.ParseBool(row[4])
		if err != nil {
			continue
		}
		out = append(out, StreamlineRecord{
			Index: idx, R0: r0, VT0: vt0, Rho0: rho0, Escaped: escaped,
		})
	}
	return out, nil
}
