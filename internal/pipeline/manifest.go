package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Lumos-Labs-HQ/martgen/internal/datagen"
)

// TableResult records one loaded table: how many rows went in and which
// surrogate key range this run owns.
type TableResult struct {
	Name     string `yaml:"name"`
	Rows     int64  `yaml:"rows"`
	FirstKey int    `yaml:"first_key"`
	LastKey  int    `yaml:"last_key"`
}

// Manifest describes a completed pipeline run. With the recorded seed and
// mode the run can be reproduced exactly.
type Manifest struct {
	RunID      string        `yaml:"run_id"`
	Seed       int64         `yaml:"seed"`
	Mode       string        `yaml:"mode"`
	Provider   string        `yaml:"provider"`
	StartedAt  time.Time     `yaml:"started_at"`
	FinishedAt time.Time     `yaml:"finished_at"`
	Tables     []TableResult `yaml:"tables"`
}

func NewManifest(seed int64, mode Mode, provider string, started time.Time) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		Seed:      seed,
		Mode:      mode.String(),
		Provider:  provider,
		StartedAt: started,
	}
}

func (m *Manifest) AddTable(name string, rows int64, keys datagen.IDRange) {
	m.Tables = append(m.Tables, TableResult{
		Name:     name,
		Rows:     rows,
		FirstKey: keys.First,
		LastKey:  keys.Last,
	})
}

// Write persists the manifest as YAML under dir and returns the file path.
func (m *Manifest) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create manifest directory: %w", err)
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("run_%s.yaml", m.StartedAt.Format("2006-01-02_15-04-05")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}
