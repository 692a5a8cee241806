package revenue

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	datasetVersionV1 = "1"
	// DatasetVersion exposes the current dataset format version for tooling.
	DatasetVersion = datasetVersionV1
	// TerminalOutputVolume is the output volume shown for the last funnel stage
	// when a dataset does not set one.
	TerminalOutputVolume = 55
)

//go:embed data/sample.yaml
var sampleDataset []byte

// Dataset is the complete static content of the dashboard. Values returned by
// DefaultDataset are shared and must be treated as read-only.
type Dataset struct {
	Version      string             `json:"version" yaml:"version"`
	Shell        ShellInfo          `json:"shell" yaml:"shell"`
	Navigation   []NavItem          `json:"navigation" yaml:"navigation"`
	Filters      []FilterGroup      `json:"filters" yaml:"filters"`
	Plan         Plan               `json:"plan" yaml:"plan"`
	Categories   []ForecastCategory `json:"categories" yaml:"categories"`
	Funnel       FunnelConfig       `json:"funnel" yaml:"funnel"`
	Performance  []PerformanceRow   `json:"performance" yaml:"performance"`
	Forecast     Forecast           `json:"forecast" yaml:"forecast"`
	KPIs         []KPI              `json:"kpis" yaml:"kpis"`
	Intelligence Intelligence       `json:"intelligence" yaml:"intelligence"`
	Source       string             `json:"-" yaml:"-"`
}

var (
	defaultDatasetOnce sync.Once
	defaultDataset     *Dataset
	defaultDatasetErr  error
)

// DefaultDataset decodes the embedded sample data once.
func DefaultDataset() (*Dataset, error) {
	defaultDatasetOnce.Do(func() {
		defaultDataset, defaultDatasetErr = DecodeDataset(bytes.NewReader(sampleDataset))
		if defaultDataset != nil {
			defaultDataset.Source = "embedded:data/sample.yaml"
		}
	})
	return defaultDataset, defaultDatasetErr
}

// MustDefaultDataset panics when the embedded dataset is invalid.
func MustDefaultDataset() *Dataset {
	ds, err := DefaultDataset()
	if err != nil {
		panic(err)
	}
	return ds
}

// ReadDataset loads a dataset file from disk.
func ReadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("revenue: open dataset %s: %w", path, err)
	}
	defer f.Close()
	ds, err := DecodeDataset(f)
	if err != nil {
		return nil, fmt.Errorf("revenue: decode dataset %s: %w", path, err)
	}
	ds.Source = path
	return ds, nil
}

// DecodeDataset reads a dataset from any reader. Unknown fields are rejected.
func DecodeDataset(r io.Reader) (*Dataset, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var ds Dataset
	if err := decoder.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("revenue: dataset is empty")
		}
		return nil, fmt.Errorf("revenue: parse dataset: %w", err)
	}
	ds.applyDefaults()
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate ensures the dataset can be rendered.
func (ds *Dataset) Validate() error {
	if ds.Version != datasetVersionV1 {
		return fmt.Errorf("revenue: unsupported dataset version %q", ds.Version)
	}
	if len(ds.Funnel.Stages) == 0 {
		return fmt.Errorf("revenue: dataset has no funnel stages")
	}
	seen := make(map[string]struct{}, len(ds.Funnel.Stages))
	for idx, stage := range ds.Funnel.Stages {
		if stage.ID == "" {
			return fmt.Errorf("revenue: funnel stage at index %d is missing id", idx)
		}
		if _, exists := seen[stage.ID]; exists {
			return fmt.Errorf("revenue: duplicate funnel stage %s", stage.ID)
		}
		seen[stage.ID] = struct{}{}
		if stage.Volume <= 0 {
			return fmt.Errorf("revenue: funnel stage %s must have a positive volume", stage.ID)
		}
	}
	if ds.Plan.Plan <= 0 {
		return fmt.Errorf("revenue: plan amount must be positive")
	}
	if ds.Forecast.Target <= 0 {
		return fmt.Errorf("revenue: forecast target must be positive")
	}
	for _, kpi := range ds.KPIs {
		switch kpi.Kind {
		case KPIPercentage, KPICurrency, KPINumber, KPIText:
		default:
			return fmt.Errorf("revenue: kpi %q has unknown kind %q", kpi.Title, kpi.Kind)
		}
	}
	for _, group := range ds.Filters {
		if group.Key == "" {
			return fmt.Errorf("revenue: filter group %q is missing key", group.Label)
		}
		if !containsString(group.Options, group.Default) {
			return fmt.Errorf("revenue: filter %s default %q is not an option", group.Key, group.Default)
		}
	}
	paths := make(map[string]struct{}, len(ds.Navigation))
	for _, item := range ds.Navigation {
		if item.Path == "" {
			return fmt.Errorf("revenue: navigation item %q is missing path", item.Name)
		}
		if _, exists := paths[item.Path]; exists {
			return fmt.Errorf("revenue: duplicate navigation path %s", item.Path)
		}
		paths[item.Path] = struct{}{}
	}
	return nil
}

func (ds *Dataset) applyDefaults() {
	if ds.Version == "" {
		ds.Version = datasetVersionV1
	}
	if ds.Funnel.TerminalOutput <= 0 {
		ds.Funnel.TerminalOutput = TerminalOutputVolume
	}
	if ds.Shell.Home == "" {
		ds.Shell.Home = "/dashboard"
	}
	if ds.Shell.Landing == "" {
		ds.Shell.Landing = ds.Shell.Home
	}
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
