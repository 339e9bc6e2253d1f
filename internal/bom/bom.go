// Package bom expands a bill-of-materials manifest into the chart roots it
// references, so one invocation can validate several bundles.
package bom

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// helmWorkloadType marks a workload entry as a Helm chart bundle.
const helmWorkloadType = "helm"

// Manifest is the subset of the BOM schema refcheck consumes.
type Manifest struct {
	Spec struct {
		WorkloadList []Workload `yaml:"workloadList"`
	} `yaml:"spec"`
}

// Workload is one entry of the manifest's workload list.
type Workload struct {
	Name string    `yaml:"name"`
	Type string    `yaml:"type"`
	Helm *HelmSpec `yaml:"helm"`
}

// HelmSpec carries the chart bundle location of a helm workload.
type HelmSpec struct {
	ChartPath string `yaml:"chartPath"`
}

// Expand parses the manifest at path and returns the chart roots of its helm
// workloads, relative paths resolved against the manifest's directory.
// Entries of other types or without a chart path are skipped with a warning;
// a manifest yielding zero usable roots is an error.
func Expand(path string, logger zerolog.Logger) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	baseDir := filepath.Dir(path)
	var roots []string
	for i, workload := range manifest.Spec.WorkloadList {
		name := workload.Name
		if name == "" {
			name = fmt.Sprintf("workloadList[%d]", i)
		}
		if workload.Type != helmWorkloadType {
			logger.Warn().
				Str("workload", name).
				Str("type", workload.Type).
				Msg("skipping non-helm workload")
			continue
		}
		if workload.Helm == nil || workload.Helm.ChartPath == "" {
			logger.Warn().
				Str("workload", name).
				Msg("skipping helm workload without helm.chartPath")
			continue
		}
		chartPath := workload.Helm.ChartPath
		if !filepath.IsAbs(chartPath) {
			chartPath = filepath.Join(baseDir, chartPath)
		}
		roots = append(roots, chartPath)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("manifest %s contains no helm workloads with a chart path", path)
	}
	return roots, nil
}
