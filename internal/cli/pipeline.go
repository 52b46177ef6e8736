package cli

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pipeline describes a sequence of kernel applications over a Parquet file.
//
//	input: events.parquet
//	output: features.parquet
//	steps:
//	  - kernel: discounted_cum_sum
//	    column: reward
//	    alias: return
//	    params:
//	      gamma: 0.99
//	  - kernel: feature_hasher
//	    column: user_id
//	    params:
//	      num_buckets: 1024
type Pipeline struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Steps  []Step `yaml:"steps"`
}

// Step is one kernel application. The output replaces Column unless Alias
// is set, in which case it is appended under Alias.
type Step struct {
	Kernel string         `yaml:"kernel"`
	Column string         `yaml:"column"`
	Alias  string         `yaml:"alias,omitempty"`
	Params map[string]any `yaml:"params"`
}

// LoadPipeline reads and validates a pipeline file.
func LoadPipeline(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline: %w", err)
	}
	return ParsePipeline(data)
}

// ParsePipeline decodes and validates a YAML pipeline.
func ParsePipeline(data []byte) (*Pipeline, error) {
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse pipeline: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks that the pipeline names its files and that every step
// names a kernel and a column.
func (p *Pipeline) Validate() error {
	var errs []error
	if p.Input == "" {
		errs = append(errs, errors.New("pipeline: missing input"))
	}
	if p.Output == "" {
		errs = append(errs, errors.New("pipeline: missing output"))
	}
	if len(p.Steps) == 0 {
		errs = append(errs, errors.New("pipeline: no steps"))
	}
	for i, s := range p.Steps {
		if s.Kernel == "" {
			errs = append(errs, fmt.Errorf("pipeline: step %d: missing kernel", i))
		}
		if s.Column == "" {
			errs = append(errs, fmt.Errorf("pipeline: step %d: missing column", i))
		}
	}
	return errors.Join(errs...)
}

// EncodedParams returns the step parameters as a YAML record.
func (s Step) EncodedParams() ([]byte, error) {
	if s.Params == nil {
		return []byte("{}"), nil
	}
	return yaml.Marshal(s.Params)
}
