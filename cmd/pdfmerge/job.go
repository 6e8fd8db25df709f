package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// maxJobFileSize bounds the job file read into memory.
const maxJobFileSize = 1 << 20

var (
	ErrJobRead  = errors.New("cannot read job file")
	ErrJobParse = errors.New("invalid job file")
)

// Job describes one merge in a YAML file. Relative paths resolve against the job file's directory.
type Job struct {
	Header     string `yaml:"header"`
	Quotation  string `yaml:"quotation"`
	Footer     string `yaml:"footer"`
	Background string `yaml:"background"`
	Output     string `yaml:"output"`
}

func loadJob(path string) (*Job, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJobRead, err)
	}
	if info.Size() > maxJobFileSize {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrJobParse, path, maxJobFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJobRead, err)
	}

	var job Job
	if err := yaml.UnmarshalWithOptions(data, &job, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrJobParse, path, err)
	}

	job.resolvePaths(filepath.Dir(path))
	return &job, nil
}

func (j *Job) resolvePaths(dir string) {
	for _, p := range []*string{&j.Header, &j.Quotation, &j.Footer, &j.Background, &j.Output} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}
