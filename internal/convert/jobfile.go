// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docconv/internal/fsutil"
	"github.com/pdiddy/docconv/pkg/types"
)

// Job is one conversion listed in a job file.
type Job struct {
	Kind   types.ConversionKind `yaml:"kind"`
	Input  string               `yaml:"input"`
	Output string               `yaml:"output,omitempty"`
	DPI    int                  `yaml:"dpi,omitempty"`
}

// JobFile is the on-disk list of conversions for a batch run:
//
//	jobs:
//	  - kind: pdf-images
//	    input: report.pdf
//	    dpi: 150
//	  - kind: docx-tables
//	    input: survey.docx
//	    output: out/survey.xlsx
type JobFile struct {
	Jobs []Job `yaml:"jobs"`
}

// LoadJobFile reads and validates a job file. Relative input and output
// paths are taken relative to the job file's directory.
func LoadJobFile(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}

	var jf JobFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("parsing job file %s: %w", path, err)
	}
	if len(jf.Jobs) == 0 {
		return nil, fmt.Errorf("job file %s lists no jobs", path)
	}

	base := filepath.Dir(path)
	for i := range jf.Jobs {
		j := &jf.Jobs[i]
		if !j.Kind.Valid() {
			return nil, fmt.Errorf("job %d: unknown kind %q (want %s or %s)",
				i+1, j.Kind, types.KindPDFImages, types.KindDOCXTables)
		}
		if j.Input == "" {
			return nil, fmt.Errorf("job %d: input is required", i+1)
		}
		if j.DPI < 0 {
			return nil, fmt.Errorf("job %d: dpi must be positive", i+1)
		}
		j.Input = relativeTo(base, j.Input)
		if j.Output != "" {
			j.Output = relativeTo(base, j.Output)
		}
	}
	return jf.Jobs, nil
}

// JobsForPaths builds one job per input, choosing the converter from the
// file extension (.pdf or .docx).
func JobsForPaths(paths []string) ([]Job, error) {
	jobs := make([]Job, 0, len(paths))
	for _, p := range paths {
		switch strings.ToLower(filepath.Ext(p)) {
		case ".pdf":
			jobs = append(jobs, Job{Kind: types.KindPDFImages, Input: p})
		case ".docx":
			jobs = append(jobs, Job{Kind: types.KindDOCXTables, Input: p})
		default:
			return nil, fmt.Errorf("%s: unsupported file type (want .pdf or .docx)", p)
		}
	}
	return jobs, nil
}

// WriteJobFile saves jobs as YAML at path, creating its directory. Input
// and output paths are rewritten relative to that directory so that
// LoadJobFile resolves them to the same files.
func WriteJobFile(path string, jobs []Job) error {
	abs, err := fsutil.Resolve(path)
	if err != nil {
		return err
	}
	base := filepath.Dir(abs)

	out := make([]Job, len(jobs))
	for i, j := range jobs {
		if j.Input, err = relativeFrom(base, j.Input); err != nil {
			return fmt.Errorf("job %d: %w", i+1, err)
		}
		if j.Output != "" {
			if j.Output, err = relativeFrom(base, j.Output); err != nil {
				return fmt.Errorf("job %d: %w", i+1, err)
			}
		}
		out[i] = j
	}

	data, err := yaml.Marshal(JobFile{Jobs: out})
	if err != nil {
		return fmt.Errorf("marshaling job file: %w", err)
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return fmt.Errorf("creating job file directory: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("writing job file: %w", err)
	}
	return nil
}

// relativeFrom expresses p relative to base, falling back to the absolute
// path when no relative form exists.
func relativeFrom(base, p string) (string, error) {
	abs, err := fsutil.Resolve(p)
	if err != nil {
		return "", err
	}
	if rel, err := filepath.Rel(base, abs); err == nil {
		return rel, nil
	}
	return abs, nil
}

func relativeTo(base, p string) string {
	if filepath.IsAbs(p) || p == "~" || strings.HasPrefix(p, "~/") {
		return p
	}
	return filepath.Join(base, p)
}
