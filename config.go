package docsift

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the docsift pipeline.
type Config struct {
	// ArtifactDir is the directory where pipeline artifacts are written.
	// Defaults to "artifacts" in the working directory.
	ArtifactDir string `json:"artifact_dir" yaml:"artifact_dir"`

	// DocTitle labels every ToC entry. Defaults to the input file name.
	DocTitle string `json:"doc_title" yaml:"doc_title"`

	// TOCStart and TOCEnd pin the ToC page range (1-based, inclusive).
	// When both are zero the range is autodetected from page text.
	TOCStart int `json:"toc_start" yaml:"toc_start"`
	TOCEnd   int `json:"toc_end" yaml:"toc_end"`

	// MinLevel drops ToC entries shallower than this depth (0 keeps all).
	MinLevel int `json:"min_level" yaml:"min_level"`

	// Subjects, States, and Parameters configure triple extraction.
	// Empty slices use the built-in vocabularies.
	Subjects   []string `json:"subjects" yaml:"subjects"`
	States     []string `json:"states" yaml:"states"`
	Parameters []string `json:"parameters" yaml:"parameters"`

	// TripleMeta attaches section id and title to extracted triples.
	TripleMeta bool `json:"triple_meta" yaml:"triple_meta"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ArtifactDir: "artifacts",
		TripleMeta:  true,
	}
}

// LoadConfig builds a Config from defaults, an optional JSON file, and
// DOCSIFT_* environment variables, in that order of precedence.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("opening config: %w", err)
		}
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides config fields from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("DOCSIFT_ARTIFACT_DIR"); v != "" {
		c.ArtifactDir = v
	}
	if v := os.Getenv("DOCSIFT_DOC_TITLE"); v != "" {
		c.DocTitle = v
	}
	if v := os.Getenv("DOCSIFT_MIN_LEVEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MinLevel = n
		}
	}
	if v := os.Getenv("DOCSIFT_TOC_PAGES"); v != "" {
		first, rest, found := strings.Cut(v, "-")
		if start, err := strconv.Atoi(first); err == nil {
			end := start
			if found {
				if n, err := strconv.Atoi(rest); err == nil {
					end = n
				}
			}
			c.TOCStart, c.TOCEnd = start, end
		}
	}
}

// Validate checks the configuration for inconsistencies.
func (c Config) Validate() error {
	if c.ArtifactDir == "" {
		return fmt.Errorf("%w: artifact_dir must not be empty", ErrInvalidConfig)
	}
	if (c.TOCStart == 0) != (c.TOCEnd == 0) {
		return fmt.Errorf("%w: toc_start and toc_end must be set together", ErrInvalidConfig)
	}
	if c.TOCEnd != 0 && c.TOCEnd < c.TOCStart {
		return fmt.Errorf("%w: toc_end %d before toc_start %d", ErrInvalidConfig, c.TOCEnd, c.TOCStart)
	}
	if c.MinLevel < 0 {
		return fmt.Errorf("%w: min_level must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Artifact file names inside ArtifactDir.
const (
	TOCFile        = "toc.jsonl"
	ChunksFile     = "chunks.jsonl"
	ValidationFile = "validation.json"
	MetricsFile    = "metrics.json"
	TOCGraphFile   = "toc_graph.json"
	TriplesFile    = "kg_triples.jsonl"
	ReportFile     = "final_report.json"
	WorkbookFile   = "report.xlsx"
	DBFile         = "artifacts.db"
)

// ArtifactPath returns the full path of a named artifact file.
func (c Config) ArtifactPath(name string) string {
	return filepath.Join(c.ArtifactDir, name)
}
