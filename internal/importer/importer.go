// Package importer locates and loads project training data from disk:
// the domain file, YAML NLU files and story files scattered across one
// or more data paths.
package importer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/narendrapsgim/rasa/internal/logging"
	"github.com/narendrapsgim/rasa/pkg/dialogue"
	"github.com/narendrapsgim/rasa/pkg/nlu"
	"github.com/narendrapsgim/rasa/pkg/nlu/yamlreader"
)

// Importer provides the three training-data views a validation run needs.
type Importer interface {
	Domain(ctx context.Context) (*dialogue.Domain, error)
	NLUData(ctx context.Context) (*nlu.TrainingData, error)
	Stories(ctx context.Context) (*dialogue.StoryGraph, error)
}

const defaultParallelism = 4

// FileImporter is the filesystem-backed Importer. Data paths may be
// single files or directories; directories are walked recursively and
// files are classified by their top-level YAML keys.
type FileImporter struct {
	domainPath  string
	dataPaths   []string
	parallelism int
	log         *slog.Logger
}

// Option adjusts a FileImporter.
type Option func(*FileImporter)

// WithParallelism caps the number of NLU files parsed concurrently.
func WithParallelism(n int) Option {
	return func(fi *FileImporter) {
		if n > 0 {
			fi.parallelism = n
		}
	}
}

// NewFileImporter builds an importer for the given domain file and data
// paths. An empty domainPath yields an empty domain, which is valid for
// NLU-only projects.
func NewFileImporter(domainPath string, dataPaths []string, opts ...Option) *FileImporter {
	fi := &FileImporter{
		domainPath:  domainPath,
		dataPaths:   dataPaths,
		parallelism: defaultParallelism,
		log:         logging.New("importer"),
	}
	for _, opt := range opts {
		opt(fi)
	}
	return fi
}

// Domain loads the domain file, or an empty domain when none was given.
func (fi *FileImporter) Domain(_ context.Context) (*dialogue.Domain, error) {
	if fi.domainPath == "" {
		return dialogue.ParseDomain(nil)
	}
	return dialogue.LoadDomain(fi.domainPath)
}

// NLUData scans the data paths for NLU files and merges them in path
// order, so the result is deterministic regardless of parse scheduling.
func (fi *FileImporter) NLUData(ctx context.Context) (*nlu.TrainingData, error) {
	files, err := fi.scan(yamlreader.LooksLikeNLUFile)
	if err != nil {
		return nil, err
	}
	fi.log.Debug("loading nlu training data", "files", len(files))

	parts := make([]*nlu.TrainingData, len(files))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(fi.parallelism)
	for i, path := range files {
		g.Go(func() error {
			td, err := yamlreader.ReadFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			parts[i] = td
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return nlu.Merge(parts...), nil
}

// Stories scans the data paths for story files and merges them in path
// order.
func (fi *FileImporter) Stories(_ context.Context) (*dialogue.StoryGraph, error) {
	files, err := fi.scan(dialogue.LooksLikeStoryFile)
	if err != nil {
		return nil, err
	}
	fi.log.Debug("loading stories", "files", len(files))

	parts := make([]*dialogue.StoryGraph, 0, len(files))
	for _, path := range files {
		g, err := dialogue.LoadStories(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		parts = append(parts, g)
	}
	return dialogue.MergeStoryGraphs(parts...), nil
}

// scan walks the data paths and returns the sorted set of files matching
// the classifier.
func (fi *FileImporter) scan(match func(string) bool) ([]string, error) {
	var files []string
	for _, root := range fi.dataPaths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("data path: %w", err)
		}
		if !info.IsDir() {
			if match(root) {
				files = append(files, root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && match(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk data path %s: %w", root, err)
		}
	}
	sort.Strings(files)
	return files, nil
}
