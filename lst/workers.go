package lst

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultIgnoreDirs returns the default list of directories to skip.
func defaultIgnoreDirs() map[string]struct{} {
	return map[string]struct{}{
		".git":          {},
		".hg":           {},
		".svn":          {},
		".jj":           {},
		"node_modules":  {},
		"vendor":        {},
		"dist":          {},
		"build":         {},
		"target":        {},
		".venv":         {},
		"__pycache__":   {},
		".mypy_cache":   {},
		".pytest_cache": {},
		".next":         {},
		".cache":        {},
		".turbo":        {},
		"coverage":      {},
	}
}

// collectorConfig holds file collection configuration.
type collectorConfig struct {
	root       string
	language   Language
	include    []string
	exclude    []string
	ignoreDirs map[string]struct{}
	maxBytes   int64
}

// collector discovers files for processing.
type collector struct {
	cfg collectorConfig
}

func newCollector(cfg collectorConfig) *collector {
	if cfg.ignoreDirs == nil {
		cfg.ignoreDirs = defaultIgnoreDirs()
	}
	return &collector{cfg: cfg}
}

// collect finds all matching files and returns them as FileJobs.
func (c *collector) collect() ([]FileJob, error) {
	absRoot, err := filepath.Abs(c.cfg.root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	var jobs []FileJob
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if _, ok := c.cfg.ignoreDirs[d.Name()]; ok {
				return filepath.SkipDir
			}
			return nil
		}

		if !c.isSupportedFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if !c.matchesGlobs(rel) {
			return nil
		}

		if c.cfg.maxBytes > 0 {
			info, err := d.Info()
			if err != nil {
				// Skip files we can't stat
				return nil
			}
			if info.Size() > c.cfg.maxBytes {
				return nil
			}
		}

		jobs = append(jobs, FileJob{
			AbsPath:     path,
			DisplayPath: rel,
		})
		return nil
	})

	if err != nil {
		return nil, err
	}

	return jobs, nil
}

func (c *collector) isSupportedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, e := range c.cfg.language.Extensions() {
		if ext == e {
			return true
		}
	}
	return false
}

func (c *collector) matchesGlobs(rel string) bool {
	if len(c.cfg.include) > 0 {
		included := false
		for _, pattern := range c.cfg.include {
			if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}
	for _, pattern := range c.cfg.exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return false
		}
	}
	return true
}

// BatchResult is the outcome of building one file.
type BatchResult struct {
	Job  FileJob
	Tree *Tree
	Err  error
}

// runWorkers builds trees for files on a worker pool. The progress callback
// is invoked from the collecting loop only, once per completed file.
func runWorkers(
	files []FileJob, jobs int, process func(FileJob) BatchResult, progress func(done, total int),
) []BatchResult {
	results := make(chan BatchResult, 128)
	jobQueue := make(chan FileJob, 128)
	var wg sync.WaitGroup

	workerCount := jobs
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(files) {
		workerCount = len(files)
	}

	worker := func() {
		defer wg.Done()
		for job := range jobQueue {
			results <- process(job)
		}
	}

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go worker()
	}

	go func() {
		for _, f := range files {
			jobQueue <- f
		}
		close(jobQueue)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []BatchResult
	for res := range results {
		all = append(all, res)
		if progress != nil {
			progress(len(all), len(files))
		}
	}

	return all
}
