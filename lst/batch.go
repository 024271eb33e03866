package lst

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// builderFor resolves an engine name to its build function.
func builderFor(engine string) (func([]byte, string, Language) (*Tree, error), error) {
	switch engine {
	case "", EngineHeuristic:
		return Build, nil
	case EngineSitter:
		return BuildSitter, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", engine)
	}
}

// BuildFile reads and builds one file. The language is resolved from
// langName, or from the file extension when langName is empty. Returns the
// tree together with the raw source so callers can verify or compare
// without re-reading.
func BuildFile(path, langName, engine string) (*Tree, []byte, error) {
	build, err := builderFor(engine)
	if err != nil {
		return nil, nil, err
	}

	lang := Get(langName)
	if lang == nil && langName != "" {
		known := List()
		sort.Strings(known)
		return nil, nil, fmt.Errorf("unknown language %q (have: %s)", langName, strings.Join(known, ", "))
	}
	if lang == nil {
		ext := strings.ToLower(filepath.Ext(path))
		if lang = ByExtension(ext); lang == nil {
			return nil, nil, fmt.Errorf("no language registered for %q files", ext)
		}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	tree, err := build(source, path, lang)
	if err != nil {
		return nil, nil, err
	}
	return tree, source, nil
}

// Batch builds trees for every matching file under a root directory.
//
// Each built tree is verified against its source before being reported;
// results come back sorted by display path. A result with a non-nil Err
// does not stop the batch.
func Batch(opts BatchOptions) ([]BatchResult, error) {
	if opts.Language == "" {
		return nil, errors.New("language is required")
	}
	if opts.Path == "" {
		opts.Path = "."
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.MaxBytes == 0 {
		opts.MaxBytes = 2 * 1024 * 1024
	}

	lang := Get(opts.Language)
	if lang == nil {
		return nil, errors.New(opts.Language + " language not registered")
	}

	build, err := builderFor(opts.Engine)
	if err != nil {
		return nil, err
	}

	c := newCollector(collectorConfig{
		root:     opts.Path,
		language: lang,
		include:  opts.Include,
		exclude:  opts.Exclude,
		maxBytes: opts.MaxBytes,
	})
	files, err := c.collect()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return []BatchResult{}, nil
	}

	process := func(job FileJob) BatchResult {
		source, err := os.ReadFile(job.AbsPath)
		if err != nil {
			return BatchResult{Job: job, Err: fmt.Errorf("read file: %w", err)}
		}
		tree, err := build(source, job.DisplayPath, lang)
		if err != nil {
			return BatchResult{Job: job, Err: err}
		}
		if v := VerifyTree(tree, source); !v.OK {
			return BatchResult{
				Job: job,
				Err: fmt.Errorf("%s: reconstruction diverges at byte %d", job.DisplayPath, v.FirstDivergence),
			}
		}
		return BatchResult{Job: job, Tree: tree}
	}

	results := runWorkers(files, opts.Jobs, process, opts.Progress)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Job.DisplayPath < results[j].Job.DisplayPath
	})
	return results, nil
}
