package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"lstq/lst"
	"lstq/output"
	"lstq/store"
)

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "build trees for every matching file under a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Value: ".",
				Usage: "root path to scan",
			},
			&cli.StringFlag{
				Name:     "lang",
				Usage:    "language name (required)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "engine",
				Value: lst.EngineHeuristic,
				Usage: "tree construction engine (heuristic|sitter)",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "doublestar glob to include (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "doublestar glob to exclude (repeatable)",
			},
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "write one TREE.lst.json per file under this directory",
			},
			&cli.StringFlag{
				Name:  "cache",
				Usage: "bbolt cache database; trees are stored by source hash",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Value:   runtime.NumCPU(),
				Usage:   "number of parallel workers",
			},
			&cli.Int64Flag{
				Name:  "max-bytes",
				Value: 2 * 1024 * 1024,
				Usage: "skip files larger than this",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "show a progress bar on stderr",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "minimize output",
			},
		},
		Action: runBatch,
	}
}

type batchFileReport struct {
	File  string `json:"file"`
	OK    bool   `json:"ok"`
	Hash  string `json:"source_hash,omitempty"`
	Error string `json:"error,omitempty"`
}

type batchReport struct {
	Built  int               `json:"built"`
	Failed int               `json:"failed"`
	Files  []batchFileReport `json:"files"`
}

func runBatch(_ context.Context, cmd *cli.Command) error {
	opts := lst.BatchOptions{
		Path:     cmd.String("path"),
		Language: cmd.String("lang"),
		Engine:   cmd.String("engine"),
		Include:  cmd.StringSlice("include"),
		Exclude:  cmd.StringSlice("exclude"),
		Jobs:     cmd.Int("jobs"),
		MaxBytes: cmd.Int64("max-bytes"),
	}

	if cmd.Bool("progress") {
		var bar *progressbar.ProgressBar
		opts.Progress = func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("building"),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionOnCompletion(func() {
						fmt.Fprintln(os.Stderr)
					}),
				)
			}
			_ = bar.Set(done)
		}
	}

	results, err := lst.Batch(opts)
	if err != nil {
		return err
	}

	var cache *store.Store
	if cachePath := cmd.String("cache"); cachePath != "" {
		cache, err = store.Open(cachePath)
		if err != nil {
			return err
		}
		defer cache.Close()
	}

	outDir := cmd.String("out-dir")
	report := batchReport{Files: make([]batchFileReport, 0, len(results))}

	for _, res := range results {
		fr := batchFileReport{File: res.Job.DisplayPath}
		switch {
		case res.Err != nil:
			fr.Error = res.Err.Error()
			report.Failed++
		default:
			fr.OK = true
			fr.Hash = res.Tree.SourceHash
			report.Built++
			if err := persistTree(res.Tree, outDir, cache); err != nil {
				return err
			}
		}
		report.Files = append(report.Files, fr)
	}

	out := output.New(output.Config{Compact: cmd.Bool("compact")})
	if err := out.Write(report); err != nil {
		return err
	}

	if report.Failed > 0 {
		return cli.Exit("batch completed with failures", 1)
	}
	return nil
}

func persistTree(tree *lst.Tree, outDir string, cache *store.Store) error {
	if cache != nil {
		cached, err := cache.Has(tree.SourceHash)
		if err != nil {
			return err
		}
		if !cached {
			if err := cache.Put(tree); err != nil {
				return err
			}
		}
	}

	if outDir == "" {
		return nil
	}
	dest := filepath.Join(outDir, tree.File+".lst.json")
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer f.Close()
	return output.New(output.Config{Compact: true, Output: f}).Write(tree)
}
