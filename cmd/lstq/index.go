package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"lstq/lst"
	"lstq/output"
)

func indexCommand() *cli.Command {
	return &cli.Command{
		Name:      "index",
		Usage:     "build a cross-file symbol index from tree artifacts",
		ArgsUsage: "TREE.json [TREE.json ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output path (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "minimize output",
			},
		},
		Action: runIndex,
	}
}

func runIndex(_ context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errors.New("at least one tree artifact is required")
	}

	trees := make([]*lst.Tree, 0, len(paths))
	for _, p := range paths {
		tree, err := readTree(p)
		if err != nil {
			return err
		}
		trees = append(trees, tree)
	}

	var w io.Writer = os.Stdout
	if outPath := cmd.String("out"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	entries := lst.IndexSymbols(trees)
	return output.New(output.Config{Compact: cmd.Bool("compact"), Output: w}).Write(entries)
}
