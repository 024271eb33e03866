package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"lstq/lst"
	"lstq/output"
)

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:  "compare",
		Usage: "compare two trees structurally, modulo a rename/ignore mapping",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "origin",
				Usage:    "origin-side tree artifact or source file (required)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "ported",
				Usage:    "ported-side tree artifact or source file (required)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "mapping",
				Aliases: []string{"m"},
				Usage:   "rename/ignore mapping file (YAML or JSON)",
			},
			&cli.IntFlag{
				Name:  "top",
				Value: lst.DefaultTopDiffs,
				Usage: "max token diffs to report",
			},
			&cli.StringFlag{
				Name:  "engine",
				Value: lst.EngineHeuristic,
				Usage: "engine used when a side is a raw source file",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "minimize output",
			},
		},
		Action: runCompare,
	}
}

func runCompare(ctx context.Context, cmd *cli.Command) error {
	mapping, err := lst.LoadMapping(cmd.String("mapping"))
	if err != nil {
		return err
	}

	engine := cmd.String("engine")
	var origin, ported *lst.Tree

	// The two sides are independent pure builds; load them concurrently.
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		origin, err = loadSide(cmd.String("origin"), engine)
		return err
	})
	g.Go(func() error {
		var err error
		ported, err = loadSide(cmd.String("ported"), engine)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	result := lst.Compare(origin, ported, mapping, cmd.Int("top"))
	out := output.New(output.Config{Compact: cmd.Bool("compact")})
	if err := out.Write(result); err != nil {
		return err
	}

	if !result.Match {
		return cli.Exit("structural mismatch", 1)
	}
	return nil
}

// loadSide accepts either a serialized tree artifact (.json) or a raw
// source file, which is built on the fly.
func loadSide(path, engine string) (*lst.Tree, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return readTree(path)
	}
	tree, _, err := lst.BuildFile(path, "", engine)
	return tree, err
}
