package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"lstq/lst"
	"lstq/output"
)

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "build a lossless structural tree for a source file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "source file to decompose (required)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "language name (default: by file extension)",
			},
			&cli.StringFlag{
				Name:  "engine",
				Value: lst.EngineHeuristic,
				Usage: "tree construction engine (heuristic|sitter)",
			},
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
		Action: runBuild,
	}
}

func runBuild(_ context.Context, cmd *cli.Command) error {
	tree, source, err := lst.BuildFile(cmd.String("file"), cmd.String("lang"), cmd.String("engine"))
	if err != nil {
		return err
	}

	// Builder bug guard: never emit an artifact that does not reconstruct.
	if v := lst.VerifyTree(tree, source); !v.OK {
		return cli.Exit(fmt.Sprintf("reconstruction diverges at byte %d", v.FirstDivergence), 1)
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

	return output.New(output.Config{Compact: cmd.Bool("compact"), Output: w}).Write(tree)
}
