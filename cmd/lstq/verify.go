package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"lstq/lst"
	"lstq/output"
)

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "check that tree artifacts reconstruct their sources losslessly",
		ArgsUsage: "TREE.json [TREE.json ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "directory the trees' file paths are relative to",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "minimize output",
			},
		},
		Action: runVerify,
	}
}

type verifyReport struct {
	Artifact string `json:"artifact"`
	File     string `json:"file"`
	OK       bool   `json:"ok"`
	// FirstDivergence is the offset of the first divergent byte; -1 when OK.
	FirstDivergence int    `json:"first_divergence_offset"`
	Error           string `json:"error,omitempty"`
}

func runVerify(_ context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errors.New("at least one tree artifact is required")
	}
	root := cmd.String("root")
	out := output.New(output.Config{Compact: cmd.Bool("compact")})

	allOK := true
	for _, artifact := range paths {
		report := verifyArtifact(artifact, root)
		if !report.OK {
			allOK = false
		}
		if err := out.Write(report); err != nil {
			return err
		}
	}

	if !allOK {
		return cli.Exit("verification failed", 1)
	}
	return nil
}

func verifyArtifact(artifact, root string) verifyReport {
	report := verifyReport{Artifact: artifact, FirstDivergence: -1}

	tree, err := readTree(artifact)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.File = tree.File

	sourcePath := tree.File
	if root != "" && !filepath.IsAbs(sourcePath) {
		sourcePath = filepath.Join(root, sourcePath)
	}
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		report.Error = fmt.Sprintf("read source: %v", err)
		return report
	}

	v := lst.VerifyTree(tree, source)
	report.OK = v.OK
	report.FirstDivergence = v.FirstDivergence
	return report
}
