package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"lstq/lst"
	"lstq/output"
)

func main() {
	app := &cli.Command{
		Name:  "lstq",
		Usage: "lossless structural trees for checking port fidelity",
		Commands: []*cli.Command{
			buildCommand(),
			verifyCommand(),
			compareCommand(),
			indexCommand(),
			mdCommand(),
			batchCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		output.WriteError(err)
		// Exit 2 for input/IO errors; verdict failures carry their own code.
		code := 2
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			code = ec.ExitCode()
		}
		os.Exit(code)
	}
}

// readTree loads a serialized tree artifact.
func readTree(path string) (*lst.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}
	var tree lst.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse tree %s: %w", path, err)
	}
	return &tree, nil
}
