package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"lstq/lst"
)

func mdCommand() *cli.Command {
	return &cli.Command{
		Name:  "md",
		Usage: "render a tree artifact as a markdown summary",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "tree artifact to render (required)",
				Required: true,
			},
		},
		Action: runMd,
	}
}

func runMd(_ context.Context, cmd *cli.Command) error {
	tree, err := readTree(cmd.String("file"))
	if err != nil {
		return err
	}
	fmt.Print(lst.Markdown(tree))
	return nil
}
