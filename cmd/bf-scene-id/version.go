package main

import (
	"fmt"

	cli "gopkg.in/urfave/cli.v1"
)

const version = "1.0.0"

func versionAction(c *cli.Context) error {
	fmt.Println("bf-scene-id version " + version)
	return nil
}
