package main

import (
	"errors"
	"fmt"
	"os"

	"eduportal/internal/cli"
	"eduportal/internal/config"
)

func main() {
	config.LoadEnv()

	app := &cli.App{Cfg: config.LoadConfig()}
	if err := cli.NewRootCommand(app).Execute(); err != nil {
		if !errors.Is(err, cli.ErrRejected) {
			fmt.Fprintln(os.Stderr, "Ошибка:", err)
		}
		os.Exit(1)
	}
}
