package main

import (
	"os"

	zlog "github.com/rs/zerolog/log"
)

func main() {
	err := newRootCmd(os.Stdout).Execute()
	if err != nil {
		zlog.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
