package main

import (
	"fmt"
	"os"

	"Lantern/cmd"
	"Lantern/engine"
	"Lantern/sources"
	"Lantern/sources/webtoon"
)

// registerSources registers every available content source with the engine
func registerSources(e *engine.Engine) {
	sources.Register(webtoon.New(e))
}

func main() {
	cfg, err := engine.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		cfg = engine.DefaultConfig()
	}

	e := engine.New(cfg)
	defer e.Close()

	registerSources(e)

	cmd.SetupEngine(e)
	cmd.Execute()
}
