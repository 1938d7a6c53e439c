package main

import (
	"elevate/internal/di"
	"elevate/internal/structures"
	"flag"
	"fmt"
	"os"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config/config.yaml", "path to the yaml config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "log to the console as well as to files")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "elevate: %s\n", err)
		os.Exit(1)
	}
}
