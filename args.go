package main

import (
	"flag"
	"fmt"
	"os"
)

// Args are command line arguments. None are required; the server runs
// with built-in defaults if neither flag is given.
type Args struct {
	ConfigFile    string
	ListenAddress string
}

func getArgs() *Args {
	configFile := flag.String("conf", "", "Configuration file (optional).")
	listen := flag.String("listen", "", "Listen address, overriding the config file (optional).")

	flag.Parse()

	return &Args{
		ConfigFile:    *configFile,
		ListenAddress: *listen,
	}
}

func printUsage(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "%s\n", err)
	_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [arguments]\n", os.Args[0])
	flag.PrintDefaults()
}
