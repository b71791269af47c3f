package main

import (
	"log"
	"os"
)

func main() {
	args := getArgs()

	cfg, err := loadConfig(args.ConfigFile)
	if err != nil {
		printUsage(err)
		os.Exit(1)
	}

	if args.ListenAddress != "" {
		cfg.ListenAddress = args.ListenAddress
	}

	s := newServer(cfg)
	go s.run()

	if err := s.listenAndServe(cfg.ListenAddress); err != nil {
		log.Fatalf("listen: %s", err)
	}
}
