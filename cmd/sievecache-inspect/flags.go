package main

import (
	"flag"
	"time"
)

type options struct {
	target   string
	watch    bool
	interval time.Duration
	json     bool
	version  bool
}

// parseFlags parses os.Args into options. No library in the reference
// dependency set covers CLI flag parsing, so this uses the standard flag
// package directly.
func parseFlags() *options {
	opts := &options{}
	flag.StringVar(&opts.target, "target", "http://localhost:6060", "base URL of the service exposing /debug/sievecache/snapshot")
	flag.BoolVar(&opts.watch, "watch", false, "poll repeatedly instead of a single snapshot")
	flag.DurationVar(&opts.interval, "interval", 2*time.Second, "polling interval when -watch is set")
	flag.BoolVar(&opts.json, "json", false, "print the raw JSON snapshot instead of a formatted summary")
	flag.BoolVar(&opts.version, "version", false, "print the CLI version and exit")
	flag.Parse()
	return opts
}
