// sievecache-inspect polls a running service's cache snapshot endpoint and
// prints hit/miss/eviction counters, either once or on a fixed interval.
//
// The target service is expected to expose:
//   - GET /debug/sievecache/snapshot - JSON payload with cache statistics.
//
// The snapshot object is intentionally generic; it is decoded into
// map[string]any to avoid version skew between this CLI and the library.
//
// © 2025 sievecache authors. MIT License.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var version = "dev"

func main() {
	opts := parseFlags()

	if opts.version {
		fmt.Println(version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	if opts.watch {
		ticker := time.NewTicker(opts.interval)
		defer ticker.Stop()
		for {
			if err := dumpOnce(ctx, opts); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			select {
			case <-ticker.C:
				continue
			case <-ctx.Done():
				return
			}
		}
	}

	if err := dumpOnce(ctx, opts); err != nil {
		fatal(err)
	}
}

func dumpOnce(ctx context.Context, opts *options) error {
	snap, err := fetchSnapshot(ctx, opts.target)
	if err != nil {
		return err
	}
	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	return prettyPrint(snap)
}

func fetchSnapshot(ctx context.Context, base string) (map[string]any, error) {
	url := base + "/debug/sievecache/snapshot"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}
	var data map[string]any
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func prettyPrint(data map[string]any) error {
	fmt.Printf("Hits:       %v\n", data["hits_total"])
	fmt.Printf("Misses:     %v\n", data["misses_total"])
	fmt.Printf("Evictions:  %v\n", data["evictions_total"])
	fmt.Printf("Len:        %v\n", data["len"])
	fmt.Printf("Capacity:   %v\n", data["capacity"])
	fmt.Printf("Hand:       %v\n", data["hand"])
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "sievecache-inspect:", err)
	os.Exit(1)
}
