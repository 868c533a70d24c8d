package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/charmbracelet/log"
	"github.com/rawbytedev/anybox"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "boxprof",
		Usage: "Profile anybox container workloads",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "", Usage: "workload file (.yaml, .yml or .toml)"},
			&cli.IntFlag{Name: "iterations", Aliases: []string{"n"}, Value: 0, Usage: "iterations per workload (overrides config)"},
			&cli.StringSliceFlag{Name: "workload", Aliases: []string{"w"}, Usage: "workload to run, repeatable (overrides config)"},
			&cli.StringFlag{Name: "heap-profile", Value: "", Usage: "write a heap profile to this path"},
			&cli.StringFlag{Name: "pprof", Value: "", Usage: "serve net/http/pprof on this address while running"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error"},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	level, err := log.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, ReportTimestamp: true})
	anybox.SetLogger(logger.WithPrefix("anybox"))

	cfg := DefaultConfig()
	if path := cmd.String("config"); path != "" {
		if cfg, err = LoadConfig(path); err != nil {
			return err
		}
	}
	if n := cmd.Int("iterations"); n > 0 {
		cfg.Iterations = int(n)
	}
	if w := cmd.StringSlice("workload"); len(w) > 0 {
		cfg.Workloads = w
	}
	if p := cmd.String("heap-profile"); p != "" {
		cfg.HeapProfile = p
	}
	if addr := cmd.String("pprof"); addr != "" {
		cfg.PprofAddr = addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.PprofAddr != "" {
		go func() {
			logger.Error("pprof server stopped", "err", http.ListenAndServe(cfg.PprofAddr, nil))
		}()
	}
	if cfg.HeapProfile != "" {
		runtime.MemProfileRate = 1
	}

	for _, name := range cfg.Workloads {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := Run(name, cfg.Iterations)
		if err != nil {
			return err
		}
		logger.Info("workload",
			"name", res.Name,
			"iterations", res.Iterations,
			"ns/op", fmt.Sprintf("%.2f", res.NsPerOp()),
			"allocs/op", fmt.Sprintf("%.2f", res.AllocsPerOp()),
		)
	}

	if cfg.HeapProfile == "" {
		return nil
	}
	f, err := os.Create(cfg.HeapProfile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("write heap profile: %w", err)
	}
	logger.Info("wrote heap profile", "path", cfg.HeapProfile)
	return nil
}
