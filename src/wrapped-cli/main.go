package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/inference"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/journeys"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/network"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/summary"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/utils"
	"go.uber.org/zap"
)

func main() {
	utils.InitLoggerTo("wrapped-cli", os.Stderr)
	defer utils.SyncLogger()
	log := utils.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, log); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Errorw("failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, log *zap.SugaredLogger) error {
	fs := flag.NewFlagSet("wrapped-cli", flag.ContinueOnError)
	in := fs.String("in", "", "journey history CSV export")
	networkPath := fs.String("network", "tube_network.json", "station network JSON")
	strict := fs.Bool("strict", false, "fail on station network inconsistencies")
	workers := fs.Int("workers", 0, "line inference goroutines (0 = sequential)")
	wantSummary := fs.Bool("summary", false, "print the wrapped summary instead of the journey table")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return fmt.Errorf("-in is required")
	}

	n, err := network.LoadChecked(*networkPath, *strict, log)
	if err != nil {
		return err
	}
	pipeline := journeys.NewPipeline(inference.NewEngine(n, inference.WithLogger(log)),
		journeys.WithWorkers(*workers),
		journeys.WithPipelineLogger(log),
	)

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := pipeline.RunCSV(ctx, f)
	if err != nil {
		return err
	}
	log.Infow("processed export", "format", result.Format, "journeys", len(result.Records), "dropped", result.Dropped)

	var out any = result.Records
	if *wantSummary {
		if out, err = summary.Compute(result.Records); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
