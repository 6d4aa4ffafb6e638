// Command poolfilter runs the batch filter pipeline with the explicitly
// partitioned worker-pool scheduler. The optional positional argument is
// the worker count.
package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/pixelbench/go-filters/batch"
	"github.com/pixelbench/go-filters/config"
	"github.com/pixelbench/go-filters/logging"
	"github.com/pixelbench/go-filters/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(os.Args) > 1 {
		workers, err := strconv.Atoi(os.Args[1])
		if err != nil || workers <= 0 {
			fmt.Fprintf(os.Stderr, "invalid worker count %q\n", os.Args[1])
			os.Exit(1)
		}
		cfg.Workers = workers
	}

	log := logging.New(cfg.LogLevel)
	defer log.Sync()

	proc, err := batch.New(cfg, schedule.ThreadPoolScheduler{}, log)
	if err != nil {
		log.Fatal("failed to configure processor", zap.Error(err))
	}
	if _, err := proc.Run(); err != nil {
		log.Fatal("run aborted", zap.Error(err))
	}
}
