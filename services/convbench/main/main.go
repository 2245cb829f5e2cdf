// This tool compares the throughput and the leaked foreign temporaries of
// the string conversion strategies.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/xichen2020/objcstr/convert"
	"github.com/xichen2020/objcstr/services/convbench/bench"
	"github.com/xichen2020/objcstr/services/convbench/config"

	xconfig "github.com/m3db/m3x/config"
	"github.com/m3db/m3x/instrument"
	"github.com/m3db/m3x/log"
	"github.com/pborman/uuid"
	"github.com/uber-go/tally"
)

var (
	configFile = flag.String("f", "convbench.yaml", "configuration file")
)

func main() {
	// Parse command line args.
	flag.Parse()

	if len(*configFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	var cfg config.Configuration
	if err := xconfig.LoadFile(&cfg, *configFile, xconfig.Options{}); err != nil {
		fmt.Printf("error loading config file %s: %v\n", *configFile, err)
		os.Exit(1)
	}

	// Create logger and metrics scope.
	logger, err := cfg.Logging.BuildLogger()
	if err != nil {
		fmt.Printf("error creating logger: %v\n", err)
		os.Exit(1)
	}
	logger = logger.WithFields(log.NewField("run", uuid.NewUUID().String()))

	var (
		scope  = tally.NoopScope
		closer io.Closer
	)
	if cfg.Metrics != nil {
		scope, closer, err = cfg.Metrics.NewRootScope()
		if err != nil {
			logger.Fatalf("error creating metrics root scope: %v", err)
		}
		defer closer.Close()
	}
	instrumentOpts := instrument.NewOptions().
		SetLogger(logger).
		SetMetricsScope(scope)

	rt, err := cfg.Runtime.NewRuntime(instrumentOpts.SetMetricsScope(scope.SubScope("runtime")))
	if err != nil {
		logger.Fatalf("error creating runtime: %v", err)
	}
	converter := convert.NewConverter(cfg.Converter.NewOptions(instrumentOpts))

	var (
		input      = cfg.Bench.InputText()
		iterations = cfg.Bench.IterationsOrDefault()
	)
	logger.Infof("converting %d bytes %d times per strategy using %s runtime", len(input), iterations, cfg.Runtime.Kind)
	for _, strategy := range cfg.Bench.StrategiesOrDefault() {
		res := bench.Run(rt, converter, strategy, input, iterations)
		logger.Info(res.String())
		if res.Mismatches > 0 {
			logger.Errorf("%s strategy produced %d mismatched conversions", strategy, res.Mismatches)
		}
		if res.Leaked > 0 {
			logger.Warnf("%s strategy leaked %d autoreleased temporaries", strategy, res.Leaked)
		}
	}

	if c, ok := rt.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Errorf("runtime closed with leaks: %v", err)
		}
	}
}
