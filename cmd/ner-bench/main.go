package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	ner "github.com/jamesainslie/go-ner"
	"github.com/jamesainslie/go-ner/internal/bench"
	"github.com/jamesainslie/go-ner/internal/config"
	"github.com/jamesainslie/go-ner/internal/corpus"
	"github.com/jamesainslie/go-ner/internal/report"
	"github.com/jamesainslie/go-ner/internal/telemetry"
)

// Set by the build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// overrides holds the flags that take precedence over the config file and
// the environment. Empty values leave the config untouched.
type overrides struct {
	model       string
	models      string
	data        string
	output      string
	baseline    string
	metricsAddr string
}

func (o overrides) apply(cfg *config.Config) {
	override(&cfg.Model.Path, o.model)
	override(&cfg.Data.Path, o.data)
	override(&cfg.Eval.OutputDir, o.output)
	override(&cfg.Eval.Baseline, o.baseline)
	override(&cfg.Metrics.Addr, o.metricsAddr)
	if list := config.SplitList(o.models); len(list) > 0 {
		cfg.Model.Checkpoints = list
	}
}

func main() {
	var (
		o             overrides
		configPath    = flag.String("config", "", "YAML config file")
		envFile       = flag.String("env", "", "Env file (default: .env if present)")
		writeBaseline = flag.String("write-baseline", "", "Write the best result as a baseline report")
		showVersion   = flag.Bool("version", false, "Print version and exit")
	)
	flag.StringVar(&o.model, "model", "", "Path to ONNX model file")
	flag.StringVar(&o.models, "models", "", "Comma-separated checkpoint paths for comparison")
	flag.StringVar(&o.data, "data", "", "Dataset file or directory (.json, .jsonl)")
	flag.StringVar(&o.output, "output", "", "Directory for "+bench.ResultFile)
	flag.StringVar(&o.baseline, "baseline", "", "Baseline report to check for regressions")
	flag.StringVar(&o.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ner-bench %s (%s, %s)\n", version, commit, date)
		return
	}

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	o.apply(cfg)

	if len(checkpointPaths(cfg)) == 0 {
		fmt.Fprintln(os.Stderr, "error: -model or -models required")
		flag.Usage()
		os.Exit(1)
	}
	if cfg.Data.Path == "" {
		fmt.Fprintln(os.Stderr, "error: -data required")
		flag.Usage()
		os.Exit(1)
	}

	logger := telemetry.SetupLogger(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *writeBaseline); err != nil {
		logger.Error("benchmark failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// checkpointPaths returns the checkpoints to compare, falling back to the
// single model path.
func checkpointPaths(cfg *config.Config) []string {
	if len(cfg.Model.Checkpoints) > 0 {
		return cfg.Model.Checkpoints
	}
	if cfg.Model.Path != "" {
		return []string{cfg.Model.Path}
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config, writeBaseline string) error {
	sentences, err := loadData(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}
	batches := corpus.Batches(sentences, cfg.Data.BatchSize, cfg.Data.MaxLength)

	st := corpus.Describe(sentences)
	fmt.Printf("Loaded %d sentences (%d tokens, %d batches) from %s\n",
		st.Sentences, st.Tokens, len(batches), cfg.Data.Path)
	fmt.Printf("Eval step during training: every %d batches\n\n", bench.EvalStep(len(batches)))

	reg := prometheus.NewRegistry()
	if cfg.Metrics.Addr != "" {
		shutdown := telemetry.StartServer(cfg.Metrics.Addr, reg)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(sctx)
		}()
	}

	opts := []ner.Option{
		ner.WithWorkers(cfg.Eval.Workers),
		ner.WithRegisterer(reg),
	}
	modelOpts := append([]ner.Option{
		ner.WithIONames(cfg.Model.InputName, cfg.Model.OutputName),
		ner.WithPoolSize(cfg.Model.PoolSize),
	}, opts...)

	paths := checkpointPaths(cfg)

	tracker := bench.NewTracker(cfg.Eval.OutputDir, nil)
	results, err := bench.Compare(ctx, paths, bench.TaggerOpener(modelOpts...), batches, tracker, opts...)
	if err != nil {
		return err
	}
	printResults(results)

	best := results[0]
	current := report.FromMetrics(best.Path, cfg.Data.Path, best.Result.Metrics)

	if writeBaseline != "" {
		if err := report.WriteFile(writeBaseline, current); err != nil {
			return err
		}
		fmt.Printf("\nBaseline written to %s\n", writeBaseline)
	}

	if cfg.Eval.Baseline != "" {
		base, err := report.ReadFile(cfg.Eval.Baseline)
		if err != nil {
			return err
		}
		regressions := report.Regressed(base, current, cfg.Eval.Tolerance)
		if len(regressions) > 0 {
			for _, r := range regressions {
				fmt.Printf("REGRESSION: %s\n", r)
			}
			return errors.New("scores regressed against baseline")
		}
		fmt.Printf("\nNo regression against %s (tolerance %.4f)\n", cfg.Eval.Baseline, cfg.Eval.Tolerance)
	}
	return nil
}

func loadData(path string) ([]corpus.Sentence, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return corpus.LoadDir(path)
	}
	return corpus.Load(path)
}

func printResults(results []bench.Candidate) {
	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("%-36s %-8s %-8s %-8s %-8s\n", "Model", "Prec", "Rec", "F1", "Time")
	for _, c := range results {
		m := c.Result.Metrics
		marker := ""
		if c.Best {
			marker = " *"
		}
		fmt.Printf("%-36s %-8.4f %-8.4f %-8.4f %-8s%s\n",
			c.Path, m.Precision, m.Recall, m.F1, c.Result.Elapsed.Round(time.Millisecond), marker)
	}
	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("Best: %s (F1 = %.4f)\n", results[0].Path, results[0].Result.F1())
}
