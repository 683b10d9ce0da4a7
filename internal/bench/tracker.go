package bench

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ResultFile is the name of the best-score file written into the output
// directory.
const ResultFile = "eval_results.txt"

// Tracker keeps the best evaluation score seen across checkpoints.
type Tracker struct {
	mu     sync.Mutex
	dir    string
	best   float64
	source string
	logger *slog.Logger
}

// NewTracker returns a Tracker writing into dir. An empty dir disables the
// result file.
func NewTracker(dir string, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{dir: dir, logger: logger}
}

// Observe records the score of source. It reports whether the score is a
// new best, which requires it to be strictly greater than every earlier
// score. Each new best is written to the result file.
func (t *Tracker) Observe(source string, score float64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if score <= t.best {
		t.logger.Debug("checkpoint not promoted", "source", source, "f1", score, "best", t.best)
		return false, nil
	}
	t.best = score
	t.source = source
	t.logger.Info("new best checkpoint", "source", source, "f1", score)

	if t.dir == "" {
		return true, nil
	}
	return true, t.write()
}

// Best returns the best score and the source that produced it.
func (t *Tracker) Best() (float64, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.best, t.source
}

func (t *Tracker) write() error {
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	line := fmt.Sprintf("Best eval result: F1 = %.4f\n", t.best)
	if err := os.WriteFile(filepath.Join(t.dir, ResultFile), []byte(line), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", ResultFile, err)
	}
	return nil
}

// EvalStep returns how many training batches pass between evaluations:
// five evaluations per epoch, at least one batch apart.
func EvalStep(batches int) int {
	return max(1, batches/5)
}
