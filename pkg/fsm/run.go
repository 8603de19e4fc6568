package fsm

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/layerkit/psimport/pkg/errors"
	"github.com/layerkit/psimport/pkg/importer"
	"github.com/sirupsen/logrus"
	"github.com/superfly/fsm"
)

// Config configures one run.
type Config struct {
	// DBPath is the FSM store directory. Empty uses a temporary directory
	// removed before Run returns.
	DBPath string

	// Logger receives the FSM library's own logs. Nil means NewLogger("info").
	Logger logrus.FieldLogger
}

// NewLogger returns a logrus logger on stderr at level (debug, info, warn,
// error). Unknown levels fall back to info.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// Run executes one import run for the raw selection paths and waits for it.
//
// The returned report is never nil. Partial progress made before a fatal
// error is included in it.
func Run(ctx context.Context, cfg Config, batch *importer.Batch, paths []string) (*importer.Report, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dir, err := os.MkdirTemp("", "psimport-fsm-*")
		if err != nil {
			return &importer.Report{RunID: batch.RunID()}, errors.Wrap(err, "failed to create FSM directory")
		}
		defer os.RemoveAll(dir)
		dbPath = dir
	} else if err := os.MkdirAll(dbPath, 0755); err != nil {
		return &importer.Report{RunID: batch.RunID()}, errors.Wrap(err, "failed to create FSM directory")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = NewLogger("info")
	}

	machine := NewMachine(batch)

	manager, err := fsm.New(fsm.Config{Logger: logger, DBPath: dbPath})
	if err != nil {
		report, _ := machine.Report()
		return report, errors.Wrap(err, "FSM manager failed")
	}

	// Shutdown may only run once; it also waits for in-flight transitions.
	var once sync.Once
	shutdown := func() {
		once.Do(func() { manager.Shutdown(10 * time.Second) })
	}
	defer shutdown()

	start, _, err := machine.Register(ctx, manager)
	if err != nil {
		report, _ := machine.Report()
		return report, err
	}

	runID := batch.RunID()
	if runID == "" {
		runID = uuid.NewString()
	}

	req := &RunRequest{RunID: runID, Paths: paths}
	resp := &RunResponse{}

	version, err := start(ctx, runID, fsm.NewRequest(req, resp))
	if err != nil {
		report, _ := machine.Report()
		return report, errors.Wrap(err, "FSM start failed")
	}

	slog.Debug("fsm_started", "run_id", runID, "version", version)

	waitErr := manager.Wait(ctx, version)

	// Transitions outlive a cancelled ctx until shutdown; snapshot after it.
	shutdown()

	report, fatal := machine.Report()
	if fatal != nil {
		return report, fatal
	}
	if waitErr != nil {
		return report, errors.Wrap(waitErr, "FSM execution failed")
	}
	return report, nil
}
