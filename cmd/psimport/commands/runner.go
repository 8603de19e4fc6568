package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/layerkit/psimport/internal/config"
	"github.com/layerkit/psimport/pkg/dialog"
	"github.com/layerkit/psimport/pkg/errors"
	appfsm "github.com/layerkit/psimport/pkg/fsm"
	"github.com/layerkit/psimport/pkg/imagepath"
	"github.com/layerkit/psimport/pkg/importer"
	"github.com/layerkit/psimport/pkg/ledger"
	"github.com/layerkit/psimport/pkg/photoshop"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "config load failed")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config invalid")
	}
	setLogLevel(cfg.LogLevel)
	return cfg, nil
}

func setLogLevel(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

// runner owns the resources of one run: the host session and the ledger.
type runner struct {
	cfg     *config.Config
	runID   string
	session photoshop.Session
	memory  *photoshop.MemorySession
	lazy    *photoshop.LazySession
	ledger  *ledger.Ledger
}

func newRunner(cfg *config.Config) (*runner, error) {
	led, err := ledger.New()
	if err != nil {
		return nil, errors.Wrap(err, "ledger init failed")
	}

	r := &runner{
		cfg:    cfg,
		runID:  uuid.NewString(),
		ledger: led,
	}

	if cfg.DryRun {
		slog.Info("dry_run_enabled", "run_id", r.runID)
		r.memory = photoshop.NewMemorySession()
		r.session = r.memory
	} else {
		progID := cfg.ProgID
		r.lazy = photoshop.NewLazySession(func(ctx context.Context) (photoshop.Session, error) {
			return photoshop.NewSession(ctx, progID)
		})
		r.session = r.lazy
	}
	return r, nil
}

// Close releases the session and drops the ledger.
func (r *runner) Close() error {
	if r.lazy != nil && !r.lazy.Acquired() {
		slog.Debug("host_not_started", "run_id", r.runID)
	}
	return errors.Join(r.session.Close(), r.ledger.Close())
}

func (r *runner) batch(opts ...importer.Option) *importer.Batch {
	opts = append([]importer.Option{
		importer.WithRunID(r.runID),
		importer.WithRecorder(r.ledger),
	}, opts...)

	return importer.NewBatch(r.session,
		importer.NewResolver(r.cfg.DocumentSpec()),
		importer.NewLayerImporter(imagepath.NewValidator(r.cfg.MaxFileSize), r.cfg.PlaceLinked),
		opts...)
}

// logDryRun logs the scripts a dry run would have sent to the host.
func (r *runner) logDryRun() {
	if r.memory == nil {
		return
	}
	for i, script := range r.memory.Scripts() {
		slog.Info("dry_run_script", "seq", i, "script", script)
	}
}

// importSelection runs the full workflow over a raw selection and tells
// notifier about empty selections, each failed image, fatal errors and
// completion.
func (r *runner) importSelection(ctx context.Context, paths []string, notifier dialog.Notifier) (*importer.Report, ledger.Summary, error) {
	observer := importer.ObserverFunc(func(res importer.ImportResult) {
		notifier.Error(fmt.Sprintf("Failed to import image: %s\n%s", res.Path, res.Error))
	})

	fsmCfg := appfsm.Config{
		DBPath: r.cfg.FSMDBPath,
		Logger: appfsm.NewLogger(r.cfg.LogLevel),
	}
	report, err := appfsm.Run(ctx, fsmCfg, r.batch(importer.WithObserver(observer)), paths)
	r.logDryRun()
	if err != nil {
		notifier.Error(fmt.Sprintf("Error while importing images: %v", err))
		return report, ledger.Summary{}, err
	}

	if report.NothingToDo {
		notifier.Warning("No images selected")
		return report, ledger.Summary{}, nil
	}

	// The ledger is the record of what happened; the report follows it.
	results, err := r.ledger.Results(ctx, r.runID)
	if err != nil {
		return report, ledger.Summary{}, err
	}
	report.Results = results

	summary, err := r.ledger.Summary(ctx, r.runID)
	if err != nil {
		return report, summary, err
	}

	notifier.Info(fmt.Sprintf("Image import complete: %d imported, %d failed", summary.Succeeded, summary.Failed))
	return report, summary, nil
}
