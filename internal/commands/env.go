package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cardledger-dev/cardledger/internal/batch"
	"github.com/cardledger-dev/cardledger/internal/config"
	"github.com/cardledger-dev/cardledger/internal/ledger"
	"github.com/cardledger-dev/cardledger/internal/statement"
)

// ConfigFile is the configuration file name inside a ledger directory.
const ConfigFile = "cardledger.yaml"

// env bundles everything a job command needs: the loaded ledger, its
// config, the file-backed job history, and a logger.
type env struct {
	dir     string
	cfg     *config.Config
	store   *ledger.Memory
	history batch.History
	logger  *zap.Logger
}

func loadEnv(dir string) (*env, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, ConfigFile))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default("cardledger")
	} else if err != nil {
		return nil, err
	}

	store, err := ledger.LoadDir(absDir)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	return &env{
		dir:     absDir,
		cfg:     cfg,
		store:   store,
		history: batch.NewFileHistory(absDir),
		logger:  logger,
	}, nil
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// policy derives statement terms from config, falling back to the standard
// card terms for unset fields.
func (e *env) policy() statement.Policy {
	p := statement.DefaultPolicy()
	if e.cfg.Statement.MinimumPaymentRate > 0 {
		p.MinimumPaymentRate = decimal.NewFromFloat(e.cfg.Statement.MinimumPaymentRate)
	}
	if e.cfg.Statement.MinimumPaymentFloor > 0 {
		p.MinimumPaymentFloor = decimal.NewFromFloat(e.cfg.Statement.MinimumPaymentFloor)
	}
	if e.cfg.Statement.DueGraceDays > 0 {
		p.DueGraceDays = e.cfg.Statement.DueGraceDays
	}
	return p
}

// outputPath resolves an artifact name inside the configured export
// directory, creating the directory if needed.
func (e *env) outputPath(name string) (string, error) {
	outDir := filepath.Join(e.dir, e.cfg.Export.OutputDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	return filepath.Join(outDir, name), nil
}
