package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/doeshing/gitme-go/internal/application/doctor"
	"github.com/doeshing/gitme-go/internal/application/generate"
	"github.com/doeshing/gitme-go/internal/domain"
	"github.com/doeshing/gitme-go/internal/infrastructure/ai"
	"github.com/doeshing/gitme-go/internal/infrastructure/config"
	"github.com/doeshing/gitme-go/internal/infrastructure/git"
	"github.com/doeshing/gitme-go/internal/infrastructure/history"
	"github.com/doeshing/gitme-go/internal/pkg/filesystem"
	"github.com/doeshing/gitme-go/internal/pkg/logger"
	"github.com/doeshing/gitme-go/internal/ports"
)

// Options configures container construction.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	GenerateService *generate.Service
	DoctorService   *doctor.Service
	ConfigLoader    *config.FileLoader
	HistoryStore    ports.HistoryRepository
	Logger          ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(opts.Verbose)
	runner := git.NewExecRunner("", "")
	collector := git.NewCollector(runner, log)
	locator := git.NewLocator()
	historyStore := newHistoryStore(cfg, log)

	generateService := &generate.Service{
		ConfigProvider:  cfgLoader,
		Collector:       collector,
		Committer:       git.NewCommitter(runner, ""),
		Locator:         locator,
		ProviderFactory: ai.NewFactory(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second),
		BuildGenerator: func(provider ports.Provider, cfg domain.Config) ports.MessageGenerator {
			return ai.NewGenerator(provider, ai.NewPromptBuilder(cfg.MaxDiffChars()), log)
		},
		History: historyStore,
		Logger:  log,
		Now:     time.Now,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Collector:      collector,
		Locator:        locator,
		History:        historyStore,
		Getenv:         os.Getenv,
	}

	return &Container{
		GenerateService: generateService,
		DoctorService:   doctorService,
		ConfigLoader:    cfgLoader,
		HistoryStore:    historyStore,
		Logger:          log,
	}, nil
}

// Close releases the history store when it holds an open handle.
func (c *Container) Close() error {
	if closer, ok := c.HistoryStore.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// newHistoryStore resolves the per-user history location. A SQLite store that
// cannot be opened falls back to the JSON file next to it.
func newHistoryStore(cfg domain.Config, log ports.Logger) ports.HistoryRepository {
	path := cfg.HistoryPath(filesystem.UserHomeDir())
	if cfg.HistoryBackend() == domain.HistoryBackendSQLite {
		store, err := history.NewSQLiteStore(path, cfg.HistoryMaxEntries(), log)
		if err == nil {
			return store
		}
		log.Warn("sqlite history unavailable, using json file", map[string]interface{}{"path": path, "error": err.Error()})
		fallback := cfg
		fallback.History.Backend = domain.HistoryBackendJSON
		fallback.History.FileName = ""
		path = fallback.HistoryPath(filesystem.UserHomeDir())
	}
	return history.NewFileStore(path, cfg.HistoryMaxEntries())
}
