package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	appconfig "github.com/doeshing/gitme-go/internal/application/config"
	"github.com/doeshing/gitme-go/internal/domain"
	"github.com/doeshing/gitme-go/internal/ports"
)

// ErrChecksFailed is returned alongside the full report when any check errored.
var ErrChecksFailed = errors.New("checks failed")

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Collector      ports.ChangeCollector
	Locator        ports.RepoLocator
	History        ports.HistoryRepository
	Getenv         func(string) string
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("loaded version %s", cfg.ConfigFormatVersion)))
	}

	checks = append(checks, s.gitChecks(ctx)...)

	for _, kind := range domain.ProviderKinds() {
		checks = append(checks, s.credentialCheck(cfg, kind))
	}

	if s.History != nil {
		if _, err := s.History.Messages(ctx, "", 1); err != nil {
			checks = append(checks, fail("History", fmt.Sprintf("%s: %v", s.History.Path(), err)))
		} else {
			checks = append(checks, ok("History", fmt.Sprintf("%s (%s)", s.History.Path(), cfg.HistoryBackend())))
		}
	}

	report := domain.HealthReport{Checks: checks}
	if failed := report.Failed(); len(failed) > 0 {
		return report, fmt.Errorf("%w: %s", ErrChecksFailed, strings.Join(failed, ", "))
	}
	return report, nil
}

func (s *Service) gitChecks(ctx context.Context) []domain.HealthCheck {
	if s.Collector == nil {
		return []domain.HealthCheck{warn("Git", "collector not initialized")}
	}
	if !s.Collector.IsToolAvailable(ctx) {
		return []domain.HealthCheck{fail("Git", domain.ErrGitNotInstalled.Error())}
	}
	checks := []domain.HealthCheck{ok("Git", "git executable found")}

	if !s.Collector.IsInsideRepository(ctx) {
		return append(checks, warn("Repository", "current directory is not a git repository"))
	}
	details := "inside a git repository"
	if s.Locator != nil {
		if cwd, err := os.Getwd(); err == nil {
			if root, err := s.Locator.Root(cwd); err == nil {
				details = root
			}
		}
	}
	return append(checks, ok("Repository", details))
}

func (s *Service) credentialCheck(cfg domain.Config, kind domain.ProviderKind) domain.HealthCheck {
	getenv := s.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	settings := cfg.ProviderSettings(kind, "", "")
	name := fmt.Sprintf("API key (%s)", kind)
	if getenv(settings.AuthEnvVar) == "" {
		status := warn
		if kind == cfg.DefaultProvider() {
			status = fail
		}
		return status(name, fmt.Sprintf("%s not set", settings.AuthEnvVar))
	}
	return ok(name, fmt.Sprintf("%s set, model %s", settings.AuthEnvVar, settings.Model))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
