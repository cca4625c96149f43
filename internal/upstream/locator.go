// Package upstream locates the upstream repository a repository is tracking.
package upstream

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/simplesurance/upstream-updater/internal/githubclt"
	"github.com/simplesurance/upstream-updater/internal/logfields"
)

const loggerName = "upstream_locator"

// ErrNotFound is returned when no strategy found the repository.
var ErrNotFound = errors.New("upstream repository not found")

// Strategy is a named method to look up a repository.
type Strategy struct {
	Name   string
	Lookup func(ctx context.Context, namespace, name string) (*githubclt.Repository, error)
}

// RepositoryClient retrieves repositories owned by organizations or users.
type RepositoryClient interface {
	OrgRepository(ctx context.Context, org, name string) (*githubclt.Repository, error)
	UserRepository(ctx context.Context, login, name string) (*githubclt.Repository, error)
}

// Locator looks up repositories by trying strategies in order.
type Locator struct {
	strategies []Strategy
	logger     *zap.Logger
}

func New(strategies ...Strategy) *Locator {
	return &Locator{
		strategies: strategies,
		logger:     zap.L().Named(loggerName),
	}
}

// NewGithubLocator returns a Locator that looks up a repository first as
// repository of an organization and then as repository of a user.
func NewGithubLocator(clt RepositoryClient) *Locator {
	return New(
		Strategy{Name: "organization", Lookup: clt.OrgRepository},
		Strategy{Name: "user", Lookup: clt.UserRepository},
	)
}

// Locate returns the repository found by the first successful strategy.
// If all strategies fail, an error wrapping ErrNotFound and the errors of
// all strategies is returned.
func (l *Locator) Locate(ctx context.Context, namespace, name string) (*githubclt.Repository, error) {
	var errs error

	for _, s := range l.strategies {
		repo, err := s.Lookup(ctx, namespace, name)
		if err == nil {
			l.logger.Debug(
				"upstream repository found",
				logfields.Event("upstream_repository_found"),
				logfields.UpstreamRepository(repo.String()),
				zap.String("upstream.strategy", s.Name),
			)

			return repo, nil
		}

		errs = multierr.Append(errs, fmt.Errorf("%s lookup: %w", s.Name, err))
	}

	if errs == nil {
		return nil, fmt.Errorf("%s/%s: %w", namespace, name, ErrNotFound)
	}

	return nil, fmt.Errorf("%s/%s: %w: %w", namespace, name, ErrNotFound, errs)
}
