package upstream

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/upstream-updater/internal/githubclt"
)

type lookupRecorder struct {
	calls []string
}

func (r *lookupRecorder) strategy(name string, repo *githubclt.Repository, err error) Strategy {
	return Strategy{
		Name: name,
		Lookup: func(_ context.Context, namespace, repoName string) (*githubclt.Repository, error) {
			r.calls = append(r.calls, name+":"+namespace+"/"+repoName)
			return repo, err
		},
	}
}

func TestLocateFirstSuccessWins(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	orgRepo := &githubclt.Repository{Owner: "hashicorp", Name: "vault", DefaultBranch: "main"}
	rec := lookupRecorder{}

	l := New(
		rec.strategy("organization", orgRepo, nil),
		rec.strategy("user", nil, errors.New("must not be called")),
	)

	repo, err := l.Locate(context.Background(), "hashicorp", "vault")
	require.NoError(t, err)
	assert.Same(t, orgRepo, repo)
	assert.Equal(t, []string{"organization:hashicorp/vault"}, rec.calls)
}

func TestLocateFallsBackToNextStrategy(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	userRepo := &githubclt.Repository{Owner: "someone", Name: "tool", DefaultBranch: "master"}
	rec := lookupRecorder{}

	l := New(
		rec.strategy("organization", nil, githubclt.ErrNotFound),
		rec.strategy("user", userRepo, nil),
	)

	repo, err := l.Locate(context.Background(), "someone", "tool")
	require.NoError(t, err)
	assert.Same(t, userRepo, repo)
	assert.Equal(t, []string{"organization:someone/tool", "user:someone/tool"}, rec.calls)
}

func TestLocateAllStrategiesFail(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	orgErr := errors.New("org lookup failed")
	userErr := errors.New("user lookup failed")
	rec := lookupRecorder{}

	l := New(
		rec.strategy("organization", nil, orgErr),
		rec.strategy("user", nil, userErr),
	)

	repo, err := l.Locate(context.Background(), "ghost", "tool")
	require.Error(t, err)
	assert.Nil(t, repo)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, orgErr)
	assert.ErrorIs(t, err, userErr)
	assert.Len(t, rec.calls, 2)

	assert.Contains(t, err.Error(), "organization lookup")
	assert.Contains(t, err.Error(), "user lookup")
}

func TestLocateWithoutStrategies(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	_, err := New().Locate(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrNotFound)
}

type fakeRepoClient struct {
	orgRepos  map[string]*githubclt.Repository
	userRepos map[string]*githubclt.Repository
}

func (f *fakeRepoClient) OrgRepository(_ context.Context, org, name string) (*githubclt.Repository, error) {
	if r, ok := f.orgRepos[org+"/"+name]; ok {
		return r, nil
	}
	return nil, githubclt.ErrNotFound
}

func (f *fakeRepoClient) UserRepository(_ context.Context, login, name string) (*githubclt.Repository, error) {
	if r, ok := f.userRepos[login+"/"+name]; ok {
		return r, nil
	}
	return nil, githubclt.ErrNotFound
}

func TestGithubLocator(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	clt := fakeRepoClient{
		orgRepos: map[string]*githubclt.Repository{
			"traefik/traefik": {Owner: "traefik", Name: "traefik"},
		},
		userRepos: map[string]*githubclt.Repository{
			"someone/tool": {Owner: "someone", Name: "tool"},
		},
	}

	l := NewGithubLocator(&clt)

	repo, err := l.Locate(context.Background(), "traefik", "traefik")
	require.NoError(t, err)
	assert.Equal(t, "traefik/traefik", repo.String())

	repo, err = l.Locate(context.Background(), "someone", "tool")
	require.NoError(t, err)
	assert.Equal(t, "someone/tool", repo.String())

	_, err = l.Locate(context.Background(), "nobody", "tool")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, githubclt.ErrNotFound)
}
