package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/upstream-updater/internal/githubclt"
	"github.com/simplesurance/upstream-updater/internal/resolver/mocks"
	"github.com/simplesurance/upstream-updater/internal/version"
)

var upstreamRepo = &githubclt.Repository{Owner: "upstream", Name: "tool", DefaultBranch: "main"}
var downstreamRepo = &githubclt.Repository{Owner: "acme", Name: "tool-image", DefaultBranch: "master"}

func sha(i int) string {
	return fmt.Sprintf("%040x", i+1)
}

// tagsNewestFirst returns tags in the order the GitHub API returns them,
// names must be passed from oldest to newest.
func tagsNewestFirst(names ...string) []*githubclt.Tag {
	result := make([]*githubclt.Tag, 0, len(names))

	for i := len(names) - 1; i >= 0; i-- {
		result = append(result, &githubclt.Tag{Name: names[i], CommitSHA: sha(i)})
	}

	return result
}

func newResolver(t *testing.T) (*Resolver, *mocks.MockReleaseClient) {
	t.Helper()
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	clt := mocks.NewMockReleaseClient(gomock.NewController(t))

	return New(clt), clt
}

func TestSelectTagExamples(t *testing.T) {
	testcases := []struct {
		current  string
		tags     []string
		expected string
	}{
		{current: "0.0.0", tags: []string{"v0.9.0", "v1.0.0", "v1.0.0-rc1", "v1.2.0"}, expected: "0.9.0"},
		{current: "0.9.0", tags: []string{"v0.9.0", "v1.0.0", "v1.0.0-rc1", "v1.2.0"}, expected: "1.0.0"},
		{current: "2.0.0", tags: []string{"v1.0.0", "v2.0.0", "v2.0.1"}, expected: "2.0.1"},
		{current: "3.0.0", tags: []string{"v1.0.0", "v2.0.0"}},
	}

	for _, tc := range testcases {
		t.Run(fmt.Sprintf("%s_%s", tc.current, strings.Join(tc.tags, ",")), func(t *testing.T) {
			c := SelectTag(tagsNewestFirst(tc.tags...), version.MustParse(tc.current), nil)
			if tc.expected == "" {
				assert.Nil(t, c)
				return
			}

			require.NotNil(t, c)
			assert.Equal(t, tc.expected, c.Version.String())
			assert.Equal(t, "v"+tc.expected, c.TagName)
		})
	}
}

func TestSelectTagReturnsOldestQualifyingTag(t *testing.T) {
	c := SelectTag(tagsNewestFirst("v1.0.0", "v1.0.0-rc1", "v1.2.0"), version.Zero, nil)
	require.NotNil(t, c)
	assert.Equal(t, "1.0.0", c.Version.String())
}

func TestSelectTagIgnoresPrereleases(t *testing.T) {
	c := SelectTag(tagsNewestFirst("v1.0.0", "v1.1.0-rc1", "v1.1.0-beta.2"), version.MustParse("1.0.0"), nil)
	assert.Nil(t, c)

	c = SelectTag(tagsNewestFirst("v2.0.0-rc1", "v2.0.0"), version.MustParse("1.0.0"), nil)
	require.NotNil(t, c)
	assert.Equal(t, "2.0.0", c.Version.String())
	assert.False(t, c.Version.IsPrerelease())
}

func TestSelectTagSkipsInvalidTags(t *testing.T) {
	var skipped []string

	c := SelectTag(
		tagsNewestFirst("latest", "release-2020", "v1.0.0"),
		version.Zero,
		func(tag *githubclt.Tag, err error) {
			assert.Error(t, err)
			skipped = append(skipped, tag.Name)
		},
	)
	require.NotNil(t, c)
	assert.Equal(t, "1.0.0", c.Version.String())
	assert.Equal(t, []string{"latest", "release-2020"}, skipped)
}

func TestSelectTagSkipsTagsWithWhitespace(t *testing.T) {
	var skipped []string

	c := SelectTag(
		tagsNewestFirst(" v1.0.5 ", "v1.0.6\n", "v1.0.7"),
		version.MustParse("1.0.4"),
		func(tag *githubclt.Tag, _ error) { skipped = append(skipped, tag.Name) },
	)
	require.NotNil(t, c)
	assert.Equal(t, "1.0.7", c.Version.String())
	assert.Equal(t, []string{" v1.0.5 ", "v1.0.6\n"}, skipped)
}

func TestSelectTagCompletesMajorMinorTags(t *testing.T) {
	c := SelectTag(tagsNewestFirst("v1.1", "v1.2.0"), version.MustParse("1.0.0"), nil)
	require.NotNil(t, c)
	assert.Equal(t, "1.1.0", c.Version.String())
	assert.Equal(t, "v1.1", c.TagName)
}

func TestSelectTagSkipsTagsWithShortSHA(t *testing.T) {
	tags := []*githubclt.Tag{
		{Name: "v1.1.0", CommitSHA: sha(1)},
		{Name: "v1.0.0", CommitSHA: "abc"},
	}

	c := SelectTag(tags, version.Zero, nil)
	require.NotNil(t, c)
	assert.Equal(t, "v1.1.0", c.TagName)
}

func TestSelectTagShas(t *testing.T) {
	tags := []*githubclt.Tag{{Name: "v1.0.0", CommitSHA: "0123456789abcdef0123456789abcdef01234567"}}

	c := SelectTag(tags, version.Zero, nil)
	require.NotNil(t, c)
	assert.Equal(t, "0123456", c.ShortSHA)
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", c.LongSHA)
}

func TestSelectTagNoTags(t *testing.T) {
	assert.Nil(t, SelectTag(nil, version.Zero, nil))
}

func TestSelectTagIsDeterministic(t *testing.T) {
	tags := tagsNewestFirst("v0.1", "v0.2.0", "v0.3.0-rc1", "0.3.0", "v1.0.0")
	current := version.MustParse("0.1.5")

	first := SelectTag(tags, current, nil)
	require.NotNil(t, first)

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, SelectTag(tags, current, nil))
	}
}

func TestSelectTagDoesNotModifyInput(t *testing.T) {
	tags := tagsNewestFirst("v1.0.0", "v2.0.0")
	orig := append([]*githubclt.Tag{}, tags...)

	SelectTag(tags, version.Zero, nil)
	assert.Equal(t, orig, tags)
}

func TestResolveCurrent(t *testing.T) {
	r, clt := newResolver(t)

	clt.EXPECT().LatestReleaseTag(gomock.Any(), "acme", "tool-image").Return("v1.4", nil)

	v := r.ResolveCurrent(context.Background(), downstreamRepo)
	assert.Equal(t, "1.4.0", v.String())
}

func TestResolveCurrentFallsBackToZero(t *testing.T) {
	testcases := map[string]struct {
		tag string
		err error
	}{
		"no release":     {err: fmt.Errorf("latest release: %w", githubclt.ErrNotFound)},
		"lookup failure": {err: errors.New("connection reset")},
		"invalid tag":    {tag: "nightly"},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			r, clt := newResolver(t)

			clt.EXPECT().LatestReleaseTag(gomock.Any(), "acme", "tool-image").Return(tc.tag, tc.err)

			v := r.ResolveCurrent(context.Background(), downstreamRepo)
			assert.Equal(t, 0, v.Compare(version.Zero), "expected 0.0.0, got %s", v)
		})
	}
}

func TestSelectCandidateCopiesReleaseNotes(t *testing.T) {
	r, clt := newResolver(t)

	clt.EXPECT().
		ReleaseByTag(gomock.Any(), "upstream", "tool", "v2.0.1").
		Return(&githubclt.Release{TagName: "v2.0.1", Body: "* bugfixes"}, nil)

	c := r.SelectCandidate(
		context.Background(),
		upstreamRepo,
		tagsNewestFirst("v1.0.0", "v2.0.0", "v2.0.1"),
		version.MustParse("2.0.0"),
	)
	require.NotNil(t, c)
	assert.Equal(t, "2.0.1", c.Version.String())
	assert.True(t, c.HasReleaseNotes)
	assert.Equal(t, "* bugfixes", c.ReleaseNotes)
}

func TestSelectCandidateWithoutReleaseNotes(t *testing.T) {
	for name, err := range map[string]error{
		"no release":     githubclt.ErrNotFound,
		"lookup failure": errors.New("timeout"),
	} {
		t.Run(name, func(t *testing.T) {
			r, clt := newResolver(t)

			clt.EXPECT().ReleaseByTag(gomock.Any(), "upstream", "tool", "v1.0.0").Return(nil, err)

			c := r.SelectCandidate(context.Background(), upstreamRepo, tagsNewestFirst("v1.0.0"), version.Zero)
			require.NotNil(t, c)
			assert.False(t, c.HasReleaseNotes)
			assert.Empty(t, c.ReleaseNotes)
		})
	}
}

func TestSelectCandidateUpToDate(t *testing.T) {
	r, _ := newResolver(t)

	c := r.SelectCandidate(
		context.Background(),
		upstreamRepo,
		tagsNewestFirst("v1.0.0", "v2.0.0"),
		version.MustParse("3.0.0"),
	)
	assert.Nil(t, c)
}
