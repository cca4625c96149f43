package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testcases := []struct {
		in         string
		expected   string
		prerelease string
	}{
		{in: "1.2.3", expected: "1.2.3"},
		{in: "v1.2.3", expected: "1.2.3"},
		{in: "v0.0.0", expected: "0.0.0"},
		{in: "v2.1", expected: "2.1.0"},
		{in: "1.0.0-rc1", expected: "1.0.0-rc1", prerelease: "rc1"},
		{in: "v10.20.30", expected: "10.20.30"},
		{in: "v1.0.0-beta.2", expected: "1.0.0-beta.2", prerelease: "beta.2"},
	}

	for _, tc := range testcases {
		t.Run(tc.in, func(t *testing.T) {
			v, err := Parse(tc.in)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, v.String())
			assert.Equal(t, tc.prerelease, v.Prerelease())
			assert.Equal(t, tc.prerelease != "", v.IsPrerelease())
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"v",
		"latest",
		"release-1.2.3",
		"1",
		"1.2.3.4",
		"vv1.2.3",
		"1.2.x",
		" v1.0.5 ",
		"v1.0.5\n",
		"\tv1.2",
	} {
		t.Run(in, func(t *testing.T) {
			v, err := Parse(in)
			assert.Error(t, err)
			assert.Nil(t, v)
		})
	}
}

func TestCompareNumericOrder(t *testing.T) {
	ordered := []string{
		"0.0.0",
		"0.0.1",
		"0.1.0",
		"0.9.0",
		"0.10.0",
		"1.0.0-rc1",
		"1.0.0",
		"1.0.1",
		"1.2.0",
		"2.0.0",
		"10.0.0",
	}

	for i := range ordered {
		for j := range ordered {
			a := MustParse(ordered[i])
			b := MustParse(ordered[j])

			switch {
			case i < j:
				assert.Equalf(t, -1, a.Compare(b), "%s < %s", a, b)
				assert.False(t, a.GreaterThan(b))
			case i > j:
				assert.Equalf(t, 1, a.Compare(b), "%s > %s", a, b)
				assert.True(t, a.GreaterThan(b))
			default:
				assert.Equal(t, 0, a.Compare(b))
			}
		}
	}
}

func TestPrereleaseNeverGreaterThanRelease(t *testing.T) {
	release := MustParse("v2.3.4")

	for _, pre := range []string{"2.3.4-alpha", "2.3.4-rc.1", "2.3.4-0", "v2.3.4-zzz"} {
		p := MustParse(pre)
		assert.Truef(t, release.GreaterThan(p), "%s must be greater than %s", release, p)
		assert.False(t, p.GreaterThan(release))
		assert.NotEqual(t, 0, p.Compare(release))
	}
}

func TestTag(t *testing.T) {
	assert.Equal(t, "v1.4.0", MustParse("1.4").Tag())
	assert.Equal(t, "0.0.0", Zero.String())
}
