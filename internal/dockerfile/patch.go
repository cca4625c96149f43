// Package dockerfile updates the version environment variables in a
// Dockerfile.
package dockerfile

import (
	"bytes"
	"fmt"
	"regexp"
)

// Names of the environment variables that are updated.
const (
	EnvVersion     = "VERSION"
	EnvTagSHAShort = "VERSION_TAG_SHA_SHORT"
	EnvTagSHALong  = "VERSION_TAG_SHA_LONG"
)

// ShortSHALength is the number of characters of an abbreviated commit SHA.
const ShortSHALength = 7

const envInstrTemplate = `ENV %s "%s"`

const (
	lineSep        = '\n'
	carriageReturn = '\r'
)

// Values are the values that are written into the Dockerfile.
type Values struct {
	Version  string
	ShortSHA string
	LongSHA  string
}

type replacement struct {
	re  *regexp.Regexp
	key string
}

var replacements = []replacement{
	{re: envLineRe(EnvVersion), key: EnvVersion},
	{re: envLineRe(EnvTagSHAShort), key: EnvTagSHAShort},
	{re: envLineRe(EnvTagSHALong), key: EnvTagSHALong},
}

func envLineRe(key string) *regexp.Regexp {
	return regexp.MustCompile(`^ENV ` + regexp.QuoteMeta(key) + ` ".*"$`)
}

func (v *Values) value(key string) string {
	switch key {
	case EnvVersion:
		return v.Version
	case EnvTagSHAShort:
		return v.ShortSHA
	case EnvTagSHALong:
		return v.LongSHA
	default:
		panic(fmt.Sprintf("unsupported key: %q", key))
	}
}

// Patch returns a copy of content with the values of the ENV instructions
// VERSION, VERSION_TAG_SHA_SHORT and VERSION_TAG_SHA_LONG replaced.
// Only lines that consist entirely of such an instruction are modified, all
// other bytes including the line separators are kept unchanged.
func Patch(content []byte, v Values) []byte {
	result := make([]byte, 0, len(content))

	for len(content) > 0 {
		var line, sep []byte

		idx := bytes.IndexByte(content, lineSep)
		if idx == -1 {
			line = content
			content = nil
		} else {
			line = content[:idx]
			sep = content[idx : idx+1]
			content = content[idx+1:]
		}

		if l := len(line); l > 0 && line[l-1] == carriageReturn {
			line = line[:l-1]
			sep = append([]byte{carriageReturn}, sep...)
		}

		result = append(result, patchLine(line, &v)...)
		result = append(result, sep...)
	}

	return result
}

func patchLine(line []byte, v *Values) []byte {
	for _, r := range replacements {
		if r.re.Match(line) {
			return []byte(fmt.Sprintf(envInstrTemplate, r.key, v.value(r.key)))
		}
	}

	return line
}

// ShortSHA returns the abbreviated form of a commit SHA.
// If sha is shorter than ShortSHALength, false is returned.
func ShortSHA(sha string) (string, bool) {
	if len(sha) < ShortSHALength {
		return "", false
	}

	return sha[:ShortSHALength], true
}
