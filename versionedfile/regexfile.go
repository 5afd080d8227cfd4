package versionedfile

import (
	"regexp"

	"github.com/knope-dev/knope-go/action"
	"github.com/knope-dev/knope-go/semver"
)

// RegexFile is the C8 adapter: a user-supplied set of regexes, each
// carrying a mandatory named capture group "version", applied to an
// arbitrary text file (spec §4.2 "Regex text files").
type RegexFile struct {
	path     string
	content  string
	patterns []*regexp.Regexp
	version  semver.Version
}

// NewRegexFile compiles every pattern in patterns and validates each
// contains a "version" named capture group. Every pattern must match
// content at least once, and every match's captured version text must
// agree.
func NewRegexFile(filePath, content string, patterns []string) (*RegexFile, error) {
	var compiled []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, &ErrInvalidRegex{Pattern: p, Err: err}
		}
		if versionGroupIndex(re) < 0 {
			return nil, &ErrMissingVersionCapture{Pattern: p}
		}
		compiled = append(compiled, re)
	}

	var version *semver.Version
	for _, re := range compiled {
		idx := versionGroupIndex(re)
		matches := re.FindAllStringSubmatch(content, -1)
		if len(matches) == 0 {
			return nil, &ErrNoMatch{Path: filePath, Pattern: re.String()}
		}
		for _, m := range matches {
			literal := m[idx]
			v, err := semver.Parse(literal)
			if err != nil {
				return nil, &ErrStructuralParse{Path: filePath, Err: err}
			}
			if version == nil {
				version = &v
				continue
			}
			if v.Compare(*version) != 0 {
				return nil, &ErrVersionMismatch{Path: filePath, First: version.String(), Other: v.String()}
			}
		}
	}

	return &RegexFile{path: filePath, content: content, patterns: compiled, version: *version}, nil
}

func versionGroupIndex(re *regexp.Regexp) int {
	for i, name := range re.SubexpNames() {
		if name == "version" {
			return i
		}
	}
	return -1
}

func (r *RegexFile) Path() string            { return r.path }
func (r *RegexFile) Version() semver.Version { return r.version }

func (r *RegexFile) SetVersion(newVersion semver.Version, _ GoVersioningMode) ([]action.Action, error) {
	literal := newVersion.String()
	for _, re := range r.patterns {
		idx := versionGroupIndex(re)
		r.content = replaceSubmatch(re, idx, r.content, literal)
	}
	r.version = newVersion
	return []action.Action{action.WriteToFile(r.path, r.content, literal)}, nil
}

// replaceSubmatch rewrites group idx of every match of re within s to
// replacement, leaving the rest of each match and all non-matching text
// untouched.
func replaceSubmatch(re *regexp.Regexp, idx int, s, replacement string) string {
	locs := re.FindAllStringSubmatchIndex(s, -1)
	if locs == nil {
		return s
	}
	var b []byte
	cursor := 0
	for _, loc := range locs {
		groupStart, groupEnd := loc[2*idx], loc[2*idx+1]
		b = append(b, s[cursor:groupStart]...)
		b = append(b, replacement...)
		cursor = groupEnd
	}
	b = append(b, s[cursor:]...)
	return string(b)
}
