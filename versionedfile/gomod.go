package versionedfile

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/knope-dev/knope-go/action"
	"github.com/knope-dev/knope-go/semver"
)

var moduleLineRegex = regexp.MustCompile(`(?m)^module (\S+)(?:[ \t]*//[ \t]*(v\d+\.\d+\.\d+))?[ \t\r]*$`)
var majorSuffixRegex = regexp.MustCompile(`^(.*)/v(\d+)$`)
var dirMajorSuffixRegex = regexp.MustCompile(`^v(\d+)$`)

// GoModFile is the go.mod adapter (spec §4.2 "go.mod").
type GoModFile struct {
	path    string
	content string

	modulePath  string
	majorSuffix int // 0 if the module path carries no /vN suffix

	lineStart, lineEnd int // byte range of the module line, excluding any trailing newline

	tagPrefix string
	version   semver.Version
}

// NewGoMod parses filePath's module line. tags should already be filtered
// to the repository tags reachable for this module (newest-first); for a
// directory-major-versioned module (parent directory named vN) NewGoMod
// further restricts them to major N.
func NewGoMod(filePath, content string, tags []string) (*GoModFile, error) {
	m := moduleLineRegex.FindStringSubmatch(content)
	loc := moduleLineRegex.FindStringSubmatchIndex(content)
	if m == nil {
		return nil, &ErrMissingProperty{Path: filePath, Property: "module"}
	}

	g := &GoModFile{
		path:       filePath,
		content:    content,
		modulePath: m[1],
		lineStart:  loc[0],
		lineEnd:    loc[1],
	}
	if sm := majorSuffixRegex.FindStringSubmatch(m[1]); sm != nil {
		g.modulePath = sm[1]
		g.majorSuffix, _ = strconv.Atoi(sm[2])
	}

	var commentVer *semver.Version
	if m[2] != "" {
		v, err := semver.Parse(strings.TrimPrefix(m[2], "v"))
		if err != nil {
			return nil, &ErrStructuralParse{Path: filePath, Err: fmt.Errorf("module comment version %q: %w", m[2], err)}
		}
		commentVer = &v
	}

	dir := cleanDir(path.Dir(filePath))
	base := path.Base(dir)
	if dm := dirMajorSuffixRegex.FindStringSubmatch(base); dm != nil {
		major, _ := strconv.Atoi(dm[1])
		g.tagPrefix = cleanDir(path.Dir(dir))
		tags = filterTagsByMajor(g.tagPrefix, tags, major)
	} else {
		g.tagPrefix = dir
	}

	if commentVer != nil {
		g.version = *commentVer
	} else {
		g.version = semver.FromTags(g.tagPrefix, tags).Latest()
	}

	return g, nil
}

func cleanDir(d string) string {
	if d == "." {
		return ""
	}
	return d
}

func filterTagsByMajor(prefix string, tags []string, major int) []string {
	var out []string
	for _, t := range tags {
		if v, ok := semver.ParseTag(prefix, t); ok && int(v.StableComponent.Major) == major {
			out = append(out, t)
		}
	}
	return out
}

func (g *GoModFile) Path() string            { return g.path }
func (g *GoModFile) Version() semver.Version { return g.version }

// directoryBased reports whether this module's major version is derived
// from its parent directory name rather than the module path's /vN suffix.
func (g *GoModFile) directoryBased() bool {
	return dirMajorSuffixRegex.MatchString(path.Base(cleanDir(path.Dir(g.path))))
}

func (g *GoModFile) SetVersion(newVersion semver.Version, mode GoVersioningMode) ([]action.Action, error) {
	newMajor := int(newVersion.StableComponent.Major)

	if newMajor > 1 && newMajor != g.majorSuffix {
		switch {
		case mode == GoVersioningIgnoreMajorRules:
			// every check bypassed
		case g.directoryBased():
			return nil, &ErrMajorVersionDirectoryBased{Path: g.path}
		case mode == GoVersioningBumpMajor || g.majorSuffix != 0:
			// allowed: module_line suffix is overwritten below
		default:
			return nil, ErrBumpingToV2
		}
		g.majorSuffix = newMajor
	}

	modulePath := g.modulePath
	if g.majorSuffix > 1 {
		modulePath = fmt.Sprintf("%s/v%d", g.modulePath, g.majorSuffix)
	}
	newLine := fmt.Sprintf("module %s // v%s", modulePath, newVersion.String())

	g.content = g.content[:g.lineStart] + newLine + g.content[g.lineEnd:]
	g.version = newVersion

	tag := "v" + newVersion.String()
	if g.tagPrefix != "" {
		tag = g.tagPrefix + "/v" + newVersion.String()
	}

	return []action.Action{
		action.WriteToFile(g.path, g.content, newLine),
		action.AddTag(tag),
	}, nil
}
