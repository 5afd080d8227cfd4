package change

import (
	"regexp"
	"strings"
)

// ConventionalCommit is a parsed Conventional Commits v1.0.0 message.
//
// Grounded on gitlog/conventional.go's header regex, extended with full
// footer (git-trailer) parsing since the engine needs footer tokens and
// values, not just the BREAKING CHANGE marker.
type ConventionalCommit struct {
	Type        string
	Scope       string
	Breaking    bool // "!" immediately before the colon in the header
	Description string
	Body        string
	Footers     []Footer
	Raw         string
}

// Footer is one git-trailer-style footer line (or run of continuation
// lines) following a conventional commit's body.
type Footer struct {
	Token    string
	Value    string
	Breaking bool // token is "BREAKING CHANGE" or "BREAKING-CHANGE"
}

var headerRegex = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9]*)(?:\(([^)]+)\))?(!)?: (.+)$`)

// footerLineRegex matches a git-trailer-style footer line: "Token: value" or
// "Token #value". "BREAKING CHANGE" is the one token allowed to contain a
// literal space instead of a hyphen.
var footerLineRegex = regexp.MustCompile(`^(BREAKING CHANGE|BREAKING-CHANGE|[A-Za-z][A-Za-z0-9-]*)(: | #)(.*)$`)

// ParseConventionalCommit parses message per the Conventional Commits v1.0.0
// grammar. It reports ok=false for messages that don't start with a
// recognized "type(scope)!: description" header — such messages are
// silently dropped per spec §4.4 step 1.
func ParseConventionalCommit(message string) (cc ConventionalCommit, ok bool) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ConventionalCommit{}, false
	}
	lines := strings.Split(message, "\n")

	m := headerRegex.FindStringSubmatch(lines[0])
	if m == nil {
		return ConventionalCommit{}, false
	}

	cc = ConventionalCommit{
		Type:        strings.ToLower(m[1]),
		Scope:       m[2],
		Breaking:    m[3] == "!",
		Description: strings.TrimSpace(m[4]),
		Raw:         message,
	}
	if len(lines) > 1 {
		cc.Body, cc.Footers = parseBodyAndFooters(lines[1:])
	}
	return cc, true
}

// parseBodyAndFooters splits the lines following the header into a
// free-form body and the trailing run of git-trailer-style footers. A line
// that doesn't open a new footer but follows one is folded into that
// footer's value as a continuation line.
func parseBodyAndFooters(lines []string) (body string, footers []Footer) {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}

	footerStart := len(lines)
	for i, line := range lines {
		if footerLineRegex.MatchString(line) {
			footerStart = i
			break
		}
	}

	body = strings.TrimSpace(strings.Join(lines[:footerStart], "\n"))

	for _, line := range lines[footerStart:] {
		if m := footerLineRegex.FindStringSubmatch(line); m != nil {
			token := m[1]
			footers = append(footers, Footer{
				Token:    token,
				Value:    strings.TrimSpace(m[3]),
				Breaking: strings.EqualFold(token, "BREAKING CHANGE") || strings.EqualFold(token, "BREAKING-CHANGE"),
			})
		} else if trimmed := strings.TrimSpace(line); trimmed != "" && len(footers) > 0 {
			last := &footers[len(footers)-1]
			last.Value = strings.TrimSpace(last.Value + "\n" + trimmed)
		}
	}
	return body, footers
}

// MatchesScopes reports whether cc should be retained for a package
// configured with scopes: commits without a scope are always retained, and
// a commit with a scope is retained only if it case-insensitively matches
// one of scopes (or no scopes are configured at all).
func (cc ConventionalCommit) MatchesScopes(scopes []string) bool {
	if cc.Scope == "" || len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if strings.EqualFold(s, cc.Scope) {
			return true
		}
	}
	return false
}
