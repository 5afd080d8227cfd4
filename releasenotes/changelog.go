package releasenotes

import (
	"os"
	"strings"
	"time"

	"github.com/knope-dev/knope-go/semver"
)

// Changelog is a Markdown changelog document plus the release heading
// level its blocks are written at, inferred once on load.
type Changelog struct {
	Path        string
	Content     string
	HeaderLevel HeaderLevel
}

// Load reads path and infers its release header level. A missing file is
// not an error: it yields an empty changelog defaulting to H2, ready for
// its first release.
func Load(path string) (*Changelog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Changelog{Path: path, HeaderLevel: H2}, nil
		}
		return nil, err
	}
	return Parse(path, string(data)), nil
}

// Parse builds a Changelog from in-memory content, inferring the release
// header level by scanning for the first "#"-started line after the
// document title; absent that, it defaults to H2.
func Parse(path, content string) *Changelog {
	cl := &Changelog{Path: path, Content: content, HeaderLevel: H2}
	seenTitle := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			continue
		}
		if !seenTitle {
			seenTitle = true
			continue
		}
		if strings.HasPrefix(trimmed, "##") {
			cl.HeaderLevel = H2
		} else {
			cl.HeaderLevel = H1
		}
		break
	}
	return cl
}

// WithRelease splices notes into cl at the first existing release title
// (or appends, if none exists), preserving the content's trailing-newline
// behavior. It rewrites cl.Content in place and returns the new content
// together with the prior content as a diff (spec §5: Changelog owns its
// content, old content is the diff).
func (cl *Changelog) WithRelease(notes Notes, now time.Time) (newContent, diff string) {
	old := cl.Content
	block := RenderBlock(notes, cl.HeaderLevel, now)

	chunks := splitKeepEnds(old)
	insertAt := -1
	for i, chunk := range chunks {
		if _, _, ok := ParseTitle(strings.TrimSpace(strings.TrimRight(chunk, "\n"))); ok {
			insertAt = i
			break
		}
	}

	var sb strings.Builder
	if insertAt == -1 {
		sb.WriteString(old)
		if old != "" && !strings.HasSuffix(old, "\n") {
			sb.WriteString("\n")
		}
		if old != "" {
			sb.WriteString("\n")
		}
		sb.WriteString(block)
	} else {
		for _, c := range chunks[:insertAt] {
			sb.WriteString(c)
		}
		sb.WriteString(block)
		sb.WriteString("\n\n")
		for _, c := range chunks[insertAt:] {
			sb.WriteString(c)
		}
	}

	newContent = sb.String()
	if (old == "" || strings.HasSuffix(old, "\n")) && !strings.HasSuffix(newContent, "\n") {
		newContent += "\n"
	}
	cl.Content = newContent
	return newContent, old
}

// GetRelease returns the Markdown body previously spliced in for version,
// normalized to H1 heading levels, or ok=false if no non-empty release with
// that version exists.
func (cl *Changelog) GetRelease(version semver.Version) (notes string, ok bool) {
	chunks := splitKeepEnds(cl.Content)

	start := -1
	for i, chunk := range chunks {
		line := strings.TrimSpace(strings.TrimRight(chunk, "\n"))
		if lvl, v, pok := ParseTitle(line); pok && lvl == cl.HeaderLevel && v.Compare(version) == 0 {
			start = i + 1
			break
		}
	}
	if start == -1 {
		return "", false
	}

	end := len(chunks)
	for i := start; i < len(chunks); i++ {
		line := strings.TrimSpace(strings.TrimRight(chunks[i], "\n"))
		if lvl, _, pok := ParseTitle(line); pok && lvl == cl.HeaderLevel {
			end = i
			break
		}
	}

	var sb strings.Builder
	for _, c := range chunks[start:end] {
		sb.WriteString(c)
	}
	body := strings.TrimSpace(sb.String())
	if body == "" {
		return "", false
	}
	if cl.HeaderLevel == H2 {
		body = reduceHeadingLevel(body)
	}
	return body, true
}

// reduceHeadingLevel strips one leading "#" from every Markdown heading
// line, normalizing H2-released content to the H1 convention GetRelease
// always returns.
func reduceHeadingLevel(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			lines[i] = strings.TrimPrefix(line, "#")
		}
	}
	return strings.Join(lines, "\n")
}

// splitKeepEnds splits s into lines, each chunk retaining its trailing "\n"
// (the final chunk omits one only if s itself didn't end in "\n"), so
// rejoining chunks is lossless concatenation.
func splitKeepEnds(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for {
		idx := strings.IndexByte(s, '\n')
		if idx == -1 {
			out = append(out, s)
			return out
		}
		out = append(out, s[:idx+1])
		s = s[idx+1:]
	}
}
