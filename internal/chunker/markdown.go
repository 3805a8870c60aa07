package chunker

import (
	"regexp"
	"strings"

	"github.com/repocontext/repochunk/pkg/types"
)

// markdownLanguage is stamped on every chunk this strategy emits
const markdownLanguage = "markdown"

// headingPattern matches an ATX heading line outside a code fence
var headingPattern = regexp.MustCompile(`^(#+)\s+(.*)$`)

// mdHeading is one entry of the heading breadcrumb stack
type mdHeading struct {
	level int
	text  string
}

// Markdown splits markup content into heading-delimited sections. Fenced
// code blocks are opaque: heading syntax inside a fence is not interpreted.
type Markdown struct {
	cfg     Config
	generic *Generic
}

// NewMarkdown creates a markdown section chunker
func NewMarkdown(cfg Config) *Markdown {
	cfg = cfg.normalize()
	return &Markdown{
		cfg:     cfg,
		generic: NewGeneric(cfg),
	}
}

// Chunk splits the document into heading_section chunks. Each section's
// metadata carries the breadcrumb of enclosing headings as it stood when
// the section began.
func (m *Markdown) Chunk(doc *types.RawFileDocument) ([]*types.Chunk, error) {
	if strings.TrimSpace(doc.Content) == "" {
		return nil, nil
	}

	lines := splitLines(doc.Content)
	chunks := make([]*types.Chunk, 0)

	var stack []mdHeading
	var section []string
	sectionStart := 1
	inFence := false

	for i, line := range lines {
		lineNo := i + 1

		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			section = append(section, line)
			continue
		}

		if inFence {
			section = append(section, line)
			continue
		}

		match := headingPattern.FindStringSubmatch(line)
		if match == nil {
			section = append(section, line)
			continue
		}

		// Flush the section accumulated under the previous heading stack
		if len(section) > 0 {
			chunks = m.flushSection(chunks, doc.Meta, section, sectionStart, lineNo-1, stack)
		}

		level := len(match[1])
		text := strings.TrimSpace(match[2])
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, mdHeading{level: level, text: text})

		// The new section opens with the heading line itself
		section = []string{line}
		sectionStart = lineNo
	}

	if len(section) > 0 {
		chunks = m.flushSection(chunks, doc.Meta, section, sectionStart, len(lines), stack)
	}

	sortChunks(chunks)
	return chunks, nil
}

// flushSection emits the accumulated lines as one heading_section chunk,
// subdividing through the window chunker when the section exceeds the
// configured size.
func (m *Markdown) flushSection(chunks []*types.Chunk, docMeta types.DocumentMeta, section []string, startLine, endLine int, stack []mdHeading) []*types.Chunk {
	// Trim blank edge lines so the span starts and ends on content and
	// subdivision keeps file-accurate line numbers
	for len(section) > 0 && strings.TrimSpace(section[0]) == "" {
		section = section[1:]
		startLine++
	}
	for len(section) > 0 && strings.TrimSpace(section[len(section)-1]) == "" {
		section = section[:len(section)-1]
		endLine--
	}
	if len(section) == 0 {
		return chunks
	}

	content := strings.Join(section, "\n")

	var name, parent, path string
	if len(stack) > 0 {
		parts := make([]string, len(stack))
		for i, h := range stack {
			parts[i] = h.text
		}
		path = strings.Join(parts, "/")
		name = parts[len(parts)-1]
		if len(parts) > 1 {
			parent = parts[len(parts)-2]
		}
	}

	if len(content) > m.cfg.ChunkSize {
		for _, sub := range m.generic.subdivide(content, docMeta, startLine-1) {
			sub.Meta.ChunkType = types.ChunkHeadingSection.Part()
			sub.Meta.Language = markdownLanguage
			sub.Meta.Name = name
			sub.Meta.ParentName = parent
			sub.Meta.Section = path
			chunks = append(chunks, sub)
		}
		return chunks
	}

	meta := newMeta(docMeta, types.ChunkHeadingSection, markdownLanguage, startLine, endLine)
	meta.Name = name
	meta.ParentName = parent
	meta.Section = path

	return append(chunks, &types.Chunk{Content: content, Meta: meta})
}
