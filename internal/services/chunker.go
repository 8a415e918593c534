package services

import (
	"strings"
	"unicode/utf8"
)

const defaultChunkSize = 3000

type TextChunker interface {
	ChunkText(text string, maxRunes int) []string
	Head(text string, maxRunes int) string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText packs paragraphs into chunks of at most maxRunes runes. Paragraphs
// that do not fit are split by line, and lines that do not fit are cut.
func (tc *textChunker) ChunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = defaultChunkSize
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	add := func(piece, sep string) {
		n := utf8.RuneCountInString(piece)
		if currentLen > 0 && currentLen+len(sep)+n > maxRunes {
			flush()
		}
		if currentLen > 0 {
			current.WriteString(sep)
			currentLen += len(sep)
		}
		current.WriteString(piece)
		currentLen += n
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) <= maxRunes {
			add(para, "\n\n")
			continue
		}

		for _, line := range strings.Split(para, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			for _, piece := range splitRunes(line, maxRunes) {
				add(piece, "\n")
			}
		}
	}
	flush()

	return chunks
}

// Head returns the first chunk of text, or "" when text is blank.
func (tc *textChunker) Head(text string, maxRunes int) string {
	chunks := tc.ChunkText(text, maxRunes)
	if len(chunks) == 0 {
		return ""
	}
	return chunks[0]
}

func splitRunes(s string, n int) []string {
	runes := []rune(s)
	if len(runes) <= n {
		return []string{s}
	}
	var parts []string
	for len(runes) > n {
		parts = append(parts, string(runes[:n]))
		runes = runes[n:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
