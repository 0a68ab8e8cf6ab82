// Package emit wraps the tree walker to produce a putText/putBreak
// stream: text between and within styled ranges, split on line
// breaks, covering every byte offset in the requested range exactly
// once.
package emit

import (
	"bufio"
	"io"

	"tagmark/internal/rule"
	"tagmark/internal/style"
	"tagmark/internal/tree"
	"tagmark/internal/walk"
)

// PutText receives one run of text (never containing '\n') and the
// class string that applies to it ("" for unstyled text).
type PutText func(text, classes string)

// PutBreak is called once per '\n' encountered.
type PutBreak func()

// HighlightCode highlights text[from:to] via cur, calling putText and
// putBreak so that every byte offset in [from, to) is accounted for
// exactly once, in order, with unstyled gaps reported as class "".
func HighlightCode(text string, cur tree.Cursor, prop *rule.Prop, highlighters []*style.Highlighter, from, to int, putText PutText, putBreak PutBreak) {
	pos := from
	walk.HighlightTree(cur, prop, highlighters, from, to, func(a, b int, classes string) {
		if a > pos {
			writeSpan(text, pos, a, "", putText, putBreak)
		}
		writeSpan(text, a, b, classes, putText, putBreak)
		pos = b
	})
	if pos < to {
		writeSpan(text, pos, to, "", putText, putBreak)
	}
}

// HighlightCodeReader reads all of r before delegating to
// HighlightCode, buffering the read the way internal/readfile and
// index-cache I/O in the teacher do.
func HighlightCodeReader(r io.Reader, cur tree.Cursor, prop *rule.Prop, highlighters []*style.Highlighter, from, to int, putText PutText, putBreak PutBreak) error {
	data, err := io.ReadAll(bufio.NewReaderSize(r, 1<<16))
	if err != nil {
		return err
	}
	HighlightCode(string(data), cur, prop, highlighters, from, to, putText, putBreak)
	return nil
}

func writeSpan(text string, a, b int, classes string, putText PutText, putBreak PutBreak) {
	if a >= b {
		return
	}
	segment := text[a:b]
	start := 0
	for i := 0; i < len(segment); i++ {
		if segment[i] == '\n' {
			if i > start {
				putText(segment[start:i], classes)
			}
			putBreak()
			start = i + 1
		}
	}
	if start < len(segment) {
		putText(segment[start:], classes)
	}
}
