// Command tagmark is a minimal terminal pager: it opens a file,
// detects its grammar, and renders it through the tag-lattice
// highlighting core with a chroma-derived color theme.
//
// Grounded on the teacher's main.go: a config struct populated by
// flag, a theme resolved once at startup, and an Elm-style
// model with Init/Update/View -- without the fuzzy-finder's candidate
// list, ripgrep producer, or on-disk index (see DESIGN.md).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tagmark/internal/emit"
	"tagmark/internal/lang"
	"tagmark/internal/readfile"
	"tagmark/internal/rule"
	"tagmark/internal/style"
	"tagmark/internal/theme"
	"tagmark/internal/tree"
	"tagmark/internal/tsadapter"
)

type config struct {
	Path  string
	Theme string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.Theme, "theme", "nord", "color theme (for example: nord, dracula, monokai, github, solarized-dark)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: tagmark [-theme name] <file>")
		os.Exit(2)
	}
	cfg.Path = flag.Arg(0)

	rendered, totalLines, err := render(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tagmark: %v\n", err)
		os.Exit(1)
	}

	m := newModel(cfg, rendered, totalLines)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tagmark: %v\n", err)
		os.Exit(1)
	}
}

// render parses cfg.Path and produces the fully lipgloss-styled text
// the pager will scroll through, computed once up front since
// spec.md's core has no incremental re-highlighting (a Non-goal).
func render(cfg config) (string, int, error) {
	source, err := os.ReadFile(cfg.Path)
	if err != nil {
		return "", 0, fmt.Errorf("read %s: %w", cfg.Path, err)
	}

	lines, err := readfile.ReadLinesNormalized(cfg.Path)
	if err != nil {
		return "", 0, fmt.Errorf("read %s: %w", cfg.Path, err)
	}

	id := lang.Detect(cfg.Path)

	var cur tree.Cursor
	var prop *rule.Prop
	if g, ok := tsadapter.ForLang(id); ok {
		t, err := tsadapter.Parse(context.Background(), g, source)
		if err != nil {
			return "", 0, fmt.Errorf("parse %s: %w", cfg.Path, err)
		}
		defer t.Close()
		cur = t.Cursor()
		prop = g.Prop
	} else {
		cur = tsadapter.Plain(len(source)).Cursor()
		prop = rule.NewProp()
	}

	highlighter, palette, err := theme.FromChromaStyle(cfg.Theme)
	if err != nil {
		return "", 0, err
	}

	text := string(source)
	var b strings.Builder
	var line strings.Builder
	emit.HighlightCode(text, cur, prop, []*style.Highlighter{highlighter}, 0, len(text),
		func(chunk, classes string) {
			line.WriteString(renderClasses(chunk, classes, palette))
		},
		func() {
			b.WriteString(line.String())
			b.WriteByte('\n')
			line.Reset()
		},
	)
	b.WriteString(line.String())

	return b.String(), len(lines), nil
}

// renderClasses styles chunk with the first class in classes that the
// palette resolves, falling back to plain text when classes is empty
// or the palette has no color for it.
func renderClasses(chunk, classes string, palette theme.Palette) string {
	for _, cls := range strings.Fields(classes) {
		if colour, ok := palette[cls]; ok {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(colour)).Render(chunk)
		}
	}
	return chunk
}

type model struct {
	cfg        config
	content    string
	totalLines int

	viewport viewport.Model
	ready    bool
}

func newModel(cfg config, content string, totalLines int) model {
	return model{cfg: cfg, content: content, totalLines: totalLines}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.renderHeader())
		footerHeight := lipgloss.Height(m.renderFooter())
		vpHeight := msg.Height - headerHeight - footerHeight
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		return m, nil
	}

	if !m.ready {
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View(), m.renderFooter())
}

func (m model) renderHeader() string {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	return style.Render(fmt.Sprintf("%s  [%s]", m.cfg.Path, m.cfg.Theme))
}

func (m model) renderFooter() string {
	if !m.ready {
		return ""
	}
	percent := int(m.viewport.ScrollPercent() * 100)
	status := fmt.Sprintf("%d lines  %d%%  q to quit", m.totalLines, percent)
	return lipgloss.NewStyle().Faint(true).Padding(0, 1).Render(runewidth.Truncate(status, m.viewport.Width, "..."))
}
