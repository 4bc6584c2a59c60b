package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/jaskcalc/internal/calc"
	"github.com/jask/jaskcalc/internal/keys"
	"github.com/jask/jaskcalc/internal/theme"
)

// ---------------------------------------------------------------------------
// Styles
// ---------------------------------------------------------------------------

type styles struct {
	page     lipgloss.Style
	title    lipgloss.Style
	label    lipgloss.Style
	pill     lipgloss.Style
	dot      lipgloss.Style
	dotOff   lipgloss.Style
	screen   lipgloss.Style
	hint     lipgloss.Style
	display  lipgloss.Style
	keypad   lipgloss.Style
	helpKey  lipgloss.Style
	helpDesc lipgloss.Style
	palette  theme.Palette
}

func newStyles(p theme.Palette) styles {
	page := lipgloss.NewStyle().Background(p.Background)
	screen := lipgloss.NewStyle().Background(p.ScreenBackground)
	keypad := lipgloss.NewStyle().Background(p.KeypadBackground)

	footerFg := lipgloss.Color("#ffffff")
	if p.StatusBar == theme.StatusBarDark {
		footerFg = lipgloss.Color("#1b2428")
	}

	return styles{
		page:     page,
		title:    page.Foreground(p.Text).Bold(true),
		label:    page.Foreground(p.Text),
		pill:     keypad,
		dot:      keypad.Foreground(p.EqualsKey),
		dotOff:   keypad.Foreground(p.Text).Faint(true),
		screen:   screen,
		hint:     screen.Foreground(p.Text).Faint(true),
		display:  screen.Foreground(p.Text).Bold(true),
		keypad:   keypad,
		helpKey:  keypad.Foreground(footerFg).Bold(true),
		helpDesc: keypad.Foreground(footerFg),
		palette:  p,
	}
}

// keyColors returns face, shadow and label colors for a button kind.
func (s styles) keyColors(kind buttonKind) (face, shadow, text lipgloss.Color) {
	p := s.palette
	switch kind {
	case kindFunction:
		return p.FunctionKey, p.FunctionKeyShadow, p.FunctionKeyText
	case kindEquals:
		return p.EqualsKey, p.EqualsKeyShadow, p.EqualsKeyText
	default:
		return p.NumberKey, p.NumberKeyShadow, p.NumberKeyText
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (a *App) View() string {
	l := a.layout()
	st := newStyles(a.theme.Palette())
	blank := st.page.Render(strings.Repeat(" ", l.width))

	var lines []string
	lines = append(lines, a.renderHeader(st, l)...)
	lines = append(lines, blank)
	lines = append(lines, a.renderScreen(st, l)...)
	lines = append(lines, blank)
	lines = append(lines, a.renderKeypad(st, l)...)
	lines = append(lines, blank)
	lines = append(lines, a.renderFooter(st, l))

	if a.width == 0 {
		return strings.Join(lines, "\n")
	}
	return a.frame(lines, st, l)
}

// frame centres the panel and paints the rest of the terminal with the page
// background.
func (a *App) frame(lines []string, st styles, l layout) string {
	indent := st.page.Render(strings.Repeat(" ", l.left))
	right := max(0, a.width-l.left-l.width)
	tail := st.page.Render(strings.Repeat(" ", right))
	out := make([]string, 0, max(len(lines), a.height))
	for _, line := range lines {
		out = append(out, indent+line+tail)
	}
	empty := st.page.Render(strings.Repeat(" ", a.width))
	for len(out) < a.height {
		out = append(out, empty)
	}
	return strings.Join(out, "\n")
}

func (a *App) renderHeader(st styles, l layout) []string {
	var numbers, dots strings.Builder
	numbers.WriteString(st.label.Render(" "))
	dots.WriteString(st.pill.Render(" "))
	for _, v := range theme.Variants() {
		numbers.WriteString(st.label.Render(v.String() + " "))
		if v == a.theme {
			dots.WriteString(st.dot.Render("●") + st.pill.Render(" "))
		} else {
			dots.WriteString(st.dotOff.Render("○") + st.pill.Render(" "))
		}
	}
	return []string{
		spread(st.title.Render("calc"), numbers.String(), l.width, st.page),
		spread("", st.label.Render("THEME  ")+dots.String(), l.width, st.page),
	}
}

func (a *App) renderScreen(st styles, l layout) []string {
	inner := l.width - 4
	pad := st.screen.Render("  ")

	hint := calc.PendingExpression(a.state)
	display := calc.FormatNumber(a.state.Display)
	if ansi.StringWidth(display) > inner {
		display = ansi.TruncateLeft(display, ansi.StringWidth(display)-inner+1, "…")
	}

	return []string{
		pad + padLeft(st.hint.Render(truncate(hint, inner)), inner, st.screen) + pad,
		pad + padLeft(st.display.Render(display), inner, st.screen) + pad,
		st.screen.Render(strings.Repeat(" ", l.width)),
	}
}

func (a *App) renderKeypad(st styles, l layout) []string {
	blank := st.keypad.Render(strings.Repeat(" ", l.width))
	padL := st.keypad.Render(strings.Repeat(" ", keypadPadX))
	padR := st.keypad.Render(strings.Repeat(" ", l.width-keypadPadX-l.rowWidth()))
	gap := st.keypad.Render(strings.Repeat(" ", keyGap))

	lines := make([]string, 0, l.keypadHeight())
	for i := 0; i < keypadPadY; i++ {
		lines = append(lines, blank)
	}
	labelLine := l.faceHeight / 2
	for r, row := range keypadRows {
		if r > 0 {
			for i := 0; i < l.rowGap; i++ {
				lines = append(lines, blank)
			}
		}
		for f := 0; f <= l.faceHeight; f++ {
			cells := make([]string, 0, len(row))
			for i, b := range row {
				focused := a.focus == position{row: r, idx: i}
				w := l.buttonWidth(b.span)
				if f == l.faceHeight {
					cells = append(cells, renderShadow(st, b, w, focused))
					continue
				}
				cells = append(cells, renderFace(st, b, w, f == labelLine, focused))
			}
			lines = append(lines, padL+strings.Join(cells, gap)+padR)
		}
	}
	for i := 0; i < keypadPadY; i++ {
		lines = append(lines, blank)
	}
	return lines
}

func renderFace(st styles, b button, width int, withLabel, focused bool) string {
	face, _, text := st.keyColors(b.kind)
	base := lipgloss.NewStyle().Background(face).Foreground(text)
	if !withLabel {
		return base.Render(strings.Repeat(" ", width))
	}
	labelStyle := base.Bold(true)
	if focused {
		labelStyle = labelStyle.Underline(true)
	}
	lw := ansi.StringWidth(b.label)
	left := max(0, (width-lw)/2)
	right := max(0, width-lw-left)
	return base.Render(strings.Repeat(" ", left)) + labelStyle.Render(b.label) + base.Render(strings.Repeat(" ", right))
}

// renderShadow draws the half-block row under a key; the focused key's
// shadow takes the text color.
func renderShadow(st styles, b button, width int, focused bool) string {
	_, shadow, _ := st.keyColors(b.kind)
	if focused {
		shadow = st.palette.Text
	}
	return st.keypad.Foreground(shadow).Render(strings.Repeat("▀", width))
}

func (a *App) renderFooter(st styles, l layout) string {
	bindings := a.keys.HelpBindings(keys.ScopeKeypad,
		keys.ActionPress, keys.ActionThemeNext, keys.ActionReset, keys.ActionQuit)
	content := helpLine(st, bindings)
	content = truncate(content, l.width)
	return padRight(content, l.width, st.keypad)
}

func helpLine(st styles, bindings []key.Binding) string {
	space := st.keypad.Render(" ")
	sep := st.keypad.Render("  ")
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, st.helpKey.Render(help.Key)+space+st.helpDesc.Render(help.Desc))
	}
	return space + strings.Join(parts, sep)
}

// ---------------------------------------------------------------------------
// String utilities
// ---------------------------------------------------------------------------

// spread places left and right at the edges of a line of the given width,
// filling the middle with fill.
func spread(left, right string, width int, fill lipgloss.Style) string {
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 0 {
		return truncate(left+right, width)
	}
	return left + fill.Render(strings.Repeat(" ", gap)) + right
}

// padRight pads s with fill so its visual width equals width.
func padRight(s string, width int, fill lipgloss.Style) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + fill.Render(strings.Repeat(" ", width-w))
}

// padLeft right-aligns s within width.
func padLeft(s string, width int, fill lipgloss.Style) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return fill.Render(strings.Repeat(" ", width-w)) + s
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
