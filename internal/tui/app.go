// Package tui renders the calculator as a bubbletea program: a themed
// header, the display screen and a clickable keypad.
package tui

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/jaskcalc/internal/calc"
	"github.com/jask/jaskcalc/internal/config"
	"github.com/jask/jaskcalc/internal/keys"
	"github.com/jask/jaskcalc/internal/observability"
	"github.com/jask/jaskcalc/internal/theme"
)

// Options wires the App to its collaborators. Zero values are usable:
// a nil registry falls back to the default bindings, a nil logger and nil
// metrics record nothing.
type Options struct {
	Theme    theme.Variant
	MaxWidth int
	Keys     *keys.Registry
	Logger   *zap.Logger
	Metrics  *observability.Metrics
}

// App is the calculator's bubbletea model.
type App struct {
	ctx      context.Context
	state    calc.State
	theme    theme.Variant
	keys     *keys.Registry
	log      *zap.Logger
	metrics  *observability.Metrics
	maxWidth int
	focus    position
	width    int
	height   int
}

func New(ctx context.Context, opts Options) *App {
	if ctx == nil {
		ctx = context.Background()
	}
	if !opts.Theme.Valid() {
		opts.Theme = theme.Variant1
	}
	if opts.MaxWidth < config.MinWidth {
		opts.MaxWidth = config.MinWidth
	}
	if opts.Keys == nil {
		opts.Keys = keys.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	focus, _ := findButton(keys.ActionEquals)
	return &App{
		ctx:      ctx,
		state:    calc.New(),
		theme:    opts.Theme,
		keys:     opts.Keys,
		log:      opts.Logger,
		metrics:  opts.Metrics,
		maxWidth: opts.MaxWidth,
		focus:    focus,
	}
}

// State is the current calculator state.
func (a *App) State() calc.State {
	return a.state
}

// Theme is the active palette selector.
func (a *App) Theme() theme.Variant {
	return a.theme
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		return a.handleKey(m)
	case tea.MouseMsg:
		return a.handleMouse(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := a.keys.Lookup(m.String(), keys.ScopeKeypad)
	if b == nil {
		return a, nil
	}
	switch b.Action {
	case keys.ActionQuit:
		a.log.Info("session ended", zap.String("display", a.state.Display))
		return a, tea.Quit
	case keys.ActionMoveUp, keys.ActionMoveDown, keys.ActionMoveLeft, keys.ActionMoveRight:
		a.focus = a.focus.move(b.Action)
	case keys.ActionPress:
		a.press(a.focus.button())
	case keys.ActionThemeNext:
		a.setTheme(a.theme.Next())
	case keys.ActionTheme1:
		a.setTheme(theme.Variant1)
	case keys.ActionTheme2:
		a.setTheme(theme.Variant2)
	case keys.ActionTheme3:
		a.setTheme(theme.Variant3)
	default:
		if pos, ok := findButton(b.Action); ok {
			a.focus = pos
			a.press(pos.button())
		}
	}
	return a, nil
}

func (a *App) handleMouse(m tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.Action != tea.MouseActionPress || m.Button != tea.MouseButtonLeft {
		return a, nil
	}
	l := a.layout()
	if pos, ok := l.hitButton(m.X, m.Y); ok {
		a.focus = pos
		a.press(pos.button())
		return a, nil
	}
	if v, ok := l.hitTheme(m.X, m.Y); ok {
		a.setTheme(v)
	}
	return a, nil
}

func (a *App) press(b button) {
	before := a.state
	a.state = apply(before, b.action)

	a.metrics.RecordPress(a.ctx, string(b.action))
	a.log.Debug("key pressed",
		zap.String("action", string(b.action)),
		zap.String("display", a.state.Display),
		zap.String("stage", string(a.state.Stage())),
	)

	switch {
	case a.state.Erred() && !before.Erred():
		kind := errorKind(before, a.state)
		a.metrics.RecordError(a.ctx, kind)
		a.log.Warn("calculation failed",
			zap.String("kind", kind),
			zap.String("operand", before.Previous),
			zap.String("operator", string(before.Operator)),
			zap.String("input", before.Display),
		)
	case b.action == keys.ActionEquals && before.Pending():
		a.metrics.RecordResult(a.ctx)
		a.log.Debug("result", zap.String("display", a.state.Display))
	}
}

// errorKind classifies the transition into an error display.
func errorKind(before, after calc.State) string {
	switch {
	case after.Display == calc.DivideByZeroDisplay:
		return observability.ErrorKindDivideByZero
	case before.Operator == calc.OpDivide && isZero(before.Display):
		return observability.ErrorKindChainDivideByZero
	default:
		return observability.ErrorKindNonFinite
	}
}

func isZero(raw string) bool {
	f, err := strconv.ParseFloat(raw, 64)
	return err == nil && f == 0
}

func (a *App) setTheme(v theme.Variant) {
	if v == a.theme || !v.Valid() {
		return
	}
	a.theme = v
	a.log.Info("theme changed", zap.Stringer("theme", v))
}

func (a *App) layout() layout {
	return newLayout(a.width, a.height, a.maxWidth, config.MinWidth)
}
