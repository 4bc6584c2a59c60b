// Package keys maps terminal key names to calculator actions.
package keys

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

// Binding is one action's keys within a scope. Keys are normalized and the
// first one is shown in help.
type Binding struct {
	Action Action
	Keys   []string
	Help   string
}

type Registry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	ScopeGlobal = "global"
	ScopeKeypad = "keypad"
)

const (
	ActionDecimal   Action = "decimal"
	ActionAdd       Action = "add"
	ActionSubtract  Action = "subtract"
	ActionMultiply  Action = "multiply"
	ActionDivide    Action = "divide"
	ActionDelete    Action = "delete"
	ActionReset     Action = "reset"
	ActionEquals    Action = "equals"
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionMoveLeft  Action = "move_left"
	ActionMoveRight Action = "move_right"
	ActionPress     Action = "press"
	ActionThemeNext Action = "theme_next"
	ActionTheme1    Action = "theme_1"
	ActionTheme2    Action = "theme_2"
	ActionTheme3    Action = "theme_3"
	ActionQuit      Action = "quit"
)

// DigitAction returns the action for digit d ('0'..'9').
func DigitAction(d rune) Action {
	return Action("digit_" + string(d))
}

// Digit reports the digit carried by a digit action.
func (a Action) Digit() (rune, bool) {
	s, ok := strings.CutPrefix(string(a), "digit_")
	if !ok || len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	return rune(s[0]), true
}

func NewRegistry() *Registry {
	r := &Registry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(scope, Binding{Action: action, Keys: keys, Help: help})
	}

	// Global fallback lookup.
	reg(ScopeGlobal, ActionThemeNext, []string{"t"}, "theme")
	reg(ScopeGlobal, ActionTheme1, []string{"alt+1", "f1"}, "theme 1")
	reg(ScopeGlobal, ActionTheme2, []string{"alt+2", "f2"}, "theme 2")
	reg(ScopeGlobal, ActionTheme3, []string{"alt+3", "f3"}, "theme 3")
	reg(ScopeGlobal, ActionQuit, []string{"q", "ctrl+c"}, "quit")

	// Keypad focus and activation, listed first so the footer leads with them.
	reg(ScopeKeypad, ActionMoveUp, []string{"up", "k"}, "up")
	reg(ScopeKeypad, ActionMoveDown, []string{"down", "j"}, "down")
	reg(ScopeKeypad, ActionMoveLeft, []string{"left", "h"}, "left")
	reg(ScopeKeypad, ActionMoveRight, []string{"right", "l"}, "right")
	reg(ScopeKeypad, ActionPress, []string{"enter", "space"}, "press")

	// Accelerators for the on-screen buttons.
	for d := '0'; d <= '9'; d++ {
		reg(ScopeKeypad, DigitAction(d), []string{string(d)}, string(d))
	}
	reg(ScopeKeypad, ActionDecimal, []string{"."}, "point")
	reg(ScopeKeypad, ActionAdd, []string{"+"}, "add")
	reg(ScopeKeypad, ActionSubtract, []string{"-"}, "subtract")
	reg(ScopeKeypad, ActionMultiply, []string{"*", "x"}, "multiply")
	reg(ScopeKeypad, ActionDivide, []string{"/"}, "divide")
	reg(ScopeKeypad, ActionDelete, []string{"backspace", "delete"}, "del")
	reg(ScopeKeypad, ActionReset, []string{"esc", "c"}, "reset")
	reg(ScopeKeypad, ActionEquals, []string{"="}, "equals")

	return r
}

// Register adds b to scope. It reports false and changes nothing when b has
// no usable keys or any of its keys is already taken in scope.
func (r *Registry) Register(scope string, b Binding) bool {
	scope = strings.TrimSpace(scope)
	if r == nil || scope == "" {
		return false
	}
	b.Keys = normalizeKeyList(b.Keys)
	if len(b.Keys) == 0 {
		return false
	}
	index := r.indexByScope[scope]
	if index == nil {
		index = make(map[string]*Binding)
		r.indexByScope[scope] = index
	}
	for _, k := range b.Keys {
		if _, taken := index[k]; taken {
			return false
		}
	}

	added := &b
	r.bindingsByScope[scope] = append(r.bindingsByScope[scope], added)
	for _, k := range added.Keys {
		index[k] = added
	}
	return true
}

// Lookup finds the binding for keyName in scope, falling back to the global
// scope.
func (r *Registry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != ScopeGlobal {
		if b := r.lookupInScope(keyName, ScopeGlobal); b != nil {
			return b
		}
	}
	return nil
}

// HelpBindings returns footer help for the given actions of scope, in the
// order given. Actions without a binding are skipped.
func (r *Registry) HelpBindings(scope string, actions ...Action) []key.Binding {
	out := make([]key.Binding, 0, len(actions))
	for _, action := range actions {
		b := r.bindingForAction(scope, action)
		if b == nil || len(b.Keys) == 0 {
			continue
		}
		helpKey := b.Keys[0]
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(helpKey, b.Help)))
	}
	return out
}

func (r *Registry) bindingForAction(scope string, action Action) *Binding {
	if r == nil {
		return nil
	}
	for _, s := range []string{scope, ScopeGlobal} {
		for _, b := range r.bindingsByScope[s] {
			if b.Action == action {
				return b
			}
		}
	}
	return nil
}

func (r *Registry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Preserve single uppercase rune so uppercase/lowercase bindings
			// can be distinct actions within the same scope.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}

// ExportKeybindingConfig returns every binding as an override entry, sorted
// by scope then action.
func (r *Registry) ExportKeybindingConfig() []Override {
	if r == nil {
		return nil
	}
	var out []Override
	for scope, bindings := range r.bindingsByScope {
		for _, b := range bindings {
			out = append(out, Override{
				Scope:  scope,
				Action: string(b.Action),
				Keys:   append([]string(nil), b.Keys...),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Scope != out[j].Scope {
			return out[i].Scope < out[j].Scope
		}
		return out[i].Action < out[j].Action
	})
	return out
}

func (r *Registry) rebuildIndex() {
	r.indexByScope = make(map[string]map[string]*Binding, len(r.bindingsByScope))
	for scope, bindings := range r.bindingsByScope {
		r.indexByScope[scope] = make(map[string]*Binding)
		for _, b := range bindings {
			for _, k := range b.Keys {
				r.indexByScope[scope][k] = b
			}
		}
	}
}

// checkConflicts reports the first key bound twice inside one scope. Keys
// in staged take the place of the current keys of their binding.
func (r *Registry) checkConflicts(staged map[*Binding][]string) error {
	for scope, bindings := range r.bindingsByScope {
		owner := make(map[string]Action)
		for _, b := range bindings {
			keys, ok := staged[b]
			if !ok {
				keys = b.Keys
			}
			for _, k := range keys {
				if prev, dup := owner[k]; dup {
					return fmt.Errorf("keymap conflict in scope=%q: key %q used by both %q and %q", scope, k, prev, b.Action)
				}
				owner[k] = b.Action
			}
		}
	}
	return nil
}
