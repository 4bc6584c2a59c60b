package keys

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/agnivade/levenshtein"
)

// Override replaces the keys of one action in one scope.
type Override struct {
	Scope  string   `toml:"scope"`
	Action string   `toml:"action"`
	Keys   []string `toml:"keys"`
}

// keymapFile is the top-level TOML structure of keys.toml.
type keymapFile struct {
	Binding []Override `toml:"binding"`
}

// maxSuggestDistance bounds how different a typo may be and still get a
// "did you mean" hint.
const maxSuggestDistance = 3

// LoadOverrides reads a keymap file. A missing file is not an error.
func LoadOverrides(path string) ([]Override, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	return ParseOverrides(data)
}

// ParseOverrides decodes keymap TOML.
func ParseOverrides(data []byte) ([]Override, error) {
	var f keymapFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse keymap: %w", err)
	}
	return f.Binding, nil
}

// EncodeOverrides writes items in the keymap TOML format.
func EncodeOverrides(w io.Writer, items []Override) error {
	if err := toml.NewEncoder(w).Encode(keymapFile{Binding: items}); err != nil {
		return fmt.Errorf("encode keymap: %w", err)
	}
	return nil
}

// ApplyKeybindingConfig rebinds existing actions. It rejects unknown scopes
// and actions, repeated entries, and keys that would collide inside a scope.
// The batch applies as a whole: on error the registry is unchanged.
func (r *Registry) ApplyKeybindingConfig(items []Override) error {
	if r == nil || len(items) == 0 {
		return nil
	}
	type pair struct {
		scope  string
		action Action
	}
	seenPair := make(map[pair]bool)
	staged := make(map[*Binding][]string, len(items))
	for _, o := range items {
		scope := strings.TrimSpace(o.Scope)
		if scope == "" {
			return fmt.Errorf("keymap override: scope is required")
		}
		action := Action(strings.TrimSpace(o.Action))
		if action == "" {
			return fmt.Errorf("keymap override scope=%q: action is required", scope)
		}
		keys := normalizeKeyList(o.Keys)
		if len(keys) == 0 {
			return fmt.Errorf("keymap override scope=%q action=%q: keys are required", scope, action)
		}

		bindings := r.bindingsByScope[scope]
		if len(bindings) == 0 {
			return fmt.Errorf("keymap override scope=%q action=%q: unknown scope%s", scope, action, suggest(scope, r.scopes()))
		}
		var target *Binding
		for _, b := range bindings {
			if b.Action == action {
				target = b
				break
			}
		}
		if target == nil {
			return fmt.Errorf("keymap override scope=%q action=%q: unknown action in scope%s", scope, action, suggest(string(action), actionNames(bindings)))
		}
		p := pair{scope: scope, action: action}
		if seenPair[p] {
			return fmt.Errorf("keymap override scope=%q action=%q: duplicated override entry", scope, action)
		}
		seenPair[p] = true
		staged[target] = keys
	}

	if err := r.checkConflicts(staged); err != nil {
		return err
	}
	for b, keys := range staged {
		b.Keys = keys
	}
	r.rebuildIndex()
	return nil
}

func (r *Registry) scopes() []string {
	out := make([]string, 0, len(r.bindingsByScope))
	for scope := range r.bindingsByScope {
		out = append(out, scope)
	}
	return out
}

func actionNames(bindings []*Binding) []string {
	out := make([]string, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, string(b.Action))
	}
	return out
}

// suggest returns a "did you mean" suffix naming the closest candidate, or
// an empty string when nothing is close enough.
func suggest(got string, candidates []string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(got), c)
		if d < bestDist || (d == bestDist && c < best) {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}
