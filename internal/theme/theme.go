// Package theme defines the calculator's three fixed color palettes.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Variant selects one of the three palettes. Only Variant1..Variant3 exist.
type Variant int

const (
	Variant1 Variant = iota + 1
	Variant2
	Variant3
)

// StatusBarStyle is the foreground treatment for the bottom help bar.
type StatusBarStyle string

const (
	StatusBarLight StatusBarStyle = "light"
	StatusBarDark  StatusBarStyle = "dark"
)

// Palette maps every themed slot of the screen to a color.
type Palette struct {
	Background       lipgloss.Color
	KeypadBackground lipgloss.Color
	ScreenBackground lipgloss.Color

	NumberKey       lipgloss.Color
	NumberKeyShadow lipgloss.Color
	NumberKeyText   lipgloss.Color

	FunctionKey       lipgloss.Color
	FunctionKeyShadow lipgloss.Color
	FunctionKeyText   lipgloss.Color

	EqualsKey       lipgloss.Color
	EqualsKeyShadow lipgloss.Color
	EqualsKeyText   lipgloss.Color

	Text      lipgloss.Color
	StatusBar StatusBarStyle
}

// ---------------------------------------------------------------------------
// Palettes
// ---------------------------------------------------------------------------

var palettes = [...]Palette{
	// Desaturated navy.
	{
		Background:        "#3a4764",
		KeypadBackground:  "#232c43",
		ScreenBackground:  "#182034",
		NumberKey:         "#eae3dc",
		NumberKeyShadow:   "#b4a597",
		NumberKeyText:     "#444b5a",
		FunctionKey:       "#647198",
		FunctionKeyShadow: "#404e72",
		FunctionKeyText:   "#ffffff",
		EqualsKey:         "#d03f2f",
		EqualsKeyShadow:   "#93261a",
		EqualsKeyText:     "#ffffff",
		Text:              "#ffffff",
		StatusBar:         StatusBarLight,
	},
	// Light grey.
	{
		Background:        "#e6e6e6",
		KeypadBackground:  "#d1cccc",
		ScreenBackground:  "#ededed",
		NumberKey:         "#e5e4e1",
		NumberKeyShadow:   "#a69d91",
		NumberKeyText:     "#35352c",
		FunctionKey:       "#378187",
		FunctionKeyShadow: "#1b6066",
		FunctionKeyText:   "#ffffff",
		EqualsKey:         "#ca5502",
		EqualsKeyShadow:   "#893901",
		EqualsKeyText:     "#ffffff",
		Text:              "#35352c",
		StatusBar:         StatusBarDark,
	},
	// Dark violet.
	{
		Background:        "#160628",
		KeypadBackground:  "#1d0934",
		ScreenBackground:  "#1d0934",
		NumberKey:         "#341c4f",
		NumberKeyShadow:   "#871c9c",
		NumberKeyText:     "#ffe53d",
		FunctionKey:       "#58077d",
		FunctionKeyShadow: "#bc15f4",
		FunctionKeyText:   "#ffffff",
		EqualsKey:         "#00e0d1",
		EqualsKeyShadow:   "#6cf9f2",
		EqualsKeyText:     "#1b2428",
		Text:              "#ffe53d",
		StatusBar:         StatusBarLight,
	},
}

// Variants returns every variant in selector order.
func Variants() []Variant {
	return []Variant{Variant1, Variant2, Variant3}
}

// ParseVariant converts a selector index from configuration.
func ParseVariant(n int) (Variant, error) {
	v := Variant(n)
	if !v.Valid() {
		return 0, fmt.Errorf("theme %d: must be 1, 2 or 3", n)
	}
	return v, nil
}

func (v Variant) Valid() bool {
	return v >= Variant1 && v <= Variant3
}

// Palette looks up the colors for v. Callers only hold valid variants; an
// invalid one falls back to Variant1.
func (v Variant) Palette() Palette {
	if !v.Valid() {
		return palettes[0]
	}
	return palettes[v-1]
}

// Next cycles 1 → 2 → 3 → 1.
func (v Variant) Next() Variant {
	if !v.Valid() || v == Variant3 {
		return Variant1
	}
	return v + 1
}

func (v Variant) String() string {
	return fmt.Sprintf("%d", int(v))
}

// Colors returns every color slot of p, for validation.
func (p Palette) Colors() []lipgloss.Color {
	return []lipgloss.Color{
		p.Background, p.KeypadBackground, p.ScreenBackground,
		p.NumberKey, p.NumberKeyShadow, p.NumberKeyText,
		p.FunctionKey, p.FunctionKeyShadow, p.FunctionKeyText,
		p.EqualsKey, p.EqualsKeyShadow, p.EqualsKeyText,
		p.Text,
	}
}
