package dashboard

import (
	"sort"
	"strings"
)

// DarkWrapperClass is applied to the page wrapper when dark mode is on.
const DarkWrapperClass = "dark"

// ThemeSelection carries the design tokens injected as CSS variables.
type ThemeSelection struct {
	Name   string
	Tokens map[string]string
}

// DefaultTheme returns the olive palette used by the dashboard shell.
func DefaultTheme() *ThemeSelection {
	return &ThemeSelection{
		Name: "olive",
		Tokens: map[string]string{
			"olive-50":    "#f3f6f1",
			"olive-100":   "#e6eee2",
			"olive-200":   "#c9dcc0",
			"olive-300":   "#a9c79b",
			"olive-400":   "#88b076",
			"olive-500":   "#6e9d5e",
			"olive-600":   "#567a4a",
			"olive-700":   "#415e39",
			"olive-800":   "#31472b",
			"olive-900":   "#253623",
			"radius-xl":   "0.875rem",
			"radius-2xl":  "1.25rem",
			"shadow-card": "0 1px 2px rgba(16,24,40,.06), 0 1px 3px rgba(16,24,40,.1)",
		},
	}
}

// WrapperClass returns the presentation class for the dark mode flag. It is
// the only thing dark mode changes.
func WrapperClass(dark bool) string {
	if dark {
		return DarkWrapperClass
	}
	return ""
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variable map as a style string, sorted by name.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		value := vars[key]
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}
