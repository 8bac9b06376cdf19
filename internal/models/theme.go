package models

// Theme is the site-wide visual presentation mode
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ThemeKey is the storage key the theme preference is persisted under
const ThemeKey = "theme"

// DefaultTheme is used when nothing usable has been persisted
const DefaultTheme = ThemeDark

// ParseTheme maps a persisted value onto a Theme.
// Only the literal "light" selects light mode.
func ParseTheme(s string) Theme {
	if s == string(ThemeLight) {
		return ThemeLight
	}
	return DefaultTheme
}

// Opposite returns the other theme
func (t Theme) Opposite() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Label is the human name of the theme, used on the toggle control
func (t Theme) Label() string {
	if t == ThemeLight {
		return "Light mode"
	}
	return "Dark mode"
}
