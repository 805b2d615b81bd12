package render

import "siteforge/pkg/domain"

// Palette carries the CSS colors one theme contributes to a layout.
type Palette struct {
	Primary      string
	PrimaryLight string
	PrimaryText  string
	GradientFrom string
	GradientTo   string
}

// ThemeInfo describes a selectable theme for picker UIs.
type ThemeInfo struct {
	ID    domain.ThemeID `json:"id"`
	Name  string         `json:"name"`
	Color string         `json:"color"`
}

var palettes = map[domain.ThemeID]Palette{
	domain.ThemeBlue: {
		Primary:      "#2563eb",
		PrimaryLight: "#eff6ff",
		PrimaryText:  "#2563eb",
		GradientFrom: "#2563eb",
		GradientTo:   "#1e40af",
	},
	domain.ThemePurple: {
		Primary:      "#9333ea",
		PrimaryLight: "#faf5ff",
		PrimaryText:  "#9333ea",
		GradientFrom: "#9333ea",
		GradientTo:   "#6b21a8",
	},
	domain.ThemeGreen: {
		Primary:      "#16a34a",
		PrimaryLight: "#f0fdf4",
		PrimaryText:  "#16a34a",
		GradientFrom: "#16a34a",
		GradientTo:   "#166534",
	},
	domain.ThemeOrange: {
		Primary:      "#ea580c",
		PrimaryLight: "#fff7ed",
		PrimaryText:  "#ea580c",
		GradientFrom: "#ea580c",
		GradientTo:   "#9a3412",
	},
	domain.ThemePink: {
		Primary:      "#db2777",
		PrimaryLight: "#fdf2f8",
		PrimaryText:  "#db2777",
		GradientFrom: "#db2777",
		GradientTo:   "#9d174d",
	},
}

// PaletteFor resolves a theme id, falling back to the default palette for
// unknown ids.
func PaletteFor(theme domain.ThemeID) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[domain.DefaultTheme]
}

// Themes lists the selectable themes in display order.
func Themes() []ThemeInfo {
	return []ThemeInfo{
		{ID: domain.ThemeBlue, Name: "海洋蓝", Color: palettes[domain.ThemeBlue].Primary},
		{ID: domain.ThemePurple, Name: "紫罗兰", Color: palettes[domain.ThemePurple].Primary},
		{ID: domain.ThemeGreen, Name: "森林绿", Color: palettes[domain.ThemeGreen].Primary},
		{ID: domain.ThemeOrange, Name: "活力橙", Color: palettes[domain.ThemeOrange].Primary},
		{ID: domain.ThemePink, Name: "樱花粉", Color: palettes[domain.ThemePink].Primary},
	}
}
