package ui

import (
	"strings"
	"testing"

	"productivelife/internal/config"

	"github.com/charmbracelet/lipgloss"
)

func TestNewStyles_UsesThemeColors(t *testing.T) {
	theme := &config.ThemeConfig{
		Primary:    "#FF0000",
		Accent:     "#00FF00",
		Muted:      "#0000FF",
		Background: "#000000",
		Text:       "#FFFFFF",
	}

	styles := NewStyles(theme, false)

	if styles.ColorPrimary != lipgloss.Color("#FF0000") {
		t.Errorf("ColorPrimary = %v, want #FF0000", styles.ColorPrimary)
	}
	if styles.ColorAccent != lipgloss.Color("#00FF00") {
		t.Errorf("ColorAccent = %v, want #00FF00", styles.ColorAccent)
	}
	if styles.ColorMuted != lipgloss.Color("#0000FF") {
		t.Errorf("ColorMuted = %v, want #0000FF", styles.ColorMuted)
	}
	// Explicit colors win over the light palette.
	if styles.ColorBg != lipgloss.Color("#000000") || styles.ColorText != lipgloss.Color("#FFFFFF") {
		t.Errorf("ColorBg/ColorText = %v/%v", styles.ColorBg, styles.ColorText)
	}
}

func TestNewStyles_DarkAndLightPalettes(t *testing.T) {
	dark := NewStyles(&config.ThemeConfig{}, true)
	light := NewStyles(nil, false)

	if !dark.Dark || light.Dark {
		t.Fatal("Dark flag not set from mode")
	}
	if dark.ColorText != lipgloss.Color(darkPalette.text) {
		t.Errorf("dark ColorText = %v", dark.ColorText)
	}
	if light.ColorText != lipgloss.Color(lightPalette.text) {
		t.Errorf("light ColorText = %v", light.ColorText)
	}
	if dark.ColorPrimary != light.ColorPrimary {
		t.Error("primary color should not depend on mode")
	}
}

func TestRenderHelp(t *testing.T) {
	setupTest(t)
	styles := createTestStyles()

	got := styles.RenderHelp("a", "add", "x", "del")
	if got != "[a] add  [x] del" {
		t.Errorf("RenderHelp() = %q", got)
	}
	if strings.Contains(styles.RenderHelp("odd"), "odd") {
		t.Error("RenderHelp() should ignore a key without description")
	}
}
