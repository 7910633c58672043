package ui

import "testing"

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")

	t.Setenv("MARQUEE_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when MARQUEE_DARK_MODE=1")
	}

	t.Setenv("MARQUEE_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when MARQUEE_DARK_MODE is unset")
	}

	t.Setenv("COLORFGBG", "15;0")
	fromTerm := DetectTheme()
	if !fromTerm.IsDark {
		t.Fatalf("expected dark theme for COLORFGBG=15;0")
	}
}

func TestThemeFromName(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("MARQUEE_DARK_MODE", "")

	if ThemeFromName("dark").IsDark != true {
		t.Error("expected dark theme for name \"dark\"")
	}
	if ThemeFromName("light").IsDark != false {
		t.Error("expected light theme for name \"light\"")
	}
	if ThemeFromName("auto").IsDark != false {
		t.Error("expected detection fallback for name \"auto\"")
	}
}

func TestRenderDivider(t *testing.T) {
	styles := NewStyles(LightTheme())
	if got := styles.RenderDivider(0); got != "" {
		t.Errorf("expected empty divider for zero width, got %q", got)
	}
	if got := styles.RenderDivider(4); got == "" {
		t.Error("expected non-empty divider")
	}
}
