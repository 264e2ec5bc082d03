package markdown

import (
	"strings"
	"testing"
)

func TestRender_Plain(t *testing.T) {
	out := Render("# Standup\n\n- ship the **calendar**\n- review PR", StylePlain, 60)
	for _, want := range []string{"Standup", "ship the", "calendar", "review PR"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain style emitted escapes: %q", out)
	}
}

func TestRender_Empty(t *testing.T) {
	if got := Render(" \n\t", StylePlain, 80); got != "" {
		t.Errorf("Render(blank) = %q", got)
	}
}

func TestRender_CachesRenderer(t *testing.T) {
	Render("a", StylePlain, 41)
	Render("b", StylePlain, 41)
	mu.Lock()
	defer mu.Unlock()
	n := 0
	for k := range renderers {
		if strings.HasSuffix(k, ":41") {
			n++
		}
	}
	if n != 1 {
		t.Errorf("renderers for width 41 = %d, want 1", n)
	}
}

func TestStyleFor(t *testing.T) {
	if StyleFor("light") != "light" || StyleFor("dark") != "dark" || StyleFor("") != "dark" {
		t.Error("StyleFor mapping wrong")
	}
}
