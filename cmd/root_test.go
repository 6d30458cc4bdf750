package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/marcus/disclose/internal/config"
	"github.com/marcus/disclose/internal/logging"
	"github.com/marcus/disclose/internal/output"
)

// captureStdout redirects output.Stdout for the duration of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := output.Stdout
	output.Stdout = &buf
	t.Cleanup(func() { output.Stdout = orig })
	return &buf
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvHoverDelayMS, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvLogFile, "")
}

func findNode(nodes []output.TreeNode, id string) (output.TreeNode, bool) {
	for _, n := range nodes {
		if n.ID == id && n.Kind == output.KindElement {
			return n, true
		}
		if found, ok := findNode(n.Children, id); ok {
			return found, true
		}
	}
	return output.TreeNode{}, false
}

func TestRootCommands(t *testing.T) {
	want := map[string]bool{"demo": false, "inspect": false, "config": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestInspectSceneClosed(t *testing.T) {
	nodes, err := inspectScene("", logging.Discard())
	if err != nil {
		t.Fatalf("inspectScene: %v", err)
	}

	if got := output.CountTriggers(nodes); got != 7 {
		t.Errorf("CountTriggers = %d, want 7", got)
	}
	for _, id := range []string{"save", "share", "zoom", "reset"} {
		n, ok := findNode(nodes, id)
		if !ok {
			t.Fatalf("node %q missing", id)
		}
		if !n.Trigger || n.State != "closed" {
			t.Errorf("%s: Trigger=%v State=%q, want closed trigger", id, n.Trigger, n.State)
		}
	}
	if n, _ := findNode(nodes, "panel"); n.Trigger {
		t.Error("panel should not be a trigger")
	}
}

func TestInspectSceneFocus(t *testing.T) {
	nodes, err := inspectScene("zoom", logging.Discard())
	if err != nil {
		t.Fatalf("inspectScene: %v", err)
	}

	zoom, ok := findNode(nodes, "zoom")
	if !ok {
		t.Fatal("zoom missing")
	}
	if !zoom.Focused {
		t.Error("zoom should be focused")
	}
	if zoom.State != "open-by-focus" {
		t.Errorf("zoom State = %q, want open-by-focus", zoom.State)
	}
	if pan, _ := findNode(nodes, "pan"); pan.State != "closed" {
		t.Errorf("pan State = %q, want closed", pan.State)
	}
}

func TestInspectSceneErrors(t *testing.T) {
	tests := []struct {
		name  string
		focus string
		want  string
	}{
		{"missing", "nonexistent-element", `no element "nonexistent-element"`},
		{"typo", "zoon", `no element "zoon" (did you mean zoom?)`},
		{"not focusable", "toolbar", `element "toolbar" cannot take focus`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := inspectScene(tt.focus, logging.Discard())
			if err == nil || err.Error() != tt.want {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestInspectCommand(t *testing.T) {
	buf := captureStdout(t)

	rootCmd.SetArgs([]string{"inspect", "--focus", "reset"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("inspect: %v", err)
	}

	out := ansi.Strip(buf.String())
	for _, want := range []string{"#shadow-root", "reset: Reset", "[open-by-focus]", "\u2190 focus", "7 triggers"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestParseHoverDelay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"120", 120, false},
		{"5000", 5000, false},
		{"5001", 0, true},
		{"-1", 0, true},
		{"fast", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHoverDelay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseHoverDelay(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseHoverDelay(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestShowConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	buf := captureStdout(t)
	if err := showConfig(dir, false); err != nil {
		t.Fatalf("showConfig: %v", err)
	}
	if !strings.Contains(buf.String(), "hover_delay_ms: 50\n") {
		t.Errorf("default delay missing:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), logging.Path(dir, "")) {
		t.Errorf("log path missing:\n%s", buf.String())
	}

	if err := config.SetHoverDelay(dir, 120); err != nil {
		t.Fatalf("SetHoverDelay: %v", err)
	}
	buf.Reset()
	if err := showConfig(dir, true); err != nil {
		t.Fatalf("showConfig json: %v", err)
	}

	var got config.Config
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if got.HoverDelayMS == nil || *got.HoverDelayMS != 120 {
		t.Errorf("HoverDelayMS = %v, want 120", got.HoverDelayMS)
	}
	if got.LogLevel != config.DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", got.LogLevel, config.DefaultLogLevel)
	}
}

func TestApplyDemoFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantDelay int
		wantLevel string
		wantErr   bool
	}{
		{"unchanged", nil, 80, "info", false},
		{"delay", []string{"--hover-delay", "200"}, 200, "info", false},
		{"level", []string{"--log-level", "debug"}, 80, "debug", false},
		{"delay out of range", []string{"--hover-delay", "9000"}, 9000, "info", true},
		{"bad level", []string{"--log-level", "loud"}, 80, "loud", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &cobra.Command{Use: "demo"}
			addDemoFlags(c)
			if err := c.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags: %v", err)
			}

			cfg := &config.Config{LogLevel: "info"}
			cfg.SetHoverDelayMS(80)

			err := applyDemoFlags(c, cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if *cfg.HoverDelayMS != tt.wantDelay {
				t.Errorf("HoverDelayMS = %d, want %d", *cfg.HoverDelayMS, tt.wantDelay)
			}
			if cfg.LogLevel != tt.wantLevel {
				t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, tt.wantLevel)
			}
		})
	}
}
