package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/masmgr/rankcurve/config"
	"github.com/masmgr/rankcurve/internal/output"
)

// runApp runs the CLI with args and returns what commands wrote to the app writer.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	app := App()
	var buf bytes.Buffer
	app.Writer = &buf
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"rankcurve", "--log-level", "error"}, args...))
	return buf.String(), err
}

// defaultConfigFile writes the default configuration and returns its path.
func defaultConfigFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rankcurve.json")
	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	return path
}

func TestScoreCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "Top rank", args: []string{"score", "--rank", "151"}, want: "350"},
		{name: "Middle rank", args: []string{"score", "--rank", "76"}, want: "87.5"},
		{name: "Half completion", args: []string{"score", "--rank", "151", "--percent", "50"}, want: "134.01"},
		{name: "Lowest rank", args: []string{"score", "--rank", "1"}, want: "0"},
		{name: "Two phase top", args: []string{"--profile", "two-phase-exponential", "score", "--rank", "1"}, want: "350"},
		{name: "Two phase gated", args: []string{"--profile", "two-phase-exponential", "score", "--rank", "76", "--percent", "50"}, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", defaultConfigFile(t)}, tt.args...)
			out, err := runApp(t, args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Fatalf("score output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoreCommand_Explain(t *testing.T) {
	out, err := runApp(t, "--config", defaultConfigFile(t), "score", "--rank", "151", "--explain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Score: 350", "Shape:       convex-power", "Base:", "Penalty:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestScoreCommand_ExplainGated(t *testing.T) {
	out, err := runApp(t, "--config", defaultConfigFile(t), "--profile", "two-phase-exponential",
		"score", "--rank", "80", "--percent", "90", "--explain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Gated:       rank past 75 requires 100%") {
		t.Errorf("output missing gate line:\n%s", out)
	}
}

func TestScoreCommand_ExplainInclusiveGate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inclusive.json")
	cfg := config.DefaultConfig()
	cfg.Curve = config.Presets()[string(config.ShapeTwoPhaseExponential)]
	cfg.Curve.HighRankPercentGate = &config.PercentGate{ThresholdRank: 75, RequiredPercent: 100, Inclusive: true}
	if err := config.SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	out, err := runApp(t, "--config", path, "score", "--rank", "75", "--percent", "50", "--explain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Gated:       rank at or past 75 requires 100%") {
		t.Errorf("output missing inclusive gate line:\n%s", out)
	}
}

func TestMissingExplicitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.json")

	tests := []struct {
		name string
		args []string
	}{
		{name: "Validate", args: []string{"--config", path, "validate"}},
		{name: "Score", args: []string{"--config", path, "score", "--rank", "1"}},
		{name: "Table", args: []string{"--config", path, "table"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, tt.args...)
			if err == nil {
				t.Fatalf("expected error for missing %s, got output %q", path, out)
			}
			if strings.Contains(out, "OK") {
				t.Errorf("output reports success for a missing file:\n%s", out)
			}
		})
	}
}

func TestScoreCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "Missing rank", args: []string{"score"}},
		{name: "Unknown profile", args: []string{"--profile", "nope", "score", "--rank", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", defaultConfigFile(t)}, tt.args...)
			if _, err := runApp(t, args...); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestScoreCommand_InvalidConfigCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"curve": {"shape": "convex-power", "maxPoints": 10, "maxRank": 1, "shapeExp": 2}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := runApp(t, "--config", path, "score", "--rank", "1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "maxRank") {
		t.Errorf("error = %v, expected it to name maxRank", err)
	}
}

func TestTableCommand_JSON(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "table.json")
	_, err := runApp(t, "--config", defaultConfigFile(t), "table",
		"--from", "147", "--format", "json", "--output", outPath, "--explain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	var report output.JSONTableReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if report.TotalRanks != 5 {
		t.Fatalf("TotalRanks = %d, want 5 (147..151)", report.TotalRanks)
	}
	last := report.Items[len(report.Items)-1]
	if last.Rank != 151 || last.Score != 350 {
		t.Errorf("last item = %+v, want rank 151 score 350", last)
	}
	if last.Breakdown == nil {
		t.Error("Breakdown missing with --explain")
	}
}

func TestTableCommand_InvalidRange(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "From zero", args: []string{"table", "--from", "0"}},
		{name: "To before from", args: []string{"table", "--from", "10", "--to", "5"}},
		{name: "Range too large", args: []string{"table", "--format", "ci", "--to", "9223372036854775807"}},
		{name: "Range one past limit", args: []string{"table", "--from", "1", "--to", "10001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", defaultConfigFile(t)}, tt.args...)
			if _, err := runApp(t, args...); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestRoundCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "Default scale", args: []string{"round", "1.005"}, want: "1.01"},
		{name: "Exponent input", args: []string{"round", "1.5e-20"}, want: "0"},
		{name: "Scale zero", args: []string{"round", "--scale", "0", "2.5"}, want: "3"},
		{name: "Scale three", args: []string{"round", "--scale", "3", "0.0005"}, want: "0.001"},
		{name: "Not a number", args: []string{"round", "abc"}, wantErr: true},
		{name: "Missing number", args: []string{"round"}, wantErr: true},
		{name: "Scale too large", args: []string{"round", "--scale", "16", "1.5"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Fatalf("round output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInitThenValidate(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "curves", "plateau.yaml")
	if err := os.MkdirAll(filepath.Dir(yamlPath), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := runApp(t, "init", "--output", yamlPath, "--preset", "plateau-then-exponential"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, err := config.LoadConfig(yamlPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Curve.Shape != config.ShapePlateauThenExponential {
		t.Errorf("Curve.Shape = %q, want %q", cfg.Curve.Shape, config.ShapePlateauThenExponential)
	}

	out, err := runApp(t, "validate", filepath.Join(dir, "**", "*.yaml"))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "OK    "+yamlPath) {
		t.Errorf("validate output missing OK line:\n%s", out)
	}

	badPath := filepath.Join(dir, "curves", "bad.json")
	if err := os.WriteFile(badPath, []byte(`{"curve": {"shape": "sigmoid", "maxRank": 10}}`), 0644); err != nil {
		t.Fatal(err)
	}
	out, err = runApp(t, "validate", filepath.Join(dir, "**", "*.yaml"), filepath.Join(dir, "**", "*.json"))
	if err == nil {
		t.Fatal("expected validate to fail")
	}
	if !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("error = %v, want 1 of 2 invalid", err)
	}
	if !strings.Contains(out, "FAIL  "+badPath) {
		t.Errorf("validate output missing FAIL line:\n%s", out)
	}
}

func TestValidateCommand_NoMatches(t *testing.T) {
	if _, err := runApp(t, "validate", filepath.Join(t.TempDir(), "*.json")); err == nil {
		t.Fatal("expected error when no files match")
	}
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".rankcurve.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runApp(t, "init", "--output", path); err == nil {
		t.Fatal("expected error for existing file")
	}
	if _, err := runApp(t, "init", "--output", path, "--force"); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	if _, err := runApp(t, "init", "--output", path, "--force", "--preset", "nope"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestProfilesCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	cfg := config.DefaultConfig()
	cfg.Profiles["weekly"] = config.Presets()["inverse-decay-power"]
	if err := config.SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	out, err := runApp(t, "--config", path, "profiles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range append(presetNames(), "weekly", "(default)") {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
