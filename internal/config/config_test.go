package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfig_Full(t *testing.T) {
	yaml := `
data_dir: /data/beacon
format: sqlite
page_size: 40
log_level: debug
plot:
  width: 100
  height: 20
`
	cfg, err := ParseConfig([]byte(yaml), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataDir != "/data/beacon" {
		t.Errorf("data_dir = %q, want /data/beacon", cfg.DataDir)
	}
	if cfg.Format != "sqlite" {
		t.Errorf("format = %q, want sqlite", cfg.Format)
	}
	if cfg.PageSize != 40 {
		t.Errorf("page_size = %d, want 40", cfg.PageSize)
	}
	if cfg.Plot.Width != 100 || cfg.Plot.Height != 20 {
		t.Errorf("plot = %+v, want 100x20", cfg.Plot)
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("{}"), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("got %+v, want defaults %+v", *cfg, *Default())
	}
	if cfg.PageSize != 25 {
		t.Errorf("page_size = %d, want 25", cfg.PageSize)
	}
	if cfg.Format != "auto" || cfg.LogLevel != "info" {
		t.Errorf("format/log_level = %q/%q", cfg.Format, cfg.LogLevel)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad format", "format: root", `format "root"`},
		{"bad level", "log_level: loud", `log_level "loud"`},
		{"negative page", "page_size: -1", "page_size"},
		{"negative plot", "plot: {width: -3}", "plot size"},
		{"not yaml", "data_dir: [", "parsing test.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml), "test.yaml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestFindConfig_WalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "beacon.yml")
	if err := os.WriteFile(want, []byte("data_dir: runs\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("FindConfig = %q, want %q", got, want)
	}

	cfg, path, err := Load(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if cfg.DataDir != filepath.Join(root, "runs") {
		t.Errorf("data_dir = %q, want it resolved against %s", cfg.DataDir, root)
	}
}

func TestLoad_NoConfig(t *testing.T) {
	// t.TempDir lives under the system temp dir, which has no beacon.yaml
	// on a sane machine.
	cfg, path, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Skipf("found stray config at %s", path)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Errorf("page_size = %d, want %d", cfg.PageSize, DefaultPageSize)
	}
}
