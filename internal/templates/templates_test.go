package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/routeview/internal/config"
)

func TestList(t *testing.T) {
	if diff := cmp.Diff([]string{"docs", "json", "minimal"}, List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("nope"); err == nil {
		t.Error("Get(nope) succeeded")
	}
}

func TestTemplatesProduceValidConfig(t *testing.T) {
	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			tmpl, err := Get(name)
			if err != nil {
				t.Fatal(err)
			}
			if err := tmpl.Create(dir, Config{ProjectName: "handbook", Port: 4100}); err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			cfg, err := config.Load(dir)
			if err != nil {
				t.Fatalf("config.Load() error = %v", err)
			}
			if cfg.Name != "handbook" || cfg.Server.Port != 4100 {
				t.Errorf("config = name %q port %d", cfg.Name, cfg.Server.Port)
			}
			if _, err := cfg.Table(config.TableOptions{}); err != nil {
				t.Errorf("Table() error = %v", err)
			}
		})
	}
}

func TestCreateDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "routeview.yaml")
	if err := os.WriteFile(existing, []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}

	tmpl, _ := Get("minimal")
	if err := tmpl.Create(dir, Config{}); err == nil {
		t.Fatal("Create() overwrote an existing file")
	}
	data, _ := os.ReadFile(existing)
	if string(data) != "mine" {
		t.Errorf("existing file changed to %q", data)
	}
}
