package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.yaml")
	content := `repository: my-repo
access_token: read-token
permanent_token: perm-token
output: backups/my-repo
routes:
  - type: article
    path: /articles/:uid
    uid: true
  - type: page
    path: /:uid
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Repository != "my-repo" {
		t.Errorf("Repository = %q, want %q", cfg.Repository, "my-repo")
	}
	if cfg.AccessToken != "read-token" || cfg.PermanentToken != "perm-token" {
		t.Errorf("tokens = (%q, %q), want (read-token, perm-token)", cfg.AccessToken, cfg.PermanentToken)
	}
	if cfg.Output != "backups/my-repo" {
		t.Errorf("Output = %q, want %q", cfg.Output, "backups/my-repo")
	}
	if len(cfg.Routes) != 2 {
		t.Fatalf("len(Routes) = %d, want 2", len(cfg.Routes))
	}
	if !cfg.Routes[0].UID || cfg.Routes[0].Type != "article" {
		t.Errorf("Routes[0] = %+v, want the article route with uid set", cfg.Routes[0])
	}
	if cfg.Routes[1].UID {
		t.Errorf("Routes[1].UID = true, want false when omitted")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("repository: [unclosed"), 0644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for invalid YAML, got nil")
	}
}
