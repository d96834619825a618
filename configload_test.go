// SPDX-License-Identifier: GPL-3.0-or-later

package pubnub

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pubnub.yaml")
	contents := "publish_key: file-pub\nsubscribe_key: file-sub\norigin: https://file.example.com\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PublishKey != "file-pub" || cfg.SubscribeKey != "file-sub" {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.Origin != "https://file.example.com" {
		t.Fatalf("expected origin from file, got %s", cfg.Origin)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pubnub.yaml")
	contents := "publish_key: file-pub\nsubscribe_key: file-sub\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PUBNUB_SUBSCRIBE_KEY", "env-sub")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SubscribeKey != "env-sub" {
		t.Fatalf("expected env var to override file, got %s", cfg.SubscribeKey)
	}
	if cfg.PublishKey != "file-pub" {
		t.Fatalf("expected file value to survive where env is unset, got %s", cfg.PublishKey)
	}
}

func TestLoadConfigDefaultsSurviveWithNoOverrides(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.TLSEnable {
		t.Fatal("expected NewConfig's TLSEnable default to survive with no overrides")
	}
}
