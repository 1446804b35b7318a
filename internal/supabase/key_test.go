package supabase

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveServiceKey_PrefersExplicit(t *testing.T) {
	t.Setenv("SUPABASE_KEY", "env-key")

	key, source, err := ResolveServiceKey("  explicit-key  ", "")
	if err != nil {
		t.Fatalf("ResolveServiceKey: %v", err)
	}
	if key != "explicit-key" || source != KeySourceExplicit {
		t.Errorf("got %q from %q", key, source)
	}
}

func TestResolveServiceKey_Env(t *testing.T) {
	t.Setenv("SUPABASE_KEY", "env-key")

	key, source, err := ResolveServiceKey("", "")
	if err != nil {
		t.Fatalf("ResolveServiceKey: %v", err)
	}
	if key != "env-key" || source != KeySourceEnv {
		t.Errorf("got %q from %q", key, source)
	}
}

func TestResolveServiceKey_SecretsFile(t *testing.T) {
	t.Setenv("SUPABASE_KEY", "")
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	if err := os.WriteFile(path, []byte("supabase_key: file-key\n"), 0600); err != nil {
		t.Fatal(err)
	}

	key, source, err := ResolveServiceKey("", path)
	if err != nil {
		t.Fatalf("ResolveServiceKey: %v", err)
	}
	if key != "file-key" || source != KeySourceSecrets {
		t.Errorf("got %q from %q", key, source)
	}
}

func TestResolveServiceKey_MissingSecretsFileIsNotAnError(t *testing.T) {
	t.Setenv("SUPABASE_KEY", "")

	key, source, err := ResolveServiceKey("", filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("ResolveServiceKey: %v", err)
	}
	if key != "" || source != "" {
		t.Errorf("expected no key, got %q from %q", key, source)
	}
}

func TestResolveServiceKey_RejectsWhitespaceKey(t *testing.T) {
	t.Setenv("SUPABASE_KEY", "")
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	if err := os.WriteFile(path, []byte("supabase_key: \"bad key\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := ResolveServiceKey("", path); err == nil {
		t.Fatal("expected error for key containing whitespace")
	}
}

func TestResolveServiceKey_BadYAML(t *testing.T) {
	t.Setenv("SUPABASE_KEY", "")
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- not yaml"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := ResolveServiceKey("", path); err == nil {
		t.Fatal("expected error for malformed secrets file")
	}
}
