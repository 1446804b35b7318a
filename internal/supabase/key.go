package supabase

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

type KeySource string

const (
	KeySourceExplicit KeySource = "explicit"
	KeySourceEnv      KeySource = "env:SUPABASE_KEY"
	KeySourceSecrets  KeySource = "secrets-file"
)

type secretsFile struct {
	SupabaseKey string `yaml:"supabase_key"`
}

// ResolveServiceKey resolves the Supabase service key.
//
// Precedence:
//  1. provided (if non-empty)
//  2. SUPABASE_KEY env var
//  3. secretsPath, a YAML file with a supabase_key entry
//
// It never prints the key.
func ResolveServiceKey(provided, secretsPath string) (key string, source KeySource, err error) {
	if k := strings.TrimSpace(provided); k != "" {
		return k, KeySourceExplicit, nil
	}

	if env := strings.TrimSpace(os.Getenv("SUPABASE_KEY")); env != "" {
		return env, KeySourceEnv, nil
	}

	k, ok, err := keyFromSecretsFile(secretsPath)
	if err != nil {
		return "", "", err
	}
	if ok {
		return k, KeySourceSecrets, nil
	}
	return "", "", nil
}

func keyFromSecretsFile(path string) (key string, ok bool, err error) {
	if strings.TrimSpace(path) == "" {
		return "", false, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read secrets file: %w", err)
	}

	var s secretsFile
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return "", false, fmt.Errorf("parse secrets file %s: %w", path, err)
	}

	k := strings.TrimSpace(s.SupabaseKey)
	if k == "" {
		return "", false, nil
	}

	// Basic sanity: keys must not contain whitespace.
	if strings.ContainsAny(k, " \t\n\r") {
		return "", false, errors.New("invalid supabase_key in secrets file: contains whitespace")
	}

	return k, true, nil
}
