package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEnvFileKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	content := "OPENAI_API_KEY=sk-secret\n# comment\nDATABASE_URL=postgres://x\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	keys, err := EnvFileKeys(path)
	if err != nil {
		t.Fatalf("EnvFileKeys: %v", err)
	}

	if len(keys) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(keys), keys)
	}
	if keys[0] != "DATABASE_URL" || keys[1] != "OPENAI_API_KEY" {
		t.Fatalf("keys = %v, want sorted names", keys)
	}
}

func TestEnvFileKeysMissing(t *testing.T) {
	if _, err := EnvFileKeys(filepath.Join(t.TempDir(), ".env")); !errors.Is(err, ErrEnvFile) {
		t.Fatalf("err = %v, want ErrEnvFile", err)
	}
}
