package manifest

import (
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"
)

// Returns the sorted variable names declared in an environment file.
//
// Only the names are returned. The builder never interprets or logs the
// values; the name list exists so the embed warning can state what is
// about to be baked into an image layer.
func EnvFileKeys(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnvFile, err)
	}

	vars, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEnvFile, path, err)
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys, nil
}
