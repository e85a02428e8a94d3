package build

import (
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"
)

// Addresses cached dependency layers on disk.
//
// A cache entry is an OCI archive of the build container exported right
// after dependency installation: the base image plus the installed
// packages, nothing else. Entries are keyed by content digest, so a
// rebuild with the same base, workdir, install command, and manifest bytes
// hits the same entry regardless of how the source tree changed.
type layerCache struct {
	dir string
}

// Computes the cache key for a dependency layer.
//
// The platform participates because the installed wheels differ per
// architecture. The source tree and env file deliberately do not.
func cacheKey(base, workdir, installCmd, platform string, manifestData []byte) digest.Digest {
	h := digest.SHA256.Digester()
	for _, part := range []string{base, workdir, installCmd, platform} {
		h.Hash().Write([]byte(part))
		h.Hash().Write([]byte{0})
	}
	h.Hash().Write(manifestData)
	return h.Digest()
}

// Returns the archive path for a key.
func (lc *layerCache) path(key digest.Digest) string {
	return filepath.Join(lc.dir, key.Encoded()+".tar")
}

// Reports whether a cached archive exists for the key, returning its path.
func (lc *layerCache) lookup(key digest.Digest) (string, bool) {
	path := lc.path(key)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// Ensures the cache directory exists and returns the path an entry for
// the key should be exported to.
func (lc *layerCache) prepare(key digest.Digest) (string, error) {
	if err := os.MkdirAll(lc.dir, 0755); err != nil {
		return "", err
	}
	return lc.path(key), nil
}
