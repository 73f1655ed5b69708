package middleware

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"io/fs"
	"log"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
)

var (
	assetVersions   = map[string]string{}
	assetVersionsMu sync.RWMutex
)

// InitAssetVersions hashes every CSS and JS file in fsys for cache busting
func InitAssetVersions(fsys fs.FS) {
	versions := map[string]string{}
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if strings.HasSuffix(path, ".css") || strings.HasSuffix(path, ".js") {
			if v := computeFileHash(fsys, path); v != "" {
				versions[path] = v
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("[WARNING] Failed to walk static assets: %v", err)
	}

	assetVersionsMu.Lock()
	assetVersions = versions
	assetVersionsMu.Unlock()
	log.Printf("[INFO] Asset versions initialized: %d files", len(versions))
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(fsys fs.FS, path string) string {
	file, err := fsys.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// AssetVersion returns the content hash of a static file, "1" when unknown
func AssetVersion(path string) string {
	assetVersionsMu.RLock()
	defer assetVersionsMu.RUnlock()
	if v, ok := assetVersions[strings.TrimPrefix(path, "/")]; ok {
		return v
	}
	return "1"
}

// AssetURL returns /static/<path>?v=<hash>
func AssetURL(path string) string {
	path = strings.TrimPrefix(path, "/")
	return "/static/" + path + "?v=" + AssetVersion(path)
}

// StaticCacheControl lets browsers cache versioned assets for a year
func StaticCacheControl() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.QueryParam("v") != "" {
				c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
			} else {
				c.Response().Header().Set("Cache-Control", "public, max-age=3600")
			}
			return next(c)
		}
	}
}
