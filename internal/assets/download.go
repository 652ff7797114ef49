package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; rv:109.0) Gecko/20100101 Firefox/115.0"

var httpClient = &http.Client{Timeout: 60 * time.Second}

// Download fetches an image URL into destDir and returns the saved path. A file already
// present under the derived name is reused, so restarts do not refetch.
func Download(ctx context.Context, url, destDir string) (string, error) {
	name := sanitizeFilename(filenameFromURL(url))
	if ext := imageExtension(url); ext != "" && !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	saved := filepath.Join(destDir, name)
	if _, err := os.Stat(saved); err == nil {
		return saved, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}
	if !strings.HasPrefix(strings.ToLower(resp.Header.Get("Content-Type")), "image/") && imageExtension(url) == "" {
		return "", fmt.Errorf("download: %s is not an image", url)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	out, err := os.Create(saved)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = os.Remove(saved)
		return "", fmt.Errorf("download: %w", err)
	}
	return saved, nil
}

func imageExtension(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".tga":
		return ext
	}
	return ""
}

func filenameFromURL(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	return filepath.Base(path)
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	if name == "" || name == "." || name == "/" {
		return "texture"
	}
	name = safeNameRe.ReplaceAllString(name, "_")
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
