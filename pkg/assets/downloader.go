// Package assets downloads the binaries of a media library listing to a
// local directory, bounding concurrent downloads and tolerating individual
// failures without aborting the batch.
package assets

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/hellenic-development/prismic-backup/pkg/prismic"
)

// batchSize is the number of assets downloaded concurrently. The list is
// processed in contiguous chunks of this size, each chunk awaited fully
// before the next starts, which caps in-flight downloads.
const batchSize = 10

// Logger receives per-asset progress messages. A nil Logger means silent
// operation.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Options configures a download run.
type Options struct {
	// Dir is the destination directory. Created lazily before the first
	// file is written.
	Dir string

	// Logger is an optional progress logger.
	Logger Logger

	// HTTPClient is the client used for the unauthenticated asset GETs.
	// nil means http.DefaultClient. Asset URLs are presumed pre-signed or
	// public, so no credentials are attached.
	HTTPClient *http.Client
}

// Result holds the outcome of one download run. Downloaded plus the length
// of Failed always equals the number of assets submitted.
type Result struct {
	Downloaded int
	Failed     []prismic.Asset // descriptors retained verbatim, in failure order
}

// Download materializes every asset of the list as a file under opts.Dir.
// Assets are processed in chunks of batchSize; within a chunk all
// downloads run concurrently. A failed asset is recorded in the result and
// logged, and never aborts the batch. Existing files of the same name are
// overwritten; there is no skip-existing optimization.
func Download(list []prismic.Asset, opts Options) *Result {
	result := &Result{}
	if len(list) == 0 {
		return result
	}

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	var mu sync.Mutex
	for i := 0; i < len(list); i += batchSize {
		end := i + batchSize
		if end > len(list) {
			end = len(list)
		}

		var wg sync.WaitGroup
		for _, asset := range list[i:end] {
			wg.Add(1)
			go func(asset prismic.Asset) {
				defer wg.Done()

				if err := downloadAsset(client, asset, opts.Dir); err != nil {
					mu.Lock()
					result.Failed = append(result.Failed, asset)
					mu.Unlock()
					logErrorf(opts.Logger, "Failed to download %s: %v", asset.Filename, err)
					return
				}

				mu.Lock()
				result.Downloaded++
				mu.Unlock()
				logInfof(opts.Logger, "Downloaded %s", asset.Filename)
			}(asset)
		}
		wg.Wait()
	}

	return result
}

// downloadAsset fetches one asset and writes it to dir under its derived
// filename.
func downloadAsset(client *http.Client, asset prismic.Asset, dir string) error {
	canonical, err := canonicalURL(asset.URL)
	if err != nil {
		return err
	}

	resp, err := client.Get(canonical)
	if err != nil {
		return fmt.Errorf("HTTP GET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading asset", resp.StatusCode)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	destPath := filepath.Join(dir, FileName(asset))
	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %q: %w", destPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("failed to write file %q: %w", destPath, err)
	}

	return nil
}

// FileName derives the on-disk name for an asset: the percent-decoded last
// path segment of its URL with query parameters stripped. The descriptor's
// own display filename is used only when the URL has no usable segment.
func FileName(asset prismic.Asset) string {
	u, err := url.Parse(asset.URL)
	if err == nil {
		if name := path.Base(u.Path); name != "" && name != "." && name != "/" {
			return name
		}
	}
	return asset.Filename
}

// canonicalURL strips query parameters and fragments from an asset URL.
func canonicalURL(rawurl string) (string, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return "", fmt.Errorf("invalid asset URL %q: %w", rawurl, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

func logInfof(l Logger, format string, args ...any) {
	if l != nil {
		l.Infof(format, args...)
	}
}

func logErrorf(l Logger, format string, args ...any) {
	if l != nil {
		l.Errorf(format, args...)
	}
}
