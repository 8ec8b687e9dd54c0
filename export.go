package prismicbackup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hellenic-development/prismic-backup/pkg/assets"
	"github.com/hellenic-development/prismic-backup/pkg/prismic"
)

// Export artifact names under the export root.
const (
	repositoryFile   = "repository.json"
	documentsFile    = "documents.json"
	documentsDir     = "documents"
	tagsFile         = "tags.txt"
	customTypesFile  = "custom-types.json"
	sharedSlicesFile = "shared-slices.json"
	assetsFile       = "assets.json"
	assetsDir        = "assets"
	failedAssetsFile = "failed-assets.json"
)

// exportList runs one fetch-and-persist step: invoke fetch once, skip with
// a warning when there is nothing to export (a normal outcome, not an
// error), otherwise write the items as JSON under the export root and
// return them for reuse. Fetch and write failures are logged and contained
// to this one export; sibling exporters are never affected.
func exportList[T any](opts *Options, label, name string, fetch func() ([]T, error)) []T {
	items, err := fetch()
	if err != nil {
		opts.logError("Fetching %s failed: %v", label, err)
		return nil
	}
	if len(items) == 0 {
		opts.logWarn("No %s to export", label)
		return nil
	}

	if err := writeJSON(opts.OutputDir, name, items); err != nil {
		opts.logError("Writing %s failed: %v", label, err)
		return nil
	}

	opts.logInfo("Exported %d %s to %s", len(items), label, filepath.Join(opts.OutputDir, name))
	return items
}

// exportRepository persists the raw repository metadata.
func exportRepository(opts *Options, client *prismic.Client) *prismic.Repository {
	repo, err := client.GetRepository()
	if err != nil {
		opts.logError("Fetching repository metadata failed: %v", err)
		return nil
	}

	if err := writeJSON(opts.OutputDir, repositoryFile, repo); err != nil {
		opts.logError("Writing repository metadata failed: %v", err)
		return nil
	}

	opts.logInfo("Exported repository metadata to %s", filepath.Join(opts.OutputDir, repositoryFile))
	return repo
}

// exportDocuments persists the combined document list, then splits it by
// document type into one file per type under the documents subdirectory.
// The split only runs after the combined file was written successfully.
func exportDocuments(opts *Options, client *prismic.Client) []prismic.Document {
	docs := exportList(opts, "documents", documentsFile, client.GetDocuments)
	if len(docs) == 0 {
		return docs
	}

	dir := filepath.Join(opts.OutputDir, documentsDir)
	var wg sync.WaitGroup
	for typ, group := range groupByType(docs) {
		wg.Add(1)
		go func(typ string, group []prismic.Document) {
			defer wg.Done()
			if err := writeJSON(dir, typ+".json", group); err != nil {
				opts.logError("Writing %s documents failed: %v", typ, err)
				return
			}
			opts.logInfo("Exported %d %s document(s)", len(group), typ)
		}(typ, group)
	}
	wg.Wait()

	return docs
}

// groupByType maps each document type to its documents, preserving the
// input order within each group.
func groupByType(docs []prismic.Document) map[string][]prismic.Document {
	byType := make(map[string][]prismic.Document)
	for _, doc := range docs {
		typ := doc.Type
		if typ == "" {
			typ = "untyped"
		}
		byType[typ] = append(byType[typ], doc)
	}
	return byType
}

// exportTags persists the tag list as newline-joined text.
func exportTags(opts *Options, client *prismic.Client) []string {
	tags, err := client.GetTags()
	if err != nil {
		opts.logError("Fetching tags failed: %v", err)
		return nil
	}
	if len(tags) == 0 {
		opts.logWarn("No tags to export")
		return nil
	}

	if err := writeText(opts.OutputDir, tagsFile, tags); err != nil {
		opts.logError("Writing tags failed: %v", err)
		return nil
	}

	opts.logInfo("Exported %d tag(s) to %s", len(tags), filepath.Join(opts.OutputDir, tagsFile))
	return tags
}

func exportCustomTypes(opts *Options, mgmt *prismic.ManagementClient) []json.RawMessage {
	return exportList(opts, "custom types", customTypesFile, mgmt.GetCustomTypes)
}

func exportSharedSlices(opts *Options, mgmt *prismic.ManagementClient) []json.RawMessage {
	return exportList(opts, "shared slices", sharedSlicesFile, mgmt.GetSharedSlices)
}

// assetLister produces the complete asset listing of the media library.
// Satisfied by *prismic.ManagementClient.
type assetLister interface {
	ListAssets() ([]prismic.Asset, error)
}

// exportAssets runs the asset pipeline: list the media library, persist the
// listing, download every binary, and write the failure manifest when any
// download failed. Returns the listed and failed counts.
func exportAssets(opts *Options, lister assetLister) (listed, failed int) {
	list := exportList(opts, "assets", assetsFile, lister.ListAssets)
	if len(list) == 0 {
		return 0, 0
	}

	result := assets.Download(list, assets.Options{
		Dir:    filepath.Join(opts.OutputDir, assetsDir),
		Logger: opts.Logger,
	})

	if len(result.Failed) > 0 {
		if err := writeJSON(opts.OutputDir, failedAssetsFile, result.Failed); err != nil {
			opts.logError("Writing failed-asset manifest failed: %v", err)
		} else {
			opts.logWarn("%d asset download(s) failed, see %s", len(result.Failed), filepath.Join(opts.OutputDir, failedAssetsFile))
		}
	}
	opts.logInfo("Downloaded %d of %d asset(s)", result.Downloaded, len(list))

	return len(list), len(result.Failed)
}

// writeJSON writes v as indented JSON to <dir>/<name>, creating dir first.
// Directory creation is lazy and idempotent; racing exporters are safe.
func writeJSON(dir, name string, v any) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	return os.WriteFile(filepath.Join(dir, name), data, 0644)
}

// writeText writes lines as newline-joined text to <dir>/<name>.
func writeText(dir, name string, lines []string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	return os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")+"\n"), 0644)
}
