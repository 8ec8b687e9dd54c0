package prismicbackup

import (
	"fmt"
	"sync"
	"time"

	"github.com/hellenic-development/prismic-backup/pkg/prismic"
)

// Version is the current release of the prismic-backup module.
const Version = "0.3.0"

// Options configures a backup run. The configuration is read once and is
// immutable for the duration of the run.
type Options struct {
	Repository     string          // repository name, e.g. "my-repo" for my-repo.prismic.io
	AccessToken    string          // read-only token for the content API (optional for public repositories)
	PermanentToken string          // write-capable token for the custom types and asset APIs
	Routes         []prismic.Route // route resolution table, passed to document searches only
	OutputDir      string          // export root; empty = repository name
	Logger         Logger          // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result summarizes one backup run. Counts reflect what was fetched; a
// count of zero can mean either an empty category or a contained failure,
// both of which are already logged.
type Result struct {
	Repository   string
	Documents    int
	Tags         int
	CustomTypes  int
	SharedSlices int
	Assets       int // assets listed in the media library
	FailedAssets int // asset downloads recorded in the failure manifest
	Duration     time.Duration
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

// Run executes a full backup of the repository: metadata, documents, tags,
// custom types, shared slices and media assets, each exported concurrently
// and independently. A failing export is logged and skipped; it never
// affects its siblings, so Run itself only fails on invalid options.
func Run(opts Options) (*Result, error) {
	if opts.Repository == "" {
		return nil, fmt.Errorf("repository name is required")
	}
	if opts.OutputDir == "" {
		opts.OutputDir = opts.Repository
	}

	client := prismic.NewClient(opts.Repository, opts.AccessToken, opts.Routes)
	mgmt := prismic.NewManagementClient(opts.Repository, opts.PermanentToken)

	result := &Result{Repository: opts.Repository}
	start := time.Now()
	opts.logInfo("Backing up repository %s to %s...", opts.Repository, opts.OutputDir)

	// Each branch owns a distinct Result field, so no locking is needed.
	var wg sync.WaitGroup
	spawn := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	spawn(func() { exportRepository(&opts, client) })
	spawn(func() { result.Documents = len(exportDocuments(&opts, client)) })
	spawn(func() { result.Tags = len(exportTags(&opts, client)) })
	spawn(func() { result.CustomTypes = len(exportCustomTypes(&opts, mgmt)) })
	spawn(func() { result.SharedSlices = len(exportSharedSlices(&opts, mgmt)) })
	spawn(func() { result.Assets, result.FailedAssets = exportAssets(&opts, mgmt) })

	wg.Wait()

	result.Duration = time.Since(start)
	opts.logInfo("Backup finished in %.3fs", result.Duration.Seconds())

	return result, nil
}
