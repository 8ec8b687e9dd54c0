// Package prismicbackup performs a one-shot export of a Prismic repository
// to local files: documents, tags, custom types, shared slices, repository
// metadata and the binaries of the media library.
//
// The root package is the library surface; cmd/prismic-backup wraps it in a
// command-line tool. Programs that want scheduled or scripted backups can
// call [Run] directly with the same options the CLI builds from its flags.
//
// # Import
//
// Note that the package name is prismicbackup, not the hyphenated last
// element of the module path:
//
//	import "github.com/hellenic-development/prismic-backup" // package prismicbackup
//
// # Quick start
//
//	result, err := prismicbackup.Run(prismicbackup.Options{
//	    Repository:     "my-repo",
//	    AccessToken:    os.Getenv("PRISMIC_ACCESS_TOKEN"),
//	    PermanentToken: os.Getenv("PRISMIC_PERMANENT_TOKEN"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("backed up %d documents in %s\n", result.Documents, result.Duration)
//
// # Logging
//
// Progress, empty-category warnings and contained failures are reported
// through [Options.Logger]. Leave it nil for a silent run, or supply any
// value with Infof, Warnf and Errorf methods — the CLI's implementation
// prints timestamped, color-coded lines, while a test might just collect
// the messages.
//
// # Output layout
//
// Everything is written under a directory named after the repository (or
// [Options.OutputDir]): repository.json, documents.json plus one
// documents/<type>.json per document type, tags.txt, custom-types.json,
// shared-slices.json, assets.json, the asset binaries under assets/, and
// failed-assets.json listing every asset whose download failed (written
// only when at least one did).
//
// # Failure containment
//
// Every export is independent. A category that cannot be fetched or
// written is logged and skipped; the remaining exports still run, and a
// single failed asset download never aborts the asset batch.
package prismicbackup
