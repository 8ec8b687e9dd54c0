package main

import (
	"fmt"
	"os"
	"time"

	prismicbackup "github.com/hellenic-development/prismic-backup"
	"github.com/hellenic-development/prismic-backup/pkg/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = prismicbackup.Version

var (
	repository     string
	accessToken    string
	permanentToken string
	outputDir      string
	configFile     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prismic-backup",
		Short: "Back up a Prismic repository to local files",
		Long:  "A tool to back up documents, tags, custom types, shared slices, repository metadata and media assets from a Prismic repository via its APIs",
		Run:   run,
	}

	rootCmd.Flags().StringVarP(&repository, "repository", "r", "", "Repository name, e.g. \"my-repo\" for my-repo.prismic.io")
	rootCmd.Flags().StringVarP(&accessToken, "token", "t", "", "Read-only access token for the content API (optional for public repositories)")
	rootCmd.Flags().StringVarP(&permanentToken, "permanent-token", "p", "", "Permanent token for the custom types and asset APIs")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: the repository name)")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML configuration file (flags override file values)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("prismic-backup version %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🗄  Prismic Repository Backup")
	cyan.Println("=============================")
	cyan.Println()

	opts := prismicbackup.Options{
		Repository:     repository,
		AccessToken:    accessToken,
		PermanentToken: permanentToken,
		OutputDir:      outputDir,
		Logger:         &cliLogger{},
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if opts.Repository == "" {
			opts.Repository = cfg.Repository
		}
		if opts.AccessToken == "" {
			opts.AccessToken = cfg.AccessToken
		}
		if opts.PermanentToken == "" {
			opts.PermanentToken = cfg.PermanentToken
		}
		if opts.OutputDir == "" {
			opts.OutputDir = cfg.Output
		}
		opts.Routes = cfg.Routes
	}

	if opts.Repository == "" {
		red.Println("Error: a repository name is required (--repository or the config file)")
		os.Exit(1)
	}

	result, err := prismicbackup.Run(opts)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cyan.Println("\n📊 Backup Summary:")
	fmt.Printf("  • Documents: %d\n", result.Documents)
	fmt.Printf("  • Tags: %d\n", result.Tags)
	fmt.Printf("  • Custom Types: %d\n", result.CustomTypes)
	fmt.Printf("  • Shared Slices: %d\n", result.SharedSlices)
	fmt.Printf("  • Assets: %d\n", result.Assets)
	if result.FailedAssets > 0 {
		red.Printf("  • Failed Asset Downloads: %d\n", result.FailedAssets)
	}

	green.Printf("\n✨ Backed up %s in %.3fs\n\n", result.Repository, result.Duration.Seconds())
}

// cliLogger implements prismicbackup.Logger with timestamped, colored
// terminal output.
type cliLogger struct{}

func (l *cliLogger) printf(c *color.Color, format string, args ...any) {
	c.Printf("[%s] "+format+"\n", append([]any{time.Now().Format("15:04:05")}, args...)...)
}

func (l *cliLogger) Infof(format string, args ...any) {
	l.printf(color.New(color.FgCyan), format, args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	l.printf(color.New(color.FgYellow), "⚠ "+format, args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	l.printf(color.New(color.FgRed), "✗ "+format, args...)
}
