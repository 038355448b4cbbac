package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
)

var (
	downloadOutput  string
	downloadURLOnly bool
)

var downloadCmd = &cobra.Command{
	Use:   "download [owner/repo] [path]",
	Short: "Download one EPUB file from a repository",
	Long: `Downloads a file from a GitHub repository by its path, as printed by
"bookfetch search". Without --output the file is saved to the configured
download directory under a sanitised name.`,
	Args: cobra.ExactArgs(2),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "destination file path")
	downloadCmd.Flags().BoolVar(&downloadURLOnly, "url", false, "print the download link instead of downloading")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if appConfig == nil || appConfig.Downloads == nil {
		return errNotConfigured
	}

	repo, err := domain.ParseRepositoryRef(args[0])
	if err != nil {
		return err
	}
	filePath := strings.Trim(strings.TrimSpace(args[1]), "/")
	if filePath == "" {
		return fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	candidate := domain.NewCandidateFile(repo, filePath)

	if downloadURLOnly {
		cmd.Println(appConfig.Downloads.ResolveURL(candidate))
		return nil
	}

	dest := downloadOutput
	if dest == "" {
		dest = appConfig.Downloads.DefaultDestination(candidate)
	}

	saved, err := appConfig.Downloads.Download(cmd.Context(), candidate, dest)
	if err != nil {
		return err
	}

	cmd.Printf("Saved to %s\n", saved)
	return nil
}
