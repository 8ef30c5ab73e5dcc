package cli

import (
	"io"
	"os"

	"newsletter/pkg/config"
	"newsletter/pkg/logger"
	"newsletter/pkg/s3"

	"github.com/spf13/cobra"
)

// Uploader stores export snapshots in object storage.
type Uploader interface {
	UploadFile(key string, body io.Reader, contentType string) (string, error)
}

type Options struct {
	OutputWriter io.Writer
	// NewUploader is called lazily by export --s3.
	NewUploader func(cfg *config.Config) (Uploader, error)
}

type runtimeState struct {
	cfg             *config.Config
	log             *logger.Logger
	subscribersFile string
	writer          io.Writer
	newUploader     func(cfg *config.Config) (Uploader, error)
}

func DefaultOptions() Options {
	return Options{
		OutputWriter: os.Stdout,
		NewUploader: func(cfg *config.Config) (Uploader, error) {
			client, err := s3.NewClient(cfg)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	}
}

func NewRootCommand(opts Options) *cobra.Command {
	rt := &runtimeState{writer: opts.OutputWriter, newUploader: opts.NewUploader}

	root := &cobra.Command{
		Use:          "newsletterctl",
		Short:        "Newsletter admin CLI",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if rt.writer == nil {
				rt.writer = cmd.OutOrStdout()
			}
			if rt.log == nil {
				rt.log = logger.New()
			}
			// Skip config loading for commands that don't need it
			if cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if rt.subscribersFile != "" {
				cfg.SubscribersFile = rt.subscribersFile
			}
			rt.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&rt.subscribersFile, "file", "f", "", "Subscribers file (defaults to SUBSCRIBERS_FILE)")

	root.AddCommand(
		NewQRCommand(rt),
		NewExportCommand(rt),
		NewImportCommand(rt),
		NewVersionCommand(rt),
	)

	return root
}
