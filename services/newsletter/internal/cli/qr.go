package cli

import (
	"fmt"

	"newsletter/pkg/qr"

	"github.com/spf13/cobra"
)

func NewQRCommand(rt *runtimeState) *cobra.Command {
	var (
		url  string
		out  string
		size int
	)

	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Generate a QR code PNG pointing at the landing page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if url == "" {
				url = rt.cfg.LandingPageURL
			}

			opts := qr.DefaultOptions()
			opts.Size = size
			if err := qr.WriteFile(url, out, opts); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(rt.writer, "QR code saved to %s\n", out)
			_, _ = fmt.Fprintf(rt.writer, "URL: %s\n", url)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "URL to encode (defaults to LANDING_PAGE_URL)")
	cmd.Flags().StringVar(&out, "out", "qr-code.png", "Output PNG path")
	cmd.Flags().IntVar(&size, "size", qr.DefaultSize, "Image width and height in pixels")

	return cmd
}
