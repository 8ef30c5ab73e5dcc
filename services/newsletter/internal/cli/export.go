package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"newsletter/services/newsletter/internal/entity"
	"newsletter/services/newsletter/internal/repo/persistent"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportFormats = map[string]string{
	"json": "application/json",
	"csv":  "text/csv",
	"yaml": "application/yaml",
}

func NewExportCommand(rt *runtimeState) *cobra.Command {
	var (
		format string
		out    string
		toS3   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the subscriber list as json, csv or yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			contentType, ok := exportFormats[format]
			if !ok {
				return fmt.Errorf("unknown export format %q", format)
			}

			subscribers, err := persistent.NewSubscriberRepository(rt.cfg.SubscribersFile).ReadAll()
			if err != nil {
				return fmt.Errorf("failed to read subscribers: %w", err)
			}

			data, err := encodeSubscribers(subscribers, format)
			if err != nil {
				return err
			}

			if toS3 {
				uploader, err := rt.newUploader(rt.cfg)
				if err != nil {
					return fmt.Errorf("failed to create S3 client: %w", err)
				}
				key := fmt.Sprintf("subscribers/%d.%s", time.Now().UnixMilli(), format)
				url, err := uploader.UploadFile(key, bytes.NewReader(data), contentType)
				if err != nil {
					return err
				}
				rt.log.Info("Exported %d subscribers to %s", len(subscribers), url)
				_, _ = fmt.Fprintf(rt.writer, "Uploaded %d subscribers to %s\n", len(subscribers), url)
				return nil
			}

			if out == "" || out == "-" {
				_, err := rt.writer.Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			_, _ = fmt.Fprintf(rt.writer, "Exported %d subscribers to %s\n", len(subscribers), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Export format: json, csv, yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (defaults to stdout)")
	cmd.Flags().BoolVar(&toS3, "s3", false, "Upload the export to S3_BUCKET_NAME instead of writing it locally")

	return cmd
}

func encodeSubscribers(subscribers []entity.Subscriber, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(subscribers, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal to JSON: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(subscribers)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		return data, nil
	case "csv":
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write([]string{"email", "date", "timestamp"})
		for _, s := range subscribers {
			_ = w.Write([]string{s.Email, s.Date, strconv.FormatInt(s.Timestamp, 10)})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("failed to write CSV: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
