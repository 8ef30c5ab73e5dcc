package cli

import (
	"encoding/json"
	"fmt"

	"newsletter/pkg/version"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewVersionCommand(rt *runtimeState) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show newsletterctl version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetBuildInfo()

			switch outputFormat {
			case "json":
				encoder := json.NewEncoder(rt.writer)
				encoder.SetIndent("", "  ")
				return encoder.Encode(info)
			case "yaml":
				data, err := yaml.Marshal(info)
				if err != nil {
					return fmt.Errorf("failed to marshal to YAML: %w", err)
				}
				_, _ = fmt.Fprint(rt.writer, string(data))
				return nil
			case "":
				_, _ = fmt.Fprintf(rt.writer, "newsletterctl %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildDate)
				return nil
			default:
				return fmt.Errorf("unknown output format %q", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: json, yaml")

	return cmd
}
