package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"newsletter/services/newsletter/internal/repo/persistent"
	"newsletter/services/newsletter/internal/usecase"

	"github.com/spf13/cobra"
)

type importResult struct {
	added      int
	duplicates int
	rejected   []string
}

func NewImportCommand(rt *runtimeState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Subscribe every email in FILE (one per line, - for stdin)",
		Long: "Runs each address through the same validation and de-duplication as the HTTP API. " +
			"Blank lines and lines starting with # are ignored. No welcome emails are sent.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open import file: %w", err)
				}
				defer f.Close()
				in = f
			}

			repo := persistent.NewSubscriberRepository(rt.cfg.SubscribersFile)
			if err := repo.Init(); err != nil {
				return err
			}
			uc := usecase.NewSubscriptionUseCase(repo, nil, rt.cfg.StorageLabel(), rt.log)

			res, err := importEmails(uc, in)
			if err != nil {
				return err
			}

			for _, line := range res.rejected {
				_, _ = fmt.Fprintf(rt.writer, "rejected: %s\n", line)
			}
			_, _ = fmt.Fprintf(rt.writer, "Imported %d, skipped %d duplicates, rejected %d\n",
				res.added, res.duplicates, len(res.rejected))
			return nil
		},
	}

	return cmd
}

func importEmails(uc usecase.SubscriptionUseCase, in io.Reader) (importResult, error) {
	var res importResult

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		_, err := uc.Subscribe(line)
		switch {
		case err == nil:
			res.added++
		case errors.Is(err, usecase.ErrAlreadySubscribed):
			res.duplicates++
		case usecase.IsValidationError(err):
			res.rejected = append(res.rejected, line)
		default:
			return res, err
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("failed to read import file: %w", err)
	}
	return res, nil
}
