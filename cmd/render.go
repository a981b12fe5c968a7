package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/services"
	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/form"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	remoteURL     string
	remoteRetries int
)

var renderCmd = &cobra.Command{
	Use:   "render [file|url]",
	Short: "Valideer een Blueprint en print het Mermaid diagram",
	Long: `Reads a Blueprint from file, an http(s) URL, or stdin when file is "-" or omitted, validates
it and prints the Mermaid sequenceDiagram. With --remote the Blueprint is sent
to a running validation endpoint instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&remoteURL, "remote", "", "validation endpoint, e.g. http://localhost:8080/v1/validate")
	renderCmd.Flags().IntVar(&remoteRetries, "retries", 0, "retries for transport errors and 5xx answers (only with --remote)")
}

func runRender(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd.Context(), cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	var mermaid string
	if remoteURL != "" {
		mermaid, err = renderRemote(cmd.Context(), data)
	} else {
		mermaid, err = renderLocal(data)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), mermaid)
	return err
}

func readInput(ctx context.Context, stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(stdin)
	}
	if services.IsRemote(args[0]) {
		if ctx == nil {
			ctx = context.Background()
		}
		return services.FetchURL(ctx, args[0], cfg.MaxBodyBytes)
	}
	return os.ReadFile(args[0])
}

func renderLocal(data []byte) (string, error) {
	blueprints := services.NewBlueprintService(logger)
	bp, err := blueprints.Parse(data)
	if err != nil {
		return "", err
	}
	if err := blueprints.Validate(bp); err != nil {
		return "", fmt.Errorf("failed to validate Blueprint: %w", err)
	}
	return services.NewSequenceService(logger).Render(bp)
}

func renderRemote(ctx context.Context, data []byte) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	v := form.NewHTTPValidator(remoteURL, form.ClientOptions{RetryMax: remoteRetries})
	mermaid, err := v.Validate(ctx, string(data))
	if err != nil {
		var statusErr *form.StatusError
		if errors.As(err, &statusErr) {
			logger.Debug("validation endpoint rejected blueprint", zap.Int("status", statusErr.Code))
			return "", fmt.Errorf("%d: %s", statusErr.Code, statusErr.Body)
		}
		return "", err
	}
	return mermaid, nil
}
