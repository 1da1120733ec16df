// Package casefile holds the case-generation commands for the CLI.
package casefile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/myrjola/caseclosed/internal/agent"
	"github.com/myrjola/caseclosed/internal/casegen"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "casefile",
	Title: "Case files",
}

var generateBackend string

func init() {
	Generate.Flags().StringVar(&generateBackend, "backend", "openai",
		"generation backend: openai, gemini or fake")
}

var Generate = &cobra.Command{
	Use:     "generate",
	GroupID: "casefile",
	Short:   "Generate a case",
	Long:    "Generates a murder-mystery case and prints it as JSON",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		pipeline, err := newPipeline(ctx, generateBackend)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Generate error: %v\n", err)
			return
		}

		generated, err := casegen.Generate(ctx, pipeline)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Generate error: %v\n", err)
			return
		}
		for _, warning := range generated.Warnings {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
		}

		out, err := json.MarshalIndent(generated.Case, "", "  ")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Generate error: %v\n", err)
			return
		}
		fmt.Println(string(out))
	},
}

func newPipeline(ctx context.Context, backend string) (agent.Pipeline, error) {
	switch backend {
	case "gemini":
		return agent.NewGeminiPipeline(ctx, os.Getenv("GEMINI_API_KEY"))
	case "openai":
		return agent.NewOpenAIPipeline(os.Getenv("OPENAI_API_KEY")), nil
	case "fake":
		return agent.NewFakePipeline(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}
