// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pageforge/internal/cache"
	"github.com/pdiddy/pageforge/internal/extract"
	"github.com/pdiddy/pageforge/internal/normalize"
	"github.com/pdiddy/pageforge/internal/render"
	"github.com/pdiddy/pageforge/internal/secrets"
	"github.com/pdiddy/pageforge/internal/vision"
	"github.com/pdiddy/pageforge/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <page1> [page2]",
	Short: "Analyze page images and emit formatted HTML",
	Long: `Convert sends one or two page images to the vision model, recovers the
structured formatting description from its response, and renders HTML.
Page order matters: page 1 must come first. Use --invert to swap two
pages supplied in the wrong order.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("output", "", "HTML output path (default: stdout)")
	convertCmd.Flags().String("model", "", "vision model identifier (default: gpt-4o)")
	convertCmd.Flags().String("api-key", "", "vision API key (default: .secrets/openai-api-key or PAGEFORGE_API_KEY)")
	convertCmd.Flags().Bool("invert", false, "swap the order of two pages")
	convertCmd.Flags().String("dump-document", "", "write the canonical document as YAML to this path")
	convertCmd.Flags().Bool("no-cache", false, "bypass the response cache")
	convertCmd.Flags().String("cache-dir", "", "response cache directory (default: .pageforge)")
	convertCmd.Flags().Duration("timeout", 0, "HTTP timeout for the vision API call (default: 120s)")

	rootCmd.AddCommand(convertCmd)
}

// convertConfig assembles the run configuration from flags, config file,
// environment, and loaded secrets, in that precedence order.
func convertConfig(cmd *cobra.Command) types.ConvertConfig {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("vision.model")
	}
	if model == "" {
		model = "gpt-4o"
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	apiKey = secretDefault(secrets.APIKeyName, apiKey)
	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("vision.timeout")
	}
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	if cacheDir == "" {
		cacheDir = viper.GetString("cache.dir")
	}
	if cacheDir == "" {
		cacheDir = ".pageforge"
	}
	noCache, _ := cmd.Flags().GetBool("no-cache")

	return types.ConvertConfig{
		Vision: types.VisionConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: "pageforge/" + version,
			},
			Model:      model,
			APIKey:     apiKey,
			BaseURL:    viper.GetString("vision.base_url"),
			MaxRetries: viper.GetInt("vision.max_retries"),
		},
		Cache: types.CacheConfig{
			Dir:      cacheDir,
			Disabled: noCache || viper.GetBool("cache.disabled"),
		},
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := convertConfig(cmd)
	if cfg.Vision.APIKey == "" {
		return fmt.Errorf("no API key: set .secrets/%s, PAGEFORGE_API_KEY, or --api-key", secrets.APIKeyName)
	}

	paths := args
	if invert, _ := cmd.Flags().GetBool("invert"); invert {
		if len(paths) != 2 {
			return fmt.Errorf("--invert requires two pages")
		}
		paths = []string{paths[1], paths[0]}
	}

	pages, err := vision.LoadPages(paths)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	backend := &vision.OpenAIBackend{Config: cfg.Vision}

	raw, err := analyzeCached(ctx, backend, cfg, pages)
	if err != nil {
		return err
	}

	html, doc, err := process(raw)
	if err != nil {
		return err
	}

	if dumpPath, _ := cmd.Flags().GetString("dump-document"); dumpPath != "" {
		if err := writeDocumentYAML(dumpPath, doc); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Document written: %s\n", dumpPath)
	}

	return writeHTML(cmd, html)
}

// analyzeCached returns the raw model response for pages, consulting the
// response cache unless it is disabled.
func analyzeCached(ctx context.Context, backend vision.Backend, cfg types.ConvertConfig, pages []vision.Page) (string, error) {
	if cfg.Cache.Disabled {
		return vision.AnalyzeWithRetry(ctx, backend, pages, cfg.Vision.MaxRetries)
	}

	store, err := cache.New(cfg.Cache.Dir)
	if err != nil {
		return "", err
	}
	defer store.Close()

	key := cache.Key(cfg.Vision.Model, vision.PromptVersion, pages)
	if raw, ok, err := store.Get(key); err != nil {
		return "", err
	} else if ok {
		fmt.Fprintln(os.Stderr, "Using cached response")
		return raw, nil
	}

	raw, err := vision.AnalyzeWithRetry(ctx, backend, pages, cfg.Vision.MaxRetries)
	if err != nil {
		return "", err
	}

	if err := store.Put(key, cfg.Vision.Model, raw); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not cache response: %v\n", err)
	}
	return raw, nil
}

// process runs the pure pipeline: extract JSON, normalize, render HTML.
// Extraction failures are terminal for the request; the malformed
// response text is surfaced for diagnosis.
func process(raw string) (string, types.Document, error) {
	parsed, err := extract.ExtractJSON(raw)
	if err != nil {
		var malformed *extract.MalformedJSONError
		if errors.As(err, &malformed) {
			fmt.Fprintf(os.Stderr, "Offending response text:\n%s\n", malformed.Raw)
		}
		return "", types.Document{}, err
	}

	doc := normalize.Normalize(parsed)
	return render.HTML(doc), doc, nil
}

func writeDocumentYAML(path string, doc types.Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing document %s: %w", path, err)
	}
	return nil
}

func writeHTML(cmd *cobra.Command, html string) error {
	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		fmt.Fprintln(cmd.OutOrStdout(), html)
		return nil
	}
	if err := os.WriteFile(out, []byte(html+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing HTML %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "HTML written: %s\n", out)
	return nil
}
