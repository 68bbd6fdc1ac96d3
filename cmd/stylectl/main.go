package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"styledna/internal/domain"
	"styledna/internal/imaging"
	"styledna/internal/infra"
	"styledna/internal/providers/gemini"
	"styledna/internal/providers/image"
	"styledna/internal/storage"
	"styledna/internal/studio"
)

var version = "dev"

type App struct {
	Out         io.Writer
	Err         io.Writer
	GetEnv      func(string) string
	NewProvider func(ctx context.Context, apiKey string, logger *infra.Logger) (image.Provider, error)
	Now         func() time.Time
}

func DefaultApp() *App {
	app := &App{
		Out:    os.Stdout,
		Err:    os.Stderr,
		GetEnv: os.Getenv,
		Now:    time.Now,
	}
	app.NewProvider = func(ctx context.Context, apiKey string, logger *infra.Logger) (image.Provider, error) {
		return gemini.NewClient(ctx, providerOptions(app.GetEnv, apiKey, logger))
	}
	return app
}

// providerOptions reads model overrides from the same environment the
// commands read the API key from.
func providerOptions(getEnv func(string) string, apiKey string, logger *infra.Logger) gemini.Options {
	return gemini.Options{
		APIKey:        apiKey,
		BaseURL:       getEnv("GEMINI_BASE_URL"),
		AnalysisModel: getEnv("GEMINI_ANALYSIS_MODEL"),
		ImageModel:    getEnv("GEMINI_IMAGE_MODEL"),
		ImagenModel:   getEnv("IMAGEN_MODEL"),
		Logger:        logger,
	}
}

func main() {
	_ = godotenv.Load()
	if err := newRootCmd(DefaultApp()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stylectl",
		Short:         "Operate the Style DNA pipeline from the command line",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(app.Out)
	cmd.SetErr(app.Err)
	cmd.AddCommand(newPromptCmd(app), newNormalizeCmd(app), newGenerateCmd(app))
	return cmd
}

// stateFlags describe the workspace a command operates on.
type stateFlags struct {
	statePath string
	subject   string
	model     string
	aspect    string
	images    []string
}

func (f *stateFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.statePath, "state", "", "workspace JSON file (\"-\" reads stdin)")
	cmd.Flags().StringVarP(&f.subject, "subject", "p", "", "subject prompt, overrides the state file")
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "model (flash, imagen), overrides the state file")
	cmd.Flags().StringVarP(&f.aspect, "aspect", "a", "", "aspect ratio (1:1, 3:4, 4:3, 9:16, 16:9)")
	cmd.Flags().StringArrayVarP(&f.images, "image", "i", nil, "style reference image file, repeatable")
}

func (f *stateFlags) load(stdin io.Reader) (domain.InputState, error) {
	st := domain.DefaultInputState()
	if f.statePath != "" {
		var data []byte
		var err error
		if f.statePath == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(f.statePath)
		}
		if err != nil {
			return st, fmt.Errorf("read state: %w", err)
		}
		if err := json.Unmarshal(data, &st); err != nil {
			return st, fmt.Errorf("parse state: %w", err)
		}
	}
	if f.subject != "" {
		st.SubjectPrompt = f.subject
	}
	if f.model != "" {
		st.Model = domain.Model(f.model)
	}
	if f.aspect != "" {
		st.AspectRatio = domain.AspectRatio(f.aspect)
	}
	model, err := domain.ParseModel(string(st.Model))
	if err != nil {
		return st, err
	}
	aspect, err := domain.ParseAspectRatio(string(st.AspectRatio))
	if err != nil {
		return st, err
	}
	st.Model, st.AspectRatio = model, aspect
	for _, path := range f.images {
		asset, err := readAsset(path)
		if err != nil {
			return st, err
		}
		st = st.WithImagesAdded(asset)
	}
	return st, nil
}

func readAsset(path string) (domain.ImageAsset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("read image: %w", err)
	}
	return imaging.Sniff(domain.NewImageAsset(filepath.Base(path), "", data))
}

func newPromptCmd(app *App) *cobra.Command {
	var (
		flags  stateFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt the next generation would send",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := flags.load(cmd.InOrStdin())
			if err != nil {
				return err
			}
			preview := studio.PreviewPrompt(st)
			if asJSON {
				enc := json.NewEncoder(app.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(preview)
			}
			fmt.Fprintln(app.Out, preview.Prompt)
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the sections and keywords as JSON")
	return cmd
}

func newNormalizeCmd(app *App) *cobra.Command {
	var (
		maxDim  int
		quality int
	)
	cmd := &cobra.Command{
		Use:   "normalize <input> <output>",
		Short: "Downscale an image the way reference images are prepared",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			asset, err := readAsset(args[0])
			if err != nil {
				return err
			}
			out, err := imaging.NewNormalizer(maxDim, quality).Normalize(asset)
			if err != nil {
				return err
			}
			data, err := out.Bytes()
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], data, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			w, h, err := imaging.Dimensions(out)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Saved: %s (%dx%d, %s)\n", args[1], w, h, out.MIMEType)
			return nil
		},
	}
	cmd.Flags().IntVar(&maxDim, "max", imaging.DefaultMaxDimension, "longest side in pixels")
	cmd.Flags().IntVar(&quality, "quality", imaging.DefaultJPEGQuality, "JPEG quality (1-100)")
	return cmd
}

func newGenerateCmd(app *App) *cobra.Command {
	var (
		flags        stateFlags
		apiKey       string
		exportDir    string
		count        int
		waitFeedback bool
		verbose      bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run one generation and export the images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if apiKey == "" {
				apiKey = app.GetEnv("GEMINI_API_KEY")
			}
			if apiKey == "" {
				return fmt.Errorf("API key required: set GEMINI_API_KEY or use --api-key")
			}
			st, err := flags.load(cmd.InOrStdin())
			if err != nil {
				return err
			}

			logger := zerolog.New(io.Discard)
			if verbose {
				logger = zerolog.New(zerolog.ConsoleWriter{Out: app.Err}).With().Timestamp().Logger()
			}
			prov, err := app.NewProvider(ctx, apiKey, &logger)
			if err != nil {
				return fmt.Errorf("failed to create provider: %w", err)
			}
			ws := studio.New(studio.Options{Provider: prov, Count: count, Logger: &logger, Now: app.Now})
			if _, err := ws.ReplaceState(st); err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "Generating with %s...\n", st.Model)
			out, err := ws.Generate(ctx)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}
			for _, c := range out.Calls {
				if !c.OK {
					fmt.Fprintf(app.Out, "Call %d failed: %s\n", c.Index+1, c.Reason)
				}
			}

			store, err := storage.NewFileStore(exportDir)
			if err != nil {
				return err
			}
			assets, err := studio.ExportAssets(out.Session.Images)
			if err != nil {
				return err
			}
			files := make([]storage.File, 0, len(assets))
			for _, a := range assets {
				data, err := a.Bytes()
				if err != nil {
					return err
				}
				files = append(files, storage.File{Name: a.Name, Data: data})
			}
			keys, err := store.WriteBatch(ctx, out.Session.ID, files)
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintf(app.Out, "Saved: %s\n", filepath.Join(store.BasePath(), filepath.FromSlash(k)))
			}

			if waitFeedback && out.Feedback != nil {
				fmt.Fprintln(app.Out, "Waiting for suggestions...")
				res := <-out.Feedback
				switch {
				case res.Err != nil:
					fmt.Fprintf(app.Out, "No suggestions: %v\n", res.Err)
				case res.Suggestions != nil:
					fmt.Fprintf(app.Out, "Suggested positive prompt: %s\n", res.Suggestions.PositivePrompt)
					fmt.Fprintf(app.Out, "Suggested negative prompt: %s\n", res.Suggestions.NegativePrompt)
					fmt.Fprintf(app.Out, "Suggested style description:\n%s\n", res.Suggestions.StyleDescription)
				}
			}
			fmt.Fprintln(app.Out, "Done!")
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (defaults to GEMINI_API_KEY)")
	cmd.Flags().StringVarP(&exportDir, "export", "o", "./exports", "directory receiving <session>/generated_image_<n>.jpeg")
	cmd.Flags().IntVarP(&count, "count", "n", studio.DefaultGenerationCount, "calls per reference-guided generation")
	cmd.Flags().BoolVar(&waitFeedback, "suggestions", false, "wait for and print the critique suggestions")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline events to stderr")
	return cmd
}
