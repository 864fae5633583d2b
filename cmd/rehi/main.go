// Command rehi is the local-first read-later client: it keeps articles and
// highlights in a local SQLite database, serves the reader UI over HTTP,
// and mirrors highlight mutations to the remote sync API when one is
// configured.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tuyetlangsa/rehi-go/internal/api"
	"github.com/tuyetlangsa/rehi-go/internal/config"
	"github.com/tuyetlangsa/rehi-go/internal/highlight"
	"github.com/tuyetlangsa/rehi-go/internal/logging"
	"github.com/tuyetlangsa/rehi-go/internal/remote"
	"github.com/tuyetlangsa/rehi-go/internal/selection"
	"github.com/tuyetlangsa/rehi-go/internal/services"
	"github.com/tuyetlangsa/rehi-go/internal/storage"
)

var (
	configPath string
	dbPath     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "rehi",
		Short:         "Local-first read-later client with highlights",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// -c/-config is read by config.LoadConfig straight from os.Args;
	// registering it here keeps cobra from rejecting it.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path override")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(articleCmd())
	rootCmd.AddCommand(highlightCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rehi: %v\n", err)
		os.Exit(1)
	}
}

// app bundles everything a command needs after wiring.
type app struct {
	cfg        *config.Config
	log        logging.Logger
	repos      *storage.Repositories
	remote     remote.Client
	articles   services.ArticleService
	highlights services.HighlightService
}

func openApp(ctx context.Context) (*app, error) {
	cfg := config.LoadConfig()
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	repos, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	var client remote.Client
	if cfg.RemoteEndpointAddr != "" {
		var tokens remote.TokenProvider
		if cfg.RemoteAuthToken != "" {
			tokens = remote.StaticToken(cfg.RemoteAuthToken)
		}
		client = remote.NewHTTPClient(cfg.RemoteEndpointAddr, cfg.RemoteTimeout, tokens)
	}

	return &app{
		cfg:        cfg,
		log:        log,
		repos:      repos,
		remote:     client,
		articles:   services.NewArticleService(repos.Articles),
		highlights: services.NewHighlightService(client, repos.Highlights, repos.Metadata, log),
	}, nil
}

func (a *app) close() {
	// drain pending sync notifies before tearing down the transport
	_ = a.highlights.Close()
	if a.remote != nil {
		_ = a.remote.Close()
	}
	_ = a.repos.DB.Close()
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local reader HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if addr == "" {
				addr = a.cfg.ListenAddr
			}
			return api.NewServer(addr, a.articles, a.highlights, a.log).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address override")
	return cmd
}

func articleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "article",
		Short: "Manage saved articles",
	}
	cmd.AddCommand(articleAddCmd())
	cmd.AddCommand(articleListCmd())
	cmd.AddCommand(articleShowCmd())
	cmd.AddCommand(articleShareCmd())
	cmd.AddCommand(articleDeleteCmd())
	return cmd
}

func articleAddCmd() *cobra.Command {
	var url, title string

	cmd := &cobra.Command{
		Use:   "add [html-file]",
		Short: "Save an article from an HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			if title == "" {
				title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			article, err := a.articles.Add(ctx, url, title, string(data))
			if err != nil {
				return err
			}

			fmt.Printf("Added article %s (%d words)\n", article.Id, article.WordCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "source URL")
	cmd.Flags().StringVar(&title, "title", "", "article title (defaults to the file name)")
	return cmd
}

func articleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			list, err := a.articles.List(ctx)
			if err != nil {
				return err
			}
			for _, article := range list {
				public := ""
				if article.IsPublic {
					public = " [public]"
				}
				fmt.Printf("%s  %s%s\n", article.Id, article.Title, public)
			}
			return nil
		},
	}
}

func articleShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print an article's plain text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			article, err := a.articles.Get(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n\n%s\n", article.Title, article.TextContent)
			return nil
		},
	}
}

func articleShareCmd() *cobra.Command {
	var revoke bool

	cmd := &cobra.Command{
		Use:   "share [id]",
		Short: "Make an article publicly readable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.articles.SetPublic(ctx, args[0], !revoke); err != nil {
				return err
			}
			if revoke {
				fmt.Printf("Article %s is now private\n", args[0])
			} else {
				fmt.Printf("Article %s is now public at /public/articles/%s\n", args[0], args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&revoke, "revoke", false, "make the article private again")
	return cmd
}

func articleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a saved article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.articles.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted article %s\n", args[0])
			return nil
		},
	}
}

func highlightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlight",
		Short: "Manage highlights",
	}
	cmd.AddCommand(highlightAddCmd())
	cmd.AddCommand(highlightListCmd())
	cmd.AddCommand(highlightNoteCmd())
	cmd.AddCommand(highlightDeleteCmd())
	return cmd
}

func highlightAddCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add [article-id] [text...]",
		Short: "Highlight a text snippet in an article",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c := ""
			if color != "" {
				named, ok := highlight.ColorByName(color)
				if !ok {
					return fmt.Errorf("unknown color %q", color)
				}
				c = named
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			text := strings.Join(args[1:], " ")
			h, err := a.highlights.CreateFromSelection(ctx, args[0], &selection.Selection{Text: text}, c)
			if err != nil {
				return err
			}
			fmt.Printf("Added highlight %s\n", h.Id)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "palette color (yellow, green, blue, purple, pink)")
	return cmd
}

func highlightListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [article-id]",
		Short: "List an article's highlights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			list, err := a.highlights.ListForArticle(ctx, args[0])
			if err != nil {
				return err
			}
			for _, h := range list {
				fmt.Printf("%s  %q\n", h.Id, h.Text)
				if h.Note != "" {
					fmt.Printf("    note: %s\n", h.Note)
				}
			}
			return nil
		},
	}
}

func highlightNoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note [highlight-id] [text...]",
		Short: "Attach a note to a highlight",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.highlights.SaveNote(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Printf("Saved note on %s\n", args[0])
			return nil
		},
	}
}

func highlightDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [highlight-id]",
		Short: "Delete a highlight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.highlights.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted highlight %s\n", args[0])
			return nil
		},
	}
}
