package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	blog "github.com/goliatone/go-blog"
)

const usage = `usage: blog <command> [flags]

commands:
  serve    run the HTTP server
  migrate  create tables and indexes
  seed     load the demo categories, posts and roadmap
  import   import markdown documents from the content directory
`

var (
	moduleOpener           = blog.Open
	stdout       io.Writer = os.Stdout
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("blog: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	switch args[0] {
	case "serve":
		return runServe(ctx, args[1:])
	case "migrate":
		return runMigrate(ctx, args[1:])
	case "seed":
		return runSeed(ctx, args[1:])
	case "import":
		return runImport(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func loadConfig(fs *flag.FlagSet, args []string) (blog.Config, error) {
	path := fs.String("config", "blog.yaml", "Path to the YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return blog.Config{}, err
	}
	return blog.LoadConfig(*path)
}

func runMigrate(ctx context.Context, args []string) error {
	cfg, err := loadConfig(flag.NewFlagSet("migrate", flag.ContinueOnError), args)
	if err != nil {
		return err
	}
	if err := blog.Migrate(ctx, cfg); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	fmt.Fprintln(stdout, "migrations applied")
	return nil
}

func runSeed(ctx context.Context, args []string) error {
	cfg, err := loadConfig(flag.NewFlagSet("seed", flag.ContinueOnError), args)
	if err != nil {
		return err
	}
	module, err := moduleOpener(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open module: %w", err)
	}
	defer module.Close()

	if err := module.Bootstrap(ctx); err != nil {
		return err
	}
	if err := blog.SeedContent(ctx, blog.DemoSeed(module)); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	fmt.Fprintln(stdout, "demo content seeded")
	return nil
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	directory := fs.String("directory", ".", "Directory to import, relative to the content root")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting content")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	module, err := moduleOpener(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open module: %w", err)
	}
	defer module.Close()

	if err := module.Import(ctx, *directory, *dryRun); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "markdown import command executed successfully")
	return nil
}

func runServe(ctx context.Context, args []string) error {
	cfg, err := loadConfig(flag.NewFlagSet("serve", flag.ContinueOnError), args)
	if err != nil {
		return err
	}
	module, err := moduleOpener(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open module: %w", err)
	}
	defer module.Close()

	if err := module.Bootstrap(ctx); err != nil {
		return err
	}
	handler, err := module.Handler()
	if err != nil {
		return err
	}

	logger := module.Logger("blog.server")
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server.listening", "addr", cfg.HTTP.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	logger.Info("server.shutdown", "timeout", timeout)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
