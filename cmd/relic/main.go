package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/relic"
	"github.com/fwojciec/relic/fs"
	"github.com/fwojciec/relic/goquery"
	"github.com/fwojciec/relic/htmltomarkdown"
	"github.com/fwojciec/relic/restore"
	relicslog "github.com/fwojciec/relic/slog"
	"github.com/fwojciec/relic/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run() to override RELIC_DB and the
	// config file.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	UserService relic.UserService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: os.Getenv("RELIC_DB"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("relic"),
		kong.Description("Restore forum archive captures into a Markdown corpus."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'relic --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg := &Config{}
	if cli.Config != "" {
		if cfg, err = LoadConfig(cli.Config); err != nil {
			fmt.Fprintln(stderr, "Hint: Unset RELIC_CONFIG or pass --config to use a different file")
			return err
		}
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	cmd := strings.Fields(kongCtx.Command())[0]

	if cmd == "restore" {
		cli.Restore.applyConfig(cfg.Restore)
	}
	if cmd == "dedupe" {
		cli.Dedupe.applyConfig(cfg.Dedupe)
	}

	needsDB := cmd == "users" || (cmd == "restore" && cli.Restore.Users == "")
	if needsDB {
		if m.DBPath == "" {
			m.DBPath = cfg.DB
		}
		if m.DBPath == "" {
			m.DBPath = defaultDBPath()
		}

		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set RELIC_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.UserService = sqlite.NewUserService(m.DB)
		deps.Users = m.UserService
	}

	if cmd == "restore" {
		var directory relic.UserDirectory = m.UserService
		if cli.Restore.Users != "" {
			d, err := fs.OpenUserDirectory(cli.Restore.Users)
			if err != nil {
				fmt.Fprintf(stderr, "error: %s\n", relic.ErrorMessage(err))
				return err
			}
			directory = d
		}

		deps.Writer = fs.NewWriter(cli.Restore.Out)
		deps.Restorer = &restore.Restorer{
			Extractor: relicslog.NewLoggingExtractor(goquery.NewDefaultRegistry(), goquery.NewDetector(), logger),
			Converter: relicslog.NewLoggingConverter(htmltomarkdown.NewConverter(), logger),
			Converters: map[relic.Layout]relic.Converter{
				relic.LayoutArchive: relicslog.NewLoggingConverter(htmltomarkdown.NewConverter(htmltomarkdown.WithUnwrapAll()), logger),
			},
			Users:       relic.NewResolver(relicslog.NewLoggingUserDirectory(directory, logger)),
			Emitter:     relicslog.NewLoggingEmitter(deps.Writer, logger),
			Concurrency: cli.Restore.Concurrency,
			Logger:      logger,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "relic.db"
	}
	dir := filepath.Join(home, ".relic")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "relic.db")
}
