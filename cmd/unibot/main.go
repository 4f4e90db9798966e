package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/MuhammadAbbas01/unibot"
	"github.com/MuhammadAbbas01/unibot/chat"
	"github.com/MuhammadAbbas01/unibot/crawl"
	"github.com/MuhammadAbbas01/unibot/fs"
	"github.com/MuhammadAbbas01/unibot/goquery"
	unibothttp "github.com/MuhammadAbbas01/unibot/http"
	uniprom "github.com/MuhammadAbbas01/unibot/prometheus"
	unislog "github.com/MuhammadAbbas01/unibot/slog"
	"github.com/MuhammadAbbas01/unibot/sqlite"
	"github.com/alecthomas/kong"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when neither --db nor UNIBOT_DB is set.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments. Failures are reported on
// stderr as a single "error:" line and returned.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	err := m.run(ctx, args, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", errorMessage(err))
	}
	return err
}

// errorMessage returns the user-facing text for err. Application errors
// carry their own message; anything else is shown in full.
func errorMessage(err error) string {
	if unibot.ErrorCode(err) == unibot.EINTERNAL {
		return err.Error()
	}
	return unibot.ErrorMessage(err)
}

func (m *Main) run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("unibot"),
		kong.Description("Crawl the University of Malakand website and answer questions about it."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'unibot --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, sync, err := newLogger(stderr, cli.LogFormat, cli.LogLevel)
	if err != nil {
		return err
	}
	defer sync()
	deps.Logger = logger

	path := cli.DB
	if path == "" {
		path = m.DBPath
	}
	m.DB = sqlite.NewDB(path)
	defer m.Close()
	deps.DB = m.DB

	cmd := kongCtx.Command()
	switch cmd {
	case "scrape <url>", "import <file>":
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set UNIBOT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
	case "serve":
		// A missing store is created so the first scrape has somewhere to write.
		if err := m.DB.OpenExisting(); err != nil {
			if !errors.Is(err, unibot.ErrStoreAbsent) {
				return fmt.Errorf("failed to open database at %q: %w", path, err)
			}
			if err := m.DB.Open(); err != nil {
				return fmt.Errorf("failed to open database at %q: %w", path, err)
			}
		} else {
			deps.StoreReady = true
		}
	default:
		if err := m.DB.OpenExisting(); err != nil {
			return err
		}
		deps.StoreReady = true
	}

	deps.Pages = sqlite.NewPageService(m.DB)
	deps.Records = sqlite.NewRecordService(m.DB)
	deps.Store = sqlite.NewKnowledgeStore(m.DB)

	switch cmd {
	case "scrape <url>":
		deps.Crawler = newCrawler(m.DB, crawlOptions{
			TextDir: cli.Scrape.TextDir,
			RPS:     cli.Scrape.RPS,
			Timeout: cli.Scrape.Timeout,
			Refresh: cli.Scrape.Refresh,
		}, logger, nil)
	case "serve":
		deps.Metrics = uniprom.NewMetrics(nil)
		deps.Crawler = newCrawler(m.DB, crawlOptions{
			TextDir: cli.Serve.TextDir,
			RPS:     cli.Serve.RPS,
			Timeout: cli.Serve.Timeout,
		}, logger, deps.Metrics)
		if deps.StoreReady {
			a, err := deps.Connect(ctx)
			if err != nil {
				return err
			}
			deps.Assistant = a
		}
	case "chat", "ask <question>", "info":
		a, err := deps.Connect(ctx)
		if err != nil {
			return err
		}
		deps.Assistant = a
	}

	return kongCtx.Run(deps)
}

// crawlOptions are the crawl settings shared by scrape and serve.
type crawlOptions struct {
	TextDir string
	RPS     float64
	Timeout time.Duration
	Refresh bool
}

// newCrawler wires a Crawler over db. Pages are also mirrored as text files
// when TextDir is set. A nil metrics skips instrumentation.
func newCrawler(db *sqlite.DB, opts crawlOptions, logger *slog.Logger, metrics *uniprom.Metrics) *crawl.Crawler {
	var fetcher unibot.Fetcher = unibothttp.NewFetcher(unibothttp.WithTimeout(opts.Timeout))
	fetcher = unislog.NewLoggingFetcher(fetcher, logger)

	var pages unibot.PageWriter = sqlite.NewPageService(db)
	if opts.TextDir != "" {
		pages = unibot.PageWriters{pages, fs.NewWriter(opts.TextDir)}
	}
	pages = unislog.NewLoggingPageWriter(pages, logger)

	if metrics != nil {
		fetcher = uniprom.NewInstrumentedFetcher(fetcher, metrics)
		pages = uniprom.NewInstrumentedPageWriter(pages, metrics)
	}

	var delay time.Duration
	if opts.RPS > 0 {
		delay = time.Duration(float64(time.Second) / opts.RPS)
	}

	return &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   goquery.NewExtractor(),
		Pages:       pages,
		Documents:   sqlite.NewDocumentLinkService(db),
		RateLimiter: crawl.NewDomainLimiter(delay),
		Refresh:     opts.Refresh,
	}
}

// Connect opens a chat assistant over the knowledge store.
func (d *Dependencies) Connect(ctx context.Context) (unibot.Assistant, error) {
	bot, err := chat.NewBot(ctx, d.Store)
	if err != nil {
		return nil, err
	}
	var a unibot.Assistant = unislog.NewLoggingAssistant(bot, d.Logger)
	if d.Metrics != nil {
		a = uniprom.NewInstrumentedAssistant(a, d.Metrics)
	}
	return a, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "unibot.db"
	}
	dir := filepath.Join(home, ".unibot")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "unibot.db")
}
