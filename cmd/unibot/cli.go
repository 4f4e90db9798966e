package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/MuhammadAbbas01/unibot"
	"github.com/MuhammadAbbas01/unibot/crawl"
	uniprom "github.com/MuhammadAbbas01/unibot/prometheus"
	"github.com/MuhammadAbbas01/unibot/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB      *sqlite.DB
	Pages   unibot.PageService
	Records unibot.RecordService
	Store   unibot.KnowledgeStore

	// StoreReady reports whether the store held a knowledge base at startup.
	StoreReady bool

	Crawler   *crawl.Crawler
	Assistant unibot.Assistant
	Metrics   *uniprom.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string `name:"db" env:"UNIBOT_DB" help:"SQLite database path (default ~/.unibot/unibot.db)"`
	LogFormat string `name:"log-format" env:"UNIBOT_LOG_FORMAT" enum:"text,json" default:"text" help:"Log output format (text, json)"`
	LogLevel  string `name:"log-level" default:"warn" help:"Minimum log level (debug, info, warn, error)"`

	Scrape ScrapeCmd `cmd:"" help:"Crawl the university website into the knowledge base"`
	Chat   ChatCmd   `cmd:"" help:"Start an interactive chat session"`
	Ask    AskCmd    `cmd:"" help:"Ask a single question"`
	Import ImportCmd `cmd:"" help:"Import faculty, department and notification records from YAML"`
	Info   InfoCmd   `cmd:"" help:"Show knowledge base statistics"`
	Pages  PagesCmd  `cmd:"" help:"List stored pages"`
	Serve  ServeCmd  `cmd:"" help:"Serve the chat and scrape JSON API"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL      string        `arg:"" help:"Seed URL, e.g. https://www.uom.edu.pk"`
	MaxPages int           `short:"n" default:"500" help:"Maximum number of pages to fetch"`
	Refresh  bool          `short:"r" help:"Replace stored pages whose content changed"`
	TextDir  string        `name:"text-dir" help:"Also write each page's text to <dir>/<slug>.txt"`
	RPS      float64       `name:"rps" default:"1" help:"Requests per second per host (0 disables the limit)"`
	Timeout  time.Duration `default:"10s" help:"Per-request timeout"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question about the university"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"YAML file with faculty, departments and notifications"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct {
	JSON bool `help:"Print statistics as JSON"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	Category string `short:"c" help:"Only list pages in this category"`
	Limit    int    `short:"l" default:"0" help:"Maximum number of pages to list (0 for all)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr     string        `default:":5000" help:"Listen address"`
	MaxPages int           `name:"max-pages" default:"500" help:"Page cap for scrape requests that omit max_pages"`
	TextDir  string        `name:"text-dir" help:"Also write each scraped page's text to <dir>/<slug>.txt"`
	RPS      float64       `name:"rps" default:"1" help:"Requests per second per host (0 disables the limit)"`
	Timeout  time.Duration `default:"10s" help:"Per-request timeout"`
}
