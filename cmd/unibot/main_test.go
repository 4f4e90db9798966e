package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/MuhammadAbbas01/unibot/cmd/unibot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, dbPath string, stdin string, args ...string) result {
	t.Helper()
	m := main.NewMain()
	m.DBPath = dbPath
	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func universitySite(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch r.URL.Path {
		case "/":
			fmt.Fprintf(w, `<html><head><title>University of Malakand</title></head><body>
				<p>University of Malakand was established in 2001 in Chakdara.</p>
				<a href="/admissions">Admissions</a>
				<a href="/faculty/ali-khan">Faculty</a>
				<a href="/files/prospectus.pdf">Prospectus</a>
				<a href="https://elsewhere.example/">Elsewhere</a>
			</body></html>`)
		case "/admissions":
			fmt.Fprint(w, `<html><head><title>Admission Schedule</title></head><body>
				<p>Admission applications open in June. Apply online through the portal.</p>
			</body></html>`)
		case "/faculty/ali-khan":
			fmt.Fprint(w, `<html><head><title>Dr. Ali Khan</title></head><body>
				<p>Dr. Ali Khan is an associate professor of computer science.</p>
			</body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMain_EndToEnd(t *testing.T) {
	t.Parallel()

	t.Run("reports a missing knowledge base", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "unibot.db")

		res := run(t, dbPath, "", "ask", "How do I apply?")

		require.Error(t, res.err)
		assert.Contains(t, res.stderr, "error: knowledge base not found. Run 'unibot scrape' first to build it")
		_, statErr := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(statErr), "ask must not create the database")
	})

	t.Run("scrapes then answers from the stored pages", func(t *testing.T) {
		t.Parallel()

		site := universitySite(t)
		dir := t.TempDir()
		dbPath := filepath.Join(dir, "unibot.db")
		textDir := filepath.Join(dir, "text")

		res := run(t, dbPath, "", "scrape", site.URL+"/", "--rps", "0", "--text-dir", textDir)
		require.NoError(t, res.err, res.stderr)
		assert.Contains(t, res.stdout, "Visited:    3")
		assert.Contains(t, res.stdout, "Saved:      3")
		assert.Contains(t, res.stdout, "PDF links:  1")

		text, err := os.ReadFile(filepath.Join(textDir, "admissions.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(text), "Admission applications open in June")

		res = run(t, dbPath, "", "ask", "How do I apply for admission?")
		require.NoError(t, res.err, res.stderr)
		assert.True(t, strings.HasPrefix(res.stdout, "**Admissions Information:**\n\n**Admission Schedule**\n"), res.stdout)

		res = run(t, dbPath, "", "pages", "--category", "faculty")
		require.NoError(t, res.err, res.stderr)
		assert.Contains(t, res.stdout, "Dr. Ali Khan")
		assert.NotContains(t, res.stdout, "Admission Schedule")

		res = run(t, dbPath, "", "scrape", site.URL+"/", "--rps", "0")
		require.NoError(t, res.err, res.stderr)
		assert.Contains(t, res.stdout, "Saved:      0")
		assert.Contains(t, res.stdout, "Skipped:    3")
	})

	t.Run("imports records and answers from them", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "unibot.db")

		res := run(t, dbPath, "", "import", writeFile(t, "records.yaml", recordsYAML))
		require.NoError(t, res.err, res.stderr)

		res = run(t, dbPath, "", "ask", "Tell me about Dr. Ali Khan")
		require.NoError(t, res.err, res.stderr)
		assert.True(t, strings.HasPrefix(res.stdout, "**Dr. Ali Khan**\nPosition: Associate Professor\n"), res.stdout)

		res = run(t, dbPath, "quit\n", "chat")
		require.NoError(t, res.err, res.stderr)
		assert.Contains(t, res.stdout, "0 pages, 1 faculty, 1 departments, 1 notifications")

		res = run(t, dbPath, "", "info", "--json")
		require.NoError(t, res.err, res.stderr)
		assert.Contains(t, res.stdout, `"faculty": 1`)
	})
}
