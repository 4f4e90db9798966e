package unibot_test

import (
	"context"
	"errors"
	"testing"

	"github.com/MuhammadAbbas01/unibot"
	"github.com/MuhammadAbbas01/unibot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"root maps to index", "https://www.uom.edu.pk/", "index"},
		{"no path maps to index", "https://www.uom.edu.pk", "index"},
		{"nested path joins with underscores", "https://www.uom.edu.pk/faculty/dr-ali-khan/", "faculty_dr-ali-khan"},
		{"query string is ignored", "https://www.uom.edu.pk/news.php?id=4", "news.php"},
		{"unsafe characters are replaced", "https://www.uom.edu.pk/a%20b/c:d", "a_b_c_d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := unibot.Slug(tt.url)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlug_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := unibot.Slug("://bad")

	assert.Equal(t, unibot.EINVALID, unibot.ErrorCode(err))
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	h := unibot.ContentHash("Admissions are open.")

	assert.Len(t, h, 16)
	assert.Equal(t, h, unibot.ContentHash("Admissions are open."))
	assert.NotEqual(t, h, unibot.ContentHash("Admissions are closed."))
}

func TestPage_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid page passes", func(t *testing.T) {
		t.Parallel()
		p := &unibot.Page{URL: "https://a.test/", Slug: "index", Content: "text"}
		assert.NoError(t, p.Validate())
	})

	t.Run("blank content is rejected", func(t *testing.T) {
		t.Parallel()
		p := &unibot.Page{URL: "https://a.test/", Slug: "index", Content: "  "}
		assert.Equal(t, unibot.EINVALID, unibot.ErrorCode(p.Validate()))
	})

	t.Run("missing slug is rejected", func(t *testing.T) {
		t.Parallel()
		p := &unibot.Page{URL: "https://a.test/", Content: "text"}
		assert.Equal(t, unibot.EINVALID, unibot.ErrorCode(p.Validate()))
	})
}

func TestPageWriters_WritePage(t *testing.T) {
	t.Parallel()

	t.Run("returns the largest outcome", func(t *testing.T) {
		t.Parallel()

		writers := unibot.PageWriters{
			fixedWriter(unibot.WriteSkipped),
			fixedWriter(unibot.WriteCreated),
			fixedWriter(unibot.WriteUpdated),
		}

		got, err := writers.WritePage(context.Background(), &unibot.Page{}, unibot.WriteOptions{})

		require.NoError(t, err)
		assert.Equal(t, unibot.WriteCreated, got)
	})

	t.Run("stops at the first error", func(t *testing.T) {
		t.Parallel()

		called := false
		writers := unibot.PageWriters{
			&mock.PageWriter{WritePageFn: func(context.Context, *unibot.Page, unibot.WriteOptions) (unibot.WriteOutcome, error) {
				return unibot.WriteSkipped, errors.New("disk full")
			}},
			&mock.PageWriter{WritePageFn: func(context.Context, *unibot.Page, unibot.WriteOptions) (unibot.WriteOutcome, error) {
				called = true
				return unibot.WriteCreated, nil
			}},
		}

		_, err := writers.WritePage(context.Background(), &unibot.Page{}, unibot.WriteOptions{})

		require.Error(t, err)
		assert.False(t, called)
	})
}

func TestWriteOutcome_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "skipped", unibot.WriteSkipped.String())
	assert.Equal(t, "updated", unibot.WriteUpdated.String())
	assert.Equal(t, "created", unibot.WriteCreated.String())
}

func fixedWriter(o unibot.WriteOutcome) *mock.PageWriter {
	return &mock.PageWriter{WritePageFn: func(context.Context, *unibot.Page, unibot.WriteOptions) (unibot.WriteOutcome, error) {
		return o, nil
	}}
}
