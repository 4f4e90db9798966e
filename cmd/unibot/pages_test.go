package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/MuhammadAbbas01/unibot"
	main "github.com/MuhammadAbbas01/unibot/cmd/unibot"
	"github.com/MuhammadAbbas01/unibot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists pages with category, title and URL", func(t *testing.T) {
		t.Parallel()

		var gotFilter unibot.PageFilter
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, filter unibot.PageFilter) ([]*unibot.Page, error) {
				gotFilter = filter
				return []*unibot.Page{
					{URL: "https://www.uom.edu.pk/faculty", Title: "Faculty Directory", Category: unibot.CategoryFaculty},
					{URL: "https://www.uom.edu.pk/x", Category: unibot.CategoryFaculty},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Pages: pages}

		err := (&main.PagesCmd{Category: "faculty", Limit: 5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, gotFilter.Category)
		assert.Equal(t, "faculty", *gotFilter.Category)
		assert.Equal(t, 5, gotFilter.Limit)
		output := stdout.String()
		assert.Contains(t, output, "Faculty Directory")
		assert.Contains(t, output, "https://www.uom.edu.pk/faculty")
		assert.Contains(t, output, "(untitled)")
	})

	t.Run("truncates wide titles", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ unibot.PageFilter) ([]*unibot.Page, error) {
				return []*unibot.Page{{
					URL:      "https://www.uom.edu.pk/urdu",
					Title:    "جامعہ ملاکنڈ شعبہ اردو کی تاریخ اور اساتذہ کی مکمل فہرست برائے سال",
					Category: unibot.CategoryGeneral,
				}}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Pages: pages}

		require.NoError(t, (&main.PagesCmd{}).Run(deps))

		assert.Contains(t, stdout.String(), "...")
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Pages: &mock.PageService{}}

		err := (&main.PagesCmd{Category: "sports"}).Run(deps)

		assert.Equal(t, unibot.EINVALID, unibot.ErrorCode(err))
	})

	t.Run("shows a hint when empty", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ unibot.PageFilter) ([]*unibot.Page, error) {
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Pages: pages}

		require.NoError(t, (&main.PagesCmd{}).Run(deps))

		assert.Contains(t, stdout.String(), "unibot scrape")
	})
}
