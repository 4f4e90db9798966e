package sqlite_test

import (
	"context"
	"testing"

	"github.com/MuhammadAbbas01/unibot"
	"github.com/MuhammadAbbas01/unibot/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeStore_LoadRecords(t *testing.T) {
	t.Parallel()

	t.Run("loads every collection in insertion order", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := setupTestDB(t)
		pages := sqlite.NewPageService(db)
		records := sqlite.NewRecordService(db)

		for _, p := range []*unibot.Page{
			newPage("https://www.uom.edu.pk/zoology", "zoology", "Zoology department."),
			newPage("https://www.uom.edu.pk/about", "about", "About the university."),
		} {
			_, err := pages.WritePage(ctx, p, unibot.WriteOptions{})
			require.NoError(t, err)
		}
		require.NoError(t, records.CreateFaculty(ctx, &unibot.Faculty{
			Name: "Dr. Ali Khan", Designation: "Professor", Department: "Computer Science",
			Email: "ali@uom.edu.pk", ResearchInterests: "Machine learning", Bio: "Joined in 2005.",
		}))
		require.NoError(t, records.CreateDepartment(ctx, &unibot.Department{
			Name: "Computer Science", Head: "Dr. Ali Khan", FacultyCount: 12, Programs: "BS, MS",
		}))
		require.NoError(t, records.CreateNotification(ctx, &unibot.Notification{
			Title: "Convocation", Date: "2024-03-01", Content: "Held on campus.",
		}))

		recs, err := sqlite.NewKnowledgeStore(db).LoadRecords(ctx)

		require.NoError(t, err)
		require.Len(t, recs.Pages, 2)
		assert.Equal(t, "zoology", recs.Pages[0].Slug)
		assert.Equal(t, "about", recs.Pages[1].Slug)
		require.Len(t, recs.Faculty, 1)
		assert.Equal(t, unibot.Faculty{
			Name: "Dr. Ali Khan", Designation: "Professor", Department: "Computer Science",
			Email: "ali@uom.edu.pk", ResearchInterests: "Machine learning", Bio: "Joined in 2005.",
		}, *recs.Faculty[0])
		require.Len(t, recs.Departments, 1)
		assert.Equal(t, 12, recs.Departments[0].FacultyCount)
		require.Len(t, recs.Notifications, 1)
		assert.Equal(t, "2024-03-01", recs.Notifications[0].Date)
	})

	t.Run("empty store loads empty collections", func(t *testing.T) {
		t.Parallel()

		recs, err := sqlite.NewKnowledgeStore(setupTestDB(t)).LoadRecords(context.Background())

		require.NoError(t, err)
		assert.Empty(t, recs.Pages)
		assert.Empty(t, recs.Faculty)
	})

	t.Run("feeds the knowledge base loader", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := setupTestDB(t)
		require.NoError(t, sqlite.NewRecordService(db).CreateDepartment(ctx, &unibot.Department{Name: "English"}))

		kb, err := unibot.LoadKnowledgeBase(ctx, sqlite.NewKnowledgeStore(db))

		require.NoError(t, err)
		_, ok := kb.FindDepartment("english")
		assert.True(t, ok)
	})
}

func TestRecordService_Validates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := sqlite.NewRecordService(setupTestDB(t))

	assert.Equal(t, unibot.EINVALID, unibot.ErrorCode(svc.CreateFaculty(ctx, &unibot.Faculty{})))
	assert.Equal(t, unibot.EINVALID, unibot.ErrorCode(svc.CreateDepartment(ctx, &unibot.Department{})))
	assert.Equal(t, unibot.EINVALID, unibot.ErrorCode(svc.CreateNotification(ctx, &unibot.Notification{})))
}

func TestDocumentLinkService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := sqlite.NewDocumentLinkService(setupTestDB(t))

	require.NoError(t, svc.RecordDocument(ctx, &unibot.DocumentLink{URL: "https://www.uom.edu.pk/b.pdf", SourceURL: "https://www.uom.edu.pk/"}))
	require.NoError(t, svc.RecordDocument(ctx, &unibot.DocumentLink{URL: "https://www.uom.edu.pk/a.pdf", SourceURL: "https://www.uom.edu.pk/"}))
	require.NoError(t, svc.RecordDocument(ctx, &unibot.DocumentLink{URL: "https://www.uom.edu.pk/b.pdf", SourceURL: "https://www.uom.edu.pk/other"}))

	links, err := svc.FindDocuments(ctx)

	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "https://www.uom.edu.pk/b.pdf", links[0].URL)
	assert.Equal(t, "https://www.uom.edu.pk/", links[0].SourceURL)
	assert.Equal(t, "https://www.uom.edu.pk/a.pdf", links[1].URL)

	assert.Equal(t, unibot.EINVALID, unibot.ErrorCode(svc.RecordDocument(ctx, &unibot.DocumentLink{})))
}
