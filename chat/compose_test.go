package chat_test

import (
	"strings"
	"testing"

	"github.com/MuhammadAbbas01/unibot"
	"github.com/MuhammadAbbas01/unibot/chat"
	"github.com/MuhammadAbbas01/unibot/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureRecords() *unibot.Records {
	return &unibot.Records{
		Pages: []*unibot.Page{
			{
				URL:      "https://www.uom.edu.pk/faculty/ali-khan",
				Slug:     "faculty_ali-khan",
				Title:    "Dr. Ali Khan",
				Category: unibot.CategoryFaculty,
				Content:  "Dr. Ali Khan is an associate professor of computer science. He teaches databases.",
			},
			{
				URL:      "https://www.uom.edu.pk/admissions",
				Slug:     "admissions",
				Title:    "Admission Schedule",
				Category: unibot.CategoryAdmissions,
				Content:  "Admission applications open in June. Apply online through the portal.",
			},
			{
				URL:      "https://www.uom.edu.pk/departments/physics",
				Slug:     "departments_physics",
				Title:    "Department of Physics",
				Category: unibot.CategoryDepartment,
				Content:  "The physics department offers BS and MS programs. Labs are well equipped.",
			},
			{
				URL:      "https://www.uom.edu.pk/about",
				Slug:     "about",
				Title:    "About",
				Category: unibot.CategoryGeneral,
				Content:  "University of Malakand was established in 2001 in Chakdara.",
			},
		},
		Faculty: []*unibot.Faculty{{
			Name:              "Dr. Ali Khan",
			Designation:       "Associate Professor",
			Department:        "Computer Science",
			Email:             "ali@uom.edu.pk",
			ResearchInterests: "Databases",
			Bio:               strings.Repeat("b", 250),
		}},
		Departments: []*unibot.Department{{
			Name:         "Computer Science",
			Head:         "Dr. Sara",
			FacultyCount: 12,
			Programs:     "BS, MS",
		}},
		Notifications: []*unibot.Notification{
			{Title: "Fee Deadline", Date: "2024-01-15", Content: "Fees are due."},
			{Title: "Undated Notice", Content: strings.Repeat("n", 150)},
			{Title: "Spring Convocation", Date: "2024-03-01", Content: "Convocation in the main hall."},
		},
	}
}

func newComposer(t *testing.T, recs *unibot.Records) *chat.Composer {
	t.Helper()
	c, err := chat.NewComposer(unibot.NewKnowledgeBase(recs), 0)
	require.NoError(t, err)
	return c
}

func TestComposer_Faculty(t *testing.T) {
	t.Parallel()

	t.Run("formats a matching faculty record", func(t *testing.T) {
		t.Parallel()

		got := newComposer(t, fixtureRecords()).Answer("Tell me about Dr. Ali Khan")

		assert.True(t, strings.HasPrefix(got, "**Dr. Ali Khan**\nPosition: Associate Professor\nDepartment: Computer Science\n"), got)
		assert.Contains(t, got, "Email: ali@uom.edu.pk\n")
		assert.Contains(t, got, "Research Interests: Databases\n")
		assert.Contains(t, got, "\nBio: "+strings.Repeat("b", 200)+"...")
	})

	t.Run("falls back to faculty pages", func(t *testing.T) {
		t.Parallel()

		got := newComposer(t, fixtureRecords()).Answer("Who is professor Zafar?")

		assert.True(t, strings.HasPrefix(got, "Here's what I found about faculty:\n\n**Dr. Ali Khan**\n"), got)
		assert.Contains(t, got, "associate professor")
	})

	t.Run("returns guidance when nothing matches", func(t *testing.T) {
		t.Parallel()

		got := newComposer(t, nil).Answer("Tell me about Dr. Ali Khan")

		assert.Equal(t, chat.FacultyGuidance, got)
	})
}

func TestComposer_Admissions(t *testing.T) {
	t.Parallel()

	t.Run("lists admissions pages", func(t *testing.T) {
		t.Parallel()

		got := newComposer(t, fixtureRecords()).Answer("How do I apply for admission?")

		assert.True(t, strings.HasPrefix(got, "**Admissions Information:**\n\n**Admission Schedule**\n"), got)
		assert.True(t, strings.HasSuffix(got, "please visit the university's official admissions page."), got)
	})

	t.Run("falls back to any matching page", func(t *testing.T) {
		t.Parallel()

		recs := &unibot.Records{Pages: []*unibot.Page{{
			URL:      "https://www.uom.edu.pk/hostel",
			Title:    "Hostel",
			Category: unibot.CategoryGeneral,
			Content:  "Students apply for hostel rooms each semester.",
		}}}

		got := newComposer(t, recs).Answer("When can I apply?")

		assert.Equal(t, "Here's what I found about admissions:\n\nStudents apply for hostel rooms each semester\n\n", got)
	})

	t.Run("returns guidance when nothing matches", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, chat.AdmissionsGuidance, newComposer(t, nil).Answer("How do I apply?"))
	})
}

func TestComposer_Departments(t *testing.T) {
	t.Parallel()

	t.Run("formats a matching department record", func(t *testing.T) {
		t.Parallel()

		got := newComposer(t, fixtureRecords()).Answer("Information on the department of computer science")

		assert.Equal(t, "**Computer Science**\nDepartment Head: Dr. Sara\nFaculty Members: 12\nPrograms: BS, MS\n", got)
	})

	t.Run("falls back to department pages", func(t *testing.T) {
		t.Parallel()

		got := newComposer(t, fixtureRecords()).Answer("Tell me about the department of physics")

		assert.True(t, strings.HasPrefix(got, "Here's information about departments:\n\n**Department of Physics**\n"), got)
	})

	t.Run("returns guidance when nothing matches", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, chat.DepartmentGuidance, newComposer(t, nil).Answer("Which department?"))
	})
}

func TestComposer_Notifications(t *testing.T) {
	t.Parallel()

	t.Run("lists notifications newest first", func(t *testing.T) {
		t.Parallel()

		got := newComposer(t, fixtureRecords()).Answer("Any latest news?")

		require.True(t, strings.HasPrefix(got, "**Recent University Notifications:**\n\n• **Spring Convocation**\n  Date: 2024-03-01\n"), got)
		spring := strings.Index(got, "Spring Convocation")
		fee := strings.Index(got, "Fee Deadline")
		undated := strings.Index(got, "Undated Notice")
		assert.Less(t, spring, fee)
		assert.Less(t, fee, undated)
		assert.Contains(t, got, "  "+strings.Repeat("n", 100)+"...\n")
	})

	t.Run("falls back to notification pages", func(t *testing.T) {
		t.Parallel()

		recs := &unibot.Records{Pages: []*unibot.Page{{
			URL:      "https://www.uom.edu.pk/news/fee",
			Title:    "Fee Notice",
			Category: unibot.CategoryNotifications,
			Content:  "The fee deadline notice has been extended.",
		}}}

		got := newComposer(t, recs).Answer("Show me the latest notice")

		assert.Equal(t, "**University Updates:**\n\n**Fee Notice**\nThe fee deadline notice has been extended\n\n", got)
	})

	t.Run("returns guidance when nothing matches", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, chat.NotificationsGuidance, newComposer(t, nil).Answer("Any news?"))
	})
}

func TestComposer_General(t *testing.T) {
	t.Parallel()

	t.Run("shows highly relevant pages with a suggestion", func(t *testing.T) {
		t.Parallel()

		got := newComposer(t, fixtureRecords()).Answer("When was the university established in Chakdara?")

		assert.True(t, strings.HasPrefix(got, "Here's what I found:\n\n**About**\n"), got)
		assert.NotContains(t, got, "Additional information")
		assert.True(t, strings.HasSuffix(got, "recent notifications."), got)
	})

	t.Run("shows a medium relevance page as additional information", func(t *testing.T) {
		t.Parallel()

		recs := &unibot.Records{Pages: []*unibot.Page{{
			URL:     "https://www.uom.edu.pk/library",
			Title:   "Library",
			Content: "library opens early morning during weekdays except public holidays throughout winter season months",
		}}}

		got := newComposer(t, recs).Answer("library")

		assert.True(t, strings.HasPrefix(got, "Additional information:\n\n**Library**\n"), got)
		assert.NotContains(t, got, "Here's what I found")
	})

	t.Run("uses the page URL when the title is empty", func(t *testing.T) {
		t.Parallel()

		recs := &unibot.Records{Pages: []*unibot.Page{{
			URL:     "https://www.uom.edu.pk/campus",
			Content: "Campus map.",
		}}}

		got := newComposer(t, recs).Answer("campus map")

		assert.Contains(t, got, "**https://www.uom.edu.pk/campus**\n")
	})

	t.Run("returns guidance for an empty query", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, chat.GeneralGuidance, newComposer(t, fixtureRecords()).Answer(""))
	})

	t.Run("returns guidance when nothing matches", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, chat.GeneralGuidance, newComposer(t, fixtureRecords()).Answer("zebra migration"))
	})
}

func TestCompose(t *testing.T) {
	t.Parallel()

	t.Run("routes secondary intents to the general handler", func(t *testing.T) {
		t.Parallel()

		c := newComposer(t, fixtureRecords())
		query := "Chakdara university research"

		assert.Equal(t, unibot.IntentResearch, intent.Classify(query))
		got := chat.Compose(query, unibot.IntentResearch, unibot.Entities{}, c.KB, c.Searcher)
		assert.Equal(t, c.Respond(query, unibot.IntentGeneral, unibot.Entities{}), got)
		assert.Contains(t, got, "**About**")
	})

	t.Run("uses supplied entities", func(t *testing.T) {
		t.Parallel()

		c := newComposer(t, fixtureRecords())

		got := chat.Compose("who?", unibot.IntentFaculty, unibot.Entities{Person: "ali"}, c.KB, c.Searcher)

		assert.True(t, strings.HasPrefix(got, "**Dr. Ali Khan**\n"), got)
	})
	t.Run("searches without a cache when no searcher is given", func(t *testing.T) {
		t.Parallel()

		c := newComposer(t, fixtureRecords())
		query := "Chakdara university research"

		got := chat.Compose(query, unibot.IntentGeneral, unibot.Entities{}, c.KB, nil)

		assert.Equal(t, c.Respond(query, unibot.IntentGeneral, unibot.Entities{}), got)
		assert.Contains(t, got, "**About**")
	})
}
