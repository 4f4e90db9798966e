package unibot_test

import (
	"testing"

	"github.com/MuhammadAbbas01/unibot"
	"github.com/stretchr/testify/assert"
)

func TestCategorizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		url   string
		title string
		want  string
	}{
		{"news path", "https://www.uom.edu.pk/news/convocation", "", unibot.CategoryNotifications},
		{"admission path", "https://www.uom.edu.pk/admissions", "", unibot.CategoryAdmissions},
		{"faculty-of path is a department", "https://www.uom.edu.pk/faculty-of-science", "", unibot.CategoryDepartment},
		{"staff profile", "https://www.uom.edu.pk/faculty/ali-khan", "", unibot.CategoryFaculty},
		{"title decides when path is plain", "https://www.uom.edu.pk/page.php?id=7", "Research Publications", unibot.CategoryResearch},
		{"exam results", "https://www.uom.edu.pk/exam-results", "", unibot.CategoryAcademics},
		{"contact us", "https://www.uom.edu.pk/contact-us", "", unibot.CategoryContact},
		{"host is not matched", "https://news.uom.edu.pk/", "Home", unibot.CategoryGeneral},
		{"nothing matches", "https://www.uom.edu.pk/", "University of Malakand", unibot.CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, unibot.CategorizeURL(tt.url, tt.title))
		})
	}
}

func TestIsCategory(t *testing.T) {
	t.Parallel()

	assert.True(t, unibot.IsCategory(unibot.CategoryFaculty))
	assert.True(t, unibot.IsCategory(unibot.CategoryGeneral))
	assert.False(t, unibot.IsCategory("sports"))
}
