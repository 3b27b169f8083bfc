package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `John A. Smith
Senior Software Engineer
San Francisco, CA
jane.doe@example.com | (555) 123-4567

SUMMARY
8+ years of experience building backend services in Go and Python,
3 years in DevOps. Previously at Acme Corp and at Globex Inc.

SKILLS
Go, Python, JavaScript, PostgreSQL, Redis, Docker, Kubernetes, AWS`

func TestExtractBasicInfo_FullResume(t *testing.T) {
	extractor := NewFieldExtractor()

	info := extractor.ExtractBasicInfo(sampleResume)

	require.NotNil(t, info.CandidateName)
	assert.Equal(t, "John A. Smith", *info.CandidateName)

	require.NotNil(t, info.Email)
	assert.Equal(t, "jane.doe@example.com", *info.Email)

	require.NotNil(t, info.Phone)
	assert.Equal(t, "(555) 123-4567", *info.Phone)

	require.NotNil(t, info.Location)
	assert.Equal(t, "San Francisco, CA", *info.Location)
}

func TestExtractBasicInfo_EmptyText(t *testing.T) {
	extractor := NewFieldExtractor()

	info := extractor.ExtractBasicInfo("")

	assert.Nil(t, info.CandidateName)
	assert.Nil(t, info.Email)
	assert.Nil(t, info.Phone)
	assert.Nil(t, info.Location)
}

func TestExtractBasicInfo_EmailFromContactLine(t *testing.T) {
	extractor := NewFieldExtractor()

	info := extractor.ExtractBasicInfo("Contact: jane.doe@example.com or call")

	require.NotNil(t, info.Email)
	assert.Equal(t, "jane.doe@example.com", *info.Email)
}

func TestExtractBasicInfo_SkipsBoilerplateHeading(t *testing.T) {
	extractor := NewFieldExtractor()

	info := extractor.ExtractBasicInfo("RESUME\nJane Roe\nBackend Developer")

	require.NotNil(t, info.CandidateName)
	assert.Equal(t, "Jane Roe", *info.CandidateName)
}

func TestExtractBasicInfo_NameNotInFirstLines(t *testing.T) {
	extractor := NewFieldExtractor()

	text := "EXPERIENCE 2015-2023\n555 Main Street 94105\ninfo@corp.example.com\n12345\n67890\nJane Roe"
	info := extractor.ExtractBasicInfo(text)

	assert.Nil(t, info.CandidateName)
}

func TestExtractBasicInfo_LocationWithRegionName(t *testing.T) {
	extractor := NewFieldExtractor()

	info := extractor.ExtractBasicInfo("based in Toronto, Ontario since 2019")

	require.NotNil(t, info.Location)
	assert.Equal(t, "Toronto, Ontario", *info.Location)
}

func TestExtractSkills_MatchesWholeWordsOnly(t *testing.T) {
	extractor := NewFieldExtractor()

	skills := extractor.ExtractSkills(sampleResume)

	assert.Contains(t, skills, "Go")
	assert.Contains(t, skills, "Python")
	assert.Contains(t, skills, "JavaScript")
	assert.Contains(t, skills, "PostgreSQL")
	assert.Contains(t, skills, "Redis")
	assert.Contains(t, skills, "Docker")
	assert.Contains(t, skills, "Kubernetes")
	assert.Contains(t, skills, "AWS")
	// "Java" must not fire inside "JavaScript".
	assert.NotContains(t, skills, "Java")
}

func TestExtractSkills_NoSubstringFalsePositives(t *testing.T) {
	extractor := NewFieldExtractor()

	skills := extractor.ExtractSkills("Worked at Google on advertising pipelines.")

	assert.NotContains(t, skills, "Go")
}

func TestExtractSkills_AppendsEmails(t *testing.T) {
	extractor := NewFieldExtractor()

	skills := extractor.ExtractSkills("Python developer, reach me at dev@example.org")

	assert.Contains(t, skills, "Python")
	assert.Contains(t, skills, "dev@example.org")
}

func TestExtractSkills_EmptyTextYieldsEmptyList(t *testing.T) {
	extractor := NewFieldExtractor()

	skills := extractor.ExtractSkills("")

	assert.NotNil(t, skills)
	assert.Empty(t, skills)
}

func TestExtractExperienceYears_TakesMaximum(t *testing.T) {
	extractor := NewFieldExtractor()

	years := extractor.ExtractExperienceYears("5+ years of experience in backend systems, 3 years in DevOps")
	assert.Equal(t, 5, years)
}

func TestExtractExperienceYears_ColonForm(t *testing.T) {
	extractor := NewFieldExtractor()

	years := extractor.ExtractExperienceYears("Experience: 7 years")
	assert.Equal(t, 7, years)
}

func TestExtractExperienceYears_NoMatch(t *testing.T) {
	extractor := NewFieldExtractor()

	assert.Equal(t, 0, extractor.ExtractExperienceYears("seasoned engineer with a long career"))
	assert.Equal(t, 0, extractor.ExtractExperienceYears(""))
}

func TestExtractEmployers_CorporateSuffixes(t *testing.T) {
	extractor := NewFieldExtractor()

	employers := extractor.ExtractEmployers("previously at Acme Corp, then at Globex Inc, and again at Acme Corp")

	assert.Equal(t, []string{"Acme Corp", "Globex Inc"}, employers)
}

func TestExtractEmployers_CapsAtTen(t *testing.T) {
	extractor := NewFieldExtractor()

	var sb strings.Builder
	for i := 0; i < 12; i++ {
		sb.WriteString(fmt.Sprintf("worked at Vendor%d Inc, ", i))
	}

	employers := extractor.ExtractEmployers(sb.String())
	assert.Len(t, employers, 10)
}

func TestExtractEmployers_NoMatch(t *testing.T) {
	extractor := NewFieldExtractor()

	assert.Empty(t, extractor.ExtractEmployers("freelance consultant since 2018"))
}
