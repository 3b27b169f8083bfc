package services

import (
	"regexp"
	"strconv"
	"strings"

	"hireflow/resume-screener/internal/models"
)

// FieldExtractor derives candidate facts from normalized resume text using
// deterministic pattern rules. Every derivation is best-effort: a field
// that cannot be recovered comes back nil or empty, never as an error. The
// name and location heuristics in particular may return wrong values and
// must be treated as hints, not verified identity.
type FieldExtractor interface {
	ExtractBasicInfo(text string) models.BasicInfo
	ExtractSkills(text string) []string
	ExtractExperienceYears(text string) int
	ExtractEmployers(text string) []string
}

type fieldExtractor struct{}

func NewFieldExtractor() FieldExtractor {
	return &fieldExtractor{}
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// Permissive North-American grouping: optional country code, optional
	// parens, space/dot/hyphen separators.
	phonePattern = regexp.MustCompile(`(?:\+?1[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)

	// "City, ST" first, then "City, Region" with both words capitalized.
	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b[A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)*,\s?[A-Z]{2}\b`),
		regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)*,\s?[A-Z][a-z]+(?: [A-Z][a-z]+)*\b`),
	}

	nameBoilerplate = regexp.MustCompile(`(?i)\b(resume|curriculum\s+vitae|cv)\b`)
	digitRun        = regexp.MustCompile(`\d{3,}`)
	nameWordPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z'.\-]+$`)

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
		regexp.MustCompile(`(?i)experience\s*:?\s*(\d+)\+?\s*years?`),
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+in\b`),
	}

	employerPattern = regexp.MustCompile(`(?:at )?[A-Z][A-Za-z0-9&',.\- ]{0,80}?(?:(?:Inc|LLC|Corp|Ltd|Company|Technologies|Tech|Solutions|Systems|Group)\b|Co\.)`)
)

// skillVocabulary is the fixed whole-word matching table, partitioned by
// category but matched uniformly. Order here defines result order.
var skillVocabulary = []struct {
	Category string
	Terms    []string
}{
	{"languages", []string{
		"Go", "Python", "Java", "JavaScript", "TypeScript", "C++", "C#",
		"Ruby", "PHP", "Swift", "Kotlin", "Rust", "Scala", "SQL",
	}},
	{"frameworks", []string{
		"React", "Angular", "Vue", "Node.js", "Django", "Flask", "Spring",
		"Rails", "Laravel", "Express", ".NET", "FastAPI",
	}},
	{"databases", []string{
		"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch",
		"Cassandra", "DynamoDB", "SQLite", "Oracle",
	}},
	{"cloud", []string{
		"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform",
		"Jenkins", "Git", "CI/CD", "Ansible", "Linux",
	}},
	{"technical", []string{
		"REST", "GraphQL", "gRPC", "Microservices", "Machine Learning",
		"Data Analysis", "Agile", "Scrum", "TDD", "API Design",
	}},
	{"soft", []string{
		"Leadership", "Communication", "Problem Solving", "Team Management",
		"Project Management", "Mentoring", "Collaboration",
		"Critical Thinking",
	}},
}

type skillRule struct {
	term    string
	pattern *regexp.Regexp
}

var skillRules = buildSkillRules()

func buildSkillRules() []skillRule {
	var rules []skillRule
	for _, group := range skillVocabulary {
		for _, term := range group.Terms {
			// Whole-word match that tolerates terms containing +, #, . and /.
			p := regexp.MustCompile(`(?i)(^|[^a-zA-Z0-9])` + regexp.QuoteMeta(term) + `($|[^a-zA-Z0-9+#])`)
			rules = append(rules, skillRule{term: term, pattern: p})
		}
	}
	return rules
}

// ExtractBasicInfo runs the four identity derivations. It never fails;
// each field is nil when its pattern does not match.
func (e *fieldExtractor) ExtractBasicInfo(text string) models.BasicInfo {
	return models.BasicInfo{
		CandidateName: extractName(text),
		Email:         extractEmail(text),
		Phone:         extractPhone(text),
		Location:      extractLocation(text),
	}
}

func extractEmail(text string) *string {
	if match := emailPattern.FindString(text); match != "" {
		return &match
	}
	return nil
}

func extractPhone(text string) *string {
	match := phonePattern.FindString(text)
	if match == "" {
		return nil
	}
	normalized := strings.TrimSpace(strings.Join(strings.Fields(match), " "))
	return &normalized
}

// extractName scans the first five non-blank lines for one that looks like
// a person's name: 2-4 alphabetic words, no email, no long digit run, no
// resume boilerplate.
func extractName(text string) *string {
	var scanned int
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		scanned++
		if scanned > 5 {
			break
		}
		if len(line) < 4 || len(line) >= 50 {
			continue
		}
		if strings.Contains(line, "@") || digitRun.MatchString(line) || nameBoilerplate.MatchString(line) {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		allWordsMatch := true
		for _, word := range words {
			if len(word) <= 1 || !nameWordPattern.MatchString(word) {
				allWordsMatch = false
				break
			}
		}
		if allWordsMatch {
			return &line
		}
	}
	return nil
}

func extractLocation(text string) *string {
	for _, pattern := range locationPatterns {
		if match := pattern.FindString(text); match != "" {
			return &match
		}
	}
	return nil
}

// ExtractSkills matches the fixed vocabulary case-insensitively on word
// boundaries, then appends any discovered email addresses. Result order is
// vocabulary order followed by emails; duplicates are removed.
func (e *fieldExtractor) ExtractSkills(text string) []string {
	seen := make(map[string]bool)
	skills := []string{}
	for _, rule := range skillRules {
		if rule.pattern.MatchString(text) && !seen[strings.ToLower(rule.term)] {
			seen[strings.ToLower(rule.term)] = true
			skills = append(skills, rule.term)
		}
	}
	for _, email := range emailPattern.FindAllString(text, -1) {
		if !seen[strings.ToLower(email)] {
			seen[strings.ToLower(email)] = true
			skills = append(skills, email)
		}
	}
	return skills
}

// ExtractExperienceYears returns the maximum integer matched by any of the
// years patterns, or 0 when none match.
func (e *fieldExtractor) ExtractExperienceYears(text string) int {
	maxYears := 0
	for _, pattern := range experiencePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			years, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			if years > maxYears {
				maxYears = years
			}
		}
	}
	return maxYears
}

// ExtractEmployers returns capitalized phrases ending in a corporate
// suffix, de-duplicated and capped at 10.
func (e *fieldExtractor) ExtractEmployers(text string) []string {
	seen := make(map[string]bool)
	employers := []string{}
	for _, match := range employerPattern.FindAllString(text, -1) {
		name := strings.TrimSpace(strings.TrimPrefix(match, "at "))
		if len(name) <= 3 || len(name) >= 100 {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		employers = append(employers, name)
		if len(employers) == 10 {
			break
		}
	}
	return employers
}
