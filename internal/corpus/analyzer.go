package corpus

import (
	"math/rand"
	"sort"
	"strings"

	"lgs-predict/internal/domain"
)

// sampleSeed fixes the sampling order of few-shot exemplars so that prompts
// and tests are reproducible for a given corpus load.
const sampleSeed = 42

// cuePattern is one fixed lexical marker used to bucket question bodies for
// trend analysis. A question increments a cue at most once, however often
// the marker repeats. When requireAll is set every marker must be present.
type cuePattern struct {
	name       string
	markers    []string
	requireAll bool
}

var cuePatterns = []cuePattern{
	{name: "hangisi", markers: []string{"hangisi"}},
	{name: "aşağıdakilerden", markers: []string{"aşağıdaki"}},
	{name: "çıkarılabilir", markers: []string{"çıkarılabilir", "ulaşılır"}},
	{name: "çıkarılamaz", markers: []string{"çıkarılamaz", "ulaşılamaz"}},
	{name: "anlam", markers: []string{"anlam"}},
	{name: "düşünce", markers: []string{"düşünce"}},
	{name: "yargı", markers: []string{"yargı"}},
	{name: "tamamlama", markers: []string{"tamamla"}},
	{name: "sıralama", markers: []string{"sırala"}},
	{name: "boşluk_doldurma", markers: []string{"boş", "yer"}, requireAll: true},
}

// Analyzer computes deterministic statistics over a loaded corpus. Every
// derived statistic is memoized and invalidated only by an explicit corpus
// reload; two calls without a reload return identical results.
type Analyzer struct {
	store *Store

	categoryDist    map[string]int
	subcategoryDist map[string]map[string]int
	yearDist        map[string]int
	patternReport   *domain.AnalysisReport
}

// NewAnalyzer creates an analyzer over the given store.
func NewAnalyzer(store *Store) *Analyzer {
	return &Analyzer{store: store}
}

// Reload re-reads the corpus from disk and clears every memoized statistic.
// There is no partial invalidation.
func (a *Analyzer) Reload() error {
	if err := a.store.Load(); err != nil {
		return err
	}
	a.categoryDist = nil
	a.subcategoryDist = nil
	a.yearDist = nil
	a.patternReport = nil
	return nil
}

// TotalQuestions returns the corpus size.
func (a *Analyzer) TotalQuestions() int {
	return a.store.QuestionCount()
}

// CategoryDistribution returns question counts per category.
func (a *Analyzer) CategoryDistribution() map[string]int {
	if a.categoryDist != nil {
		return a.categoryDist
	}
	dist := make(map[string]int)
	for _, q := range a.store.Questions() {
		dist[q.Category]++
	}
	a.categoryDist = dist
	return dist
}

// SubcategoryDistribution returns question counts per category and
// subcategory.
func (a *Analyzer) SubcategoryDistribution() map[string]map[string]int {
	if a.subcategoryDist != nil {
		return a.subcategoryDist
	}
	dist := make(map[string]map[string]int)
	for _, q := range a.store.Questions() {
		if dist[q.Category] == nil {
			dist[q.Category] = make(map[string]int)
		}
		dist[q.Category][q.Subcategory]++
	}
	a.subcategoryDist = dist
	return dist
}

// YearDistribution buckets questions by exam year. Historical ids carry the
// year as an LGS-YYYY prefix; AI-generated items keep their generation tag
// and everything else falls into the MEB bucket.
func (a *Analyzer) YearDistribution() map[string]int {
	if a.yearDist != nil {
		return a.yearDist
	}
	dist := make(map[string]int)
	for _, q := range a.store.Questions() {
		dist[yearBucket(&q)]++
	}
	a.yearDist = dist
	return dist
}

func yearBucket(q *domain.Question) string {
	if strings.HasPrefix(q.ID, "LGS-") {
		parts := strings.SplitN(q.ID, "-", 3)
		if len(parts) >= 2 && parts[1] != "" {
			return parts[1]
		}
	}
	if q.Year == domain.GeneratedYearTag {
		return domain.GeneratedYearTag
	}
	if q.Year != "" {
		return q.Year
	}
	return "MEB"
}

// KeywordFrequency flattens all keyword lists into one multiset and returns
// the topN keywords by descending count. Ties are broken by the insertion
// order of the keyword's first occurrence, which keeps the ranking stable
// across calls.
func (a *Analyzer) KeywordFrequency(topN int) []domain.KeywordCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, q := range a.store.Questions() {
		for _, kw := range q.Keywords {
			if _, seen := counts[kw]; !seen {
				firstSeen[kw] = order
				order++
			}
			counts[kw]++
		}
	}

	ranked := make([]domain.KeywordCount, 0, len(counts))
	for kw, n := range counts {
		ranked = append(ranked, domain.KeywordCount{Keyword: kw, Count: n})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Keyword] < firstSeen[ranked[j].Keyword]
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// PatternAnalysis counts cue-pattern matches over all question bodies and
// bundles them with the other corpus statistics.
func (a *Analyzer) PatternAnalysis() *domain.AnalysisReport {
	if a.patternReport != nil {
		return a.patternReport
	}

	patterns := make(map[string]int, len(cuePatterns))
	for _, cue := range cuePatterns {
		patterns[cue.name] = 0
	}
	for _, q := range a.store.Questions() {
		body := strings.ToLower(q.Body)
		for _, cue := range cuePatterns {
			if cue.matches(body) {
				patterns[cue.name]++
			}
		}
	}

	a.patternReport = &domain.AnalysisReport{
		TotalQuestions:       a.TotalQuestions(),
		QuestionPatterns:     patterns,
		CategoryDistribution: a.CategoryDistribution(),
		YearDistribution:     a.YearDistribution(),
		TopKeywords:          a.KeywordFrequency(30),
	}
	return a.patternReport
}

func (c cuePattern) matches(lowerBody string) bool {
	if c.requireAll {
		for _, m := range c.markers {
			if !strings.Contains(lowerBody, m) {
				return false
			}
		}
		return true
	}
	for _, m := range c.markers {
		if strings.Contains(lowerBody, m) {
			return true
		}
	}
	return false
}

// QuestionsByCategory returns the questions of a category in stored order.
func (a *Analyzer) QuestionsByCategory(category string) []domain.Question {
	var out []domain.Question
	for _, q := range a.store.Questions() {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

// SampleQuestions returns up to n few-shot exemplars, filtered by category
// when one is given. Pools no larger than n are returned whole in stored
// order; larger pools are sampled uniformly without replacement under a
// fixed seed so that repeated calls yield the same exemplars.
func (a *Analyzer) SampleQuestions(category string, n int) []domain.Question {
	var pool []domain.Question
	if category != "" {
		pool = a.QuestionsByCategory(category)
	} else {
		pool = a.store.Questions()
	}
	if len(pool) <= n {
		out := make([]domain.Question, len(pool))
		copy(out, pool)
		return out
	}

	rng := rand.New(rand.NewSource(sampleSeed))
	picked := rng.Perm(len(pool))[:n]
	out := make([]domain.Question, 0, n)
	for _, idx := range picked {
		out = append(out, pool[idx])
	}
	return out
}

// BuildPredictionContext assembles the payload handed to the prompt builder:
// the memoized statistics, up to 10 sample questions and, when a category is
// given, its subcategory distribution and sample count.
func (a *Analyzer) BuildPredictionContext(category string) *domain.PredictionContext {
	report := a.PatternAnalysis()

	years := make([]string, 0, len(report.YearDistribution))
	for y := range report.YearDistribution {
		years = append(years, y)
	}
	sort.Strings(years)

	topics := report.TopKeywords
	if len(topics) > 15 {
		topics = topics[:15]
	}

	pctx := &domain.PredictionContext{
		TotalAnalyzedQuestions: report.TotalQuestions,
		CategoryTrends:         report.CategoryDistribution,
		QuestionPatterns:       report.QuestionPatterns,
		PopularTopics:          topics,
		SampleQuestions:        a.SampleQuestions(category, 10),
		YearsCovered:           years,
	}

	if category != "" {
		subs := a.SubcategoryDistribution()[category]
		if subs == nil {
			subs = map[string]int{}
		}
		pctx.CategorySpecific = &domain.CategoryContext{
			Subcategories: subs,
			SampleCount:   len(a.QuestionsByCategory(category)),
		}
	}

	return pctx
}

// ExportReport builds the full analysis report with a compact summary
// header.
func (a *Analyzer) ExportReport() map[string]interface{} {
	return map[string]interface{}{
		"summary": domain.AnalysisSummary{
			TotalQuestions: a.TotalQuestions(),
			Categories:     len(a.CategoryDistribution()),
			Years:          len(a.YearDistribution()),
		},
		"category_distribution":    a.CategoryDistribution(),
		"subcategory_distribution": a.SubcategoryDistribution(),
		"year_distribution":        a.YearDistribution(),
		"pattern_analysis":         a.PatternAnalysis(),
		"top_keywords":             a.KeywordFrequency(50),
	}
}

// Summary returns the compact report header.
func (a *Analyzer) Summary() domain.AnalysisSummary {
	return domain.AnalysisSummary{
		TotalQuestions: a.TotalQuestions(),
		Categories:     len(a.CategoryDistribution()),
		Years:          len(a.YearDistribution()),
	}
}
