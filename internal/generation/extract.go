package generation

import (
	"fmt"
	"regexp"
	"strings"

	"lgs-predict/internal/domain"
)

// Fallback parser for responses where the model ignored the JSON contract
// and answered in prose. Blocks are split on numbered or "Soru" headers and
// mined for options, answer letter and explanation.

var (
	blockStartRe   = regexp.MustCompile(`^(\d+[.)]\s*|\*\*Soru|Soru\s*\d+)`)
	optionStartRe  = regexp.MustCompile(`(?m)^\s*([A-D])[.)][ \t]*`)
	headerPrefixRe = regexp.MustCompile(`^[\d.)\s]*(\*\*)?Soru\s*\d*(\*\*)?[:.]?\s*`)
	numberPrefixRe = regexp.MustCompile(`^[\d.)\s]+`)

	answerRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Doğru\s*Cevap|Cevap)[:.\s]+([A-D])\b`),
		regexp.MustCompile(`\*\*([A-D])\*\*`),
		regexp.MustCompile(`(?i)\b([A-D])\s*(?:doğrudur|seçeneği)`),
	}
	explanationRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:Açıklama|Çözüm)[:.]?\s+(.+?)(?:\n\n|\z)`),
		regexp.MustCompile(`(?is)(?:Neden|Çünkü)[:.]?\s+(.+?)(?:\n\n|\z)`),
	}
)

const missingExplanation = "Açıklama mevcut değil."

// ExtractDraftsFromProse parses free-form model output into drafts. Blocks
// with fewer than four options are discarded.
func ExtractDraftsFromProse(text string) []domain.Draft {
	var drafts []domain.Draft
	for _, block := range splitQuestionBlocks(text) {
		if d, ok := extractDraft(block); ok {
			drafts = append(drafts, d)
		}
	}
	return drafts
}

// splitQuestionBlocks cuts the text at lines that open a new question.
func splitQuestionBlocks(text string) []string {
	lines := strings.Split(text, "\n")
	var blocks []string
	var current []string
	for _, line := range lines {
		if blockStartRe.MatchString(line) && len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = current[:0]
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

func extractDraft(block string) (domain.Draft, bool) {
	if strings.TrimSpace(block) == "" {
		return domain.Draft{}, false
	}

	markers := optionStartRe.FindAllStringSubmatchIndex(block, -1)
	if len(markers) < 4 {
		return domain.Draft{}, false
	}
	markers = markers[:4]

	options := make(map[string]string, 4)
	texts := make([]string, 0, 4)
	for i, m := range markers {
		end := len(block)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		text := block[m[1]:end]
		// An option ends at the first blank line after it.
		if cut := strings.Index(text, "\n\n"); cut >= 0 {
			text = text[:cut]
		}
		texts = append(texts, strings.TrimSpace(text))
	}
	for i, label := range domain.OptionLabels {
		options[label] = texts[i]
	}

	body := strings.TrimSpace(block[:markers[0][0]])
	body = headerPrefixRe.ReplaceAllString(body, "")
	body = numberPrefixRe.ReplaceAllString(body, "")
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.Draft{}, false
	}

	answer := ""
	for _, re := range answerRes {
		if m := re.FindStringSubmatch(block); m != nil {
			answer = strings.ToUpper(m[1])
			break
		}
	}
	if answer == "" {
		answer = domain.DefaultCorrectAnswer
	}

	explanation := ""
	for _, re := range explanationRes {
		if m := re.FindStringSubmatch(block); m != nil {
			explanation = strings.TrimSpace(m[1])
			break
		}
	}
	if explanation == "" {
		explanation = missingExplanation
	}

	var folded strings.Builder
	folded.WriteString(body)
	folded.WriteString("\n\n")
	for i, label := range domain.OptionLabels {
		fmt.Fprintf(&folded, "%s) %s\n", label, texts[i])
	}

	return domain.Draft{
		Body:          strings.TrimSpace(folded.String()),
		Options:       options,
		CorrectAnswer: answer,
		Explanation:   explanation,
	}, true
}
