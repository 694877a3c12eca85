package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"lgs-predict/internal/domain"
	"lgs-predict/internal/util"
)

const (
	sampleBodyPreviewLen        = 500
	sampleExplanationPreviewLen = 200
	promptTopKeywords           = 10
	trendTopKeywords            = 15
	maxPromptSamples            = 5
)

// buildGenerationPrompt assembles the Turkish few-shot prompt handed to the
// model for question generation. Statistics and exemplars come from the
// prediction context; similar holds optional vector-search hits.
func buildGenerationPrompt(pctx *domain.PredictionContext, category, subcategory string, count int, difficulty string, similar []domain.SimilarDocument) string {
	if subcategory == "" {
		subcategory = "Genel"
	}

	patterns := marshalIndent(pctx.QuestionPatterns)
	topics := formatTopics(pctx.PopularTopics, promptTopKeywords)
	examples := formatSampleQuestions(pctx.SampleQuestions)

	var b strings.Builder
	fmt.Fprintf(&b, `Sen bir LGS (Liselere Geçiş Sınavı) Türkçe dersi uzmanısın ve 2026 LGS sınavı için soru tahminlemesi yapıyorsun.

## VERİ ANALİZİ SONUÇLARI

### Analiz Edilen Toplam Soru: %d
### Kapsanan Yıllar: %s

### Soru Kalıpları Dağılımı:
%s

### En Popüler Konular:
%s

## ÖRNEK SORULAR (Geçmiş LGS'lerden)
%s
`,
		pctx.TotalAnalyzedQuestions,
		strings.Join(pctx.YearsCovered, ", "),
		patterns,
		topics,
		examples,
	)

	if len(similar) > 0 {
		b.WriteString("\n## BENZER SORULAR (Vektör Araması)\n")
		for i, doc := range similar {
			fmt.Fprintf(&b, "\n### Benzer %d\n%s\n", i+1, util.Truncate(doc.Text, sampleBodyPreviewLen))
		}
	}

	fmt.Fprintf(&b, `
## GÖREV

**Kategori:** %s
**Alt Kategori:** %s
**Zorluk:** %s
**Üretilecek Soru Sayısı:** %d

2026 LGS sınavında çıkabilecek %d adet özgün Türkçe sorusu üret.

## KURALLAR
1. Sorular LGS formatında 4 seçenekli (A, B, C, D) olmalı
2. Her sorunun TEK bir doğru cevabı olmalı
3. Sorular %s zorluk seviyesine uygun olmalı
4. Üretilen sorular özgün olmalı, örnek sorulardan KOPYALANMAMALI
5. Soru metni yeterli uzunlukta ve anlaşılır olmalı
6. Şıklar mantıklı ve birbirine yakın güçlükte olmalı

## ÇIKTI FORMATI (JSON)

`+"```json"+`
[
  {
    "soru_no": 1,
    "kategori": "%s",
    "alt_baslik": "%s",
    "zorluk": "%s",
    "metin": "Soru ile ilgili okuma metni veya paragraf (varsa)",
    "soru": "Soru kökü metni",
    "secenekler": {
      "A": "A şıkkı",
      "B": "B şıkkı",
      "C": "C şıkkı",
      "D": "D şıkkı"
    },
    "dogru_cevap": "A/B/C/D",
    "aciklama": "Doğru cevabın detaylı açıklaması"
  }
]
`+"```"+`

Lütfen SADECE JSON formatında yanıt ver, başka açıklama ekleme.
`,
		category, subcategory, capitalizeTurkish(difficulty), count,
		count, difficulty,
		category, subcategory, difficulty,
	)

	return b.String()
}

// buildTrendPrompt assembles the forecast prompt.
func buildTrendPrompt(pctx *domain.PredictionContext) string {
	return fmt.Sprintf(`Sen bir LGS eğitim uzmanısın. Geçmiş yılların LGS Türkçe soru analizine dayanarak 2026 LGS için tahminlerde bulun.

## VERİ ANALİZİ

### Kategori Dağılımı:
%s

### Soru Kalıpları:
%s

### En Popüler Konular:
%s

## GÖREV

2026 LGS Türkçe sınavı için tahminlerini JSON formatında ver:

`+"```json"+`
{
  "oncelikli_konular": ["En çok çıkması beklenen 5 konu"],
  "soru_dagilimi_tahmini": {
    "Paragrafta Anlam": "Tahmini soru sayısı",
    "Cümlede Anlam": "Tahmini soru sayısı",
    "Sözcükte Anlam": "Tahmini soru sayısı",
    "Diğer": "Tahmini soru sayısı"
  },
  "dikkat_edilmesi_gerekenler": ["Önemli noktalar listesi"],
  "yeni_trend_tahminleri": ["2026'da yeni çıkabilecek soru tipleri"],
  "onerilen_calisma_stratejisi": "Detaylı çalışma önerisi"
}
`+"```"+`

Sadece JSON formatında yanıt ver.
`,
		marshalIndent(pctx.CategoryTrends),
		marshalIndent(pctx.QuestionPatterns),
		formatTopics(pctx.PopularTopics, trendTopKeywords),
	)
}

// buildAnalysisPrompt assembles the single-question review prompt.
func buildAnalysisPrompt(questionText string) string {
	return fmt.Sprintf(`Aşağıdaki LGS Türkçe sorusunu analiz et:

SORU:
%s

Aşağıdaki formatta JSON yanıt ver:

`+"```json"+`
{
  "kategori": "Ana kategori (Paragrafta Anlam, Cümlede Anlam vb.)",
  "alt_kategori": "Alt kategori",
  "zorluk": "kolay/orta/zor",
  "kazanimlar": ["Bu sorunun ölçtüğü kazanımlar"],
  "ipuclari": ["Soruyu çözmek için ipuçları"],
  "benzer_soru_ozellikleri": "Bu tip sorularda dikkat edilecekler"
}
`+"```"+`

Sadece JSON formatında yanıt ver.
`, questionText)
}

// buildClassifyPrompt assembles the topic detection prompt. The response is a
// bare category name, snapped to the canonical list by the caller.
func buildClassifyPrompt(questionText string) string {
	var topics strings.Builder
	for _, c := range domain.SupportedCategories {
		fmt.Fprintf(&topics, "- %s\n", c)
	}
	return fmt.Sprintf(`Aşağıdaki LGS Türkçe sorusunun hangi konuya ait olduğunu belirle.

SORU:
%s

KONULAR:
%s
Sadece konu adını yaz, başka açıklama ekleme.
`, questionText, topics.String())
}

func formatSampleQuestions(questions []domain.Question) string {
	if len(questions) == 0 {
		return "Örnek soru bulunamadı."
	}
	if len(questions) > maxPromptSamples {
		questions = questions[:maxPromptSamples]
	}
	parts := make([]string, 0, len(questions))
	for i, q := range questions {
		category := q.Category
		if category == "" {
			category = "Bilinmiyor"
		}
		parts = append(parts, fmt.Sprintf(`
### Örnek %d (%s - %s)
**Metin:** %s
**Cevap:** %s
`,
			i+1, category, q.Subcategory,
			util.Truncate(q.Body, sampleBodyPreviewLen),
			util.Truncate(q.Explanation, sampleExplanationPreviewLen),
		))
	}
	return strings.Join(parts, "\n")
}

func formatTopics(topics []domain.KeywordCount, n int) string {
	if len(topics) > n {
		topics = topics[:n]
	}
	parts := make([]string, 0, len(topics))
	for _, kw := range topics {
		parts = append(parts, fmt.Sprintf("%s (%d)", kw.Keyword, kw.Count))
	}
	return strings.Join(parts, ", ")
}

func marshalIndent(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// capitalizeTurkish uppercases the first rune with Turkish casing, so
// "ılımlı" maps to "Ilımlı" and "ince" to "İnce".
func capitalizeTurkish(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	switch runes[0] {
	case 'i':
		runes[0] = 'İ'
	case 'ı':
		runes[0] = 'I'
	default:
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	}
	return string(runes)
}
