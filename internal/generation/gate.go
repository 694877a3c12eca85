package generation

import "strings"

// Keywords tied to other LGS subjects. A hit anywhere in the text rejects
// the input before any model call is made.
var otherSubjectMarkers = []string{
	"matematik", "denklem", "geometri", "sayı", "işlem",
	"fen", "fizik", "kimya", "biyoloji", "deney",
	"sosyal", "tarih", "coğrafya", "harita",
	"ingilizce", "english", "vocabulary",
	"din kültürü", "ahlak",
}

// Keywords tied to the Türkçe curriculum.
var turkishMarkers = []string{
	"paragraf", "cümle", "sözcük", "anlam", "dil bilgisi",
	"yazım", "noktalama", "eş anlam", "zıt anlam", "mecaz",
	"deyim", "atasözü", "fiil", "isim", "sıfat", "zarf",
	"anlatım", "metin", "okuma", "yazar", "şiir",
}

// IsTurkishRelated reports whether text belongs to the Türkçe subject
// domain. The deny list wins over the allow list; text matching neither is
// accepted.
func IsTurkishRelated(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range otherSubjectMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	for _, marker := range turkishMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return true
}
