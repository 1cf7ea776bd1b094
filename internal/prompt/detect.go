package prompt

import (
	"sort"
	"strings"
)

// Detection keyword lists. Matching is substring-based over the
// lowercased input; the first matching class in declaration order wins.
var (
	analyticalWords  = []string{"neden", "nasıl", "sebep", "analiz", "değerlendirme"}
	comparativeWords = []string{"karşılaştır", "fark", "arasında", "hangisi", "daha"}
	statisticalWords = []string{"kaç", "ne kadar", "yüzde", "oran", "istatistik"}
	explanatoryWords = []string{"açıkla", "anlat", "nedir", "ne demek", "tanımla"}

	budgetDocWords   = []string{"bütçe", "mali", "gelir", "gider", "ödenek"}
	economicDocWords = []string{"ekonomi", "gsyh", "büyüme", "üretim"}
	bulletinDocWords = []string{"günlük", "haftalık", "aylık", "bülten"}
)

// domainVocabulary maps financial terms to their explanations; terms
// found in the retrieved context are glossed into the prompt.
var domainVocabulary = map[string]string{
	"TÜFE":          "Tüketici Fiyat Endeksi - Hanehalkının satın aldığı mal ve hizmetlerin fiyat değişimini ölçer",
	"ÜFE":           "Üretici Fiyat Endeksi - Üreticilerin sattığı mal ve hizmetlerin fiyat değişimini ölçer",
	"GSYH":          "Gayri Safi Yurt İçi Hasıla - Bir ülkenin belirli dönemde ürettiği mal ve hizmetlerin toplam değeri",
	"TCMB":          "Türkiye Cumhuriyet Merkez Bankası - Türkiye'nin merkez bankası",
	"Bütçe Dengesi": "Devlet gelirlerinin giderlerden fazla (fazla) veya az (açık) olması durumu",
	"Cari Açık":     "Bir ülkenin ithalatının ihracatından fazla olması durumu",
	"Enflasyon":     "Genel fiyat seviyesindeki sürekli artış",
	"Deflasyon":     "Genel fiyat seviyesindeki sürekli azalış",
}

// DetectQueryType classifies a question; unmatched questions default
// to factual.
func DetectQueryType(question string) QueryType {
	q := strings.ToLower(question)
	switch {
	case containsAny(q, analyticalWords):
		return QueryAnalytical
	case containsAny(q, comparativeWords):
		return QueryComparative
	case containsAny(q, statisticalWords):
		return QueryStatistical
	case containsAny(q, explanatoryWords):
		return QueryExplanatory
	default:
		return QueryFactual
	}
}

// DetectDocumentType classifies the retrieved context; unmatched
// contexts default to the general document class.
func DetectDocumentType(context string) DocumentType {
	c := strings.ToLower(context)
	switch {
	case containsAny(c, budgetDocWords):
		return DocBudgetAnalysis
	case containsAny(c, economicDocWords):
		return DocEconomicReport
	case containsAny(c, bulletinDocWords):
		return DocFinancialBulletin
	default:
		return DocGeneral
	}
}

// vocabularySection lists the glossary entries whose term occurs in
// the context, sorted by term for deterministic output.
func vocabularySection(context string) string {
	c := strings.ToLower(context)
	var terms []string
	for term := range domainVocabulary {
		if strings.Contains(c, strings.ToLower(term)) {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return ""
	}
	sort.Strings(terms)

	var b strings.Builder
	b.WriteString("TEMEL KAVRAMLAR:")
	for _, term := range terms {
		b.WriteString("\n- " + term + ": " + domainVocabulary[term])
	}
	return b.String()
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
