// Package prompt builds the deterministic Turkish instruction sent to
// the completion service and formats the returned answer. The builder
// owns no network access; generation is a collaborator behind the
// completion port.
package prompt

import (
	"fmt"
	"strings"
)

// QueryType classifies what the user is asking for, so the instruction
// can steer the response shape.
type QueryType string

const (
	QueryFactual     QueryType = "factual"
	QueryAnalytical  QueryType = "analytical"
	QueryComparative QueryType = "comparative"
	QueryStatistical QueryType = "statistical"
	QueryExplanatory QueryType = "explanatory"
)

// DocumentType classifies the retrieved context for context-aware
// instructions.
type DocumentType string

const (
	DocEconomicReport    DocumentType = "economic_report"
	DocBudgetAnalysis    DocumentType = "budget_analysis"
	DocFinancialBulletin DocumentType = "financial_bulletin"
	DocGeneral           DocumentType = "general_document"
)

const systemPrompt = `Sen Türkiye'deki ekonomi ve finans konularında uzman bir analistin.
Türkçe PDF dokümanlarını analiz ederek kullanıcıların sorularına detaylı, doğru ve yararlı yanıtlar veriyorsun.

TEMEL PRENSİPLER:
- Sadece verilen bağlam bilgilerini kullan
- Türkçe dilbilgisi kurallarına uygun yaz
- Teknik terimleri açıkla
- Sayısal verileri net şekilde sun
- Kaynakları belirt`

var docInstructions = map[DocumentType]string{
	DocEconomicReport:    "Ekonomik göstergeleri analiz et ve trendleri açıkla",
	DocBudgetAnalysis:    "Bütçe kalemlerini detaylandır ve mali durumu değerlendir",
	DocFinancialBulletin: "Güncel finansal gelişmeleri özetle ve önemli noktaları vurgula",
	DocGeneral:           "Genel bilgileri düzenli şekilde sun",
}

var queryInstructions = map[QueryType]string{
	QueryFactual:     "Somut bilgileri net şekilde sun",
	QueryAnalytical:  "Sebep-sonuç ilişkilerini açıkla ve analiz et",
	QueryComparative: "Karşılaştırmaları tablo halinde göster",
	QueryStatistical: "Sayısal verileri vurgula ve yorumla",
	QueryExplanatory: "Kavramları basit dille açıkla",
}

// Build assembles the full instruction: system prompt, query- and
// document-specific directives, a glossary of domain terms that occur
// in the context, then the context and question blocks. Output is
// deterministic for fixed inputs.
func Build(question, context string) string {
	queryType := DetectQueryType(question)
	docType := DetectDocumentType(context)

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nÖZEL TALİMATLAR:\n")
	b.WriteString("- " + docInstructions[docType] + "\n")
	b.WriteString("- " + queryInstructions[queryType] + "\n")

	if vocab := vocabularySection(context); vocab != "" {
		b.WriteString("\n" + vocab + "\n")
	}

	fmt.Fprintf(&b, "\nBAĞLAM BİLGİLERİ:\n%s\n\nKULLANICI SORUSU:\n%s\n\nYANIT:", context, question)
	return b.String()
}

// FormatAnswer appends the confidence indicator and the context-only
// disclaimer to a generated answer.
func FormatAnswer(answer string, confidence float64) string {
	indicator := "🔴"
	switch {
	case confidence >= 0.8:
		indicator = "🟢"
	case confidence >= 0.6:
		indicator = "🟡"
	}
	return fmt.Sprintf("%s\n\n---\n%s Güven Düzeyi: %.0f%%\n\nNot: Bu yanıt sadece verilen bağlam bilgilerine dayanmaktadır.",
		strings.TrimSpace(answer), indicator, confidence*100)
}
