package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectQueryType(t *testing.T) {
	cases := []struct {
		question string
		want     QueryType
	}{
		{"Türkiye'nin bütçe dengesi nasıl?", QueryAnalytical},
		{"Enflasyon neden yükseliyor?", QueryAnalytical},
		{"2024 ile 2025 arasında fark var mı?", QueryComparative},
		{"İşsizlik oranı kaç?", QueryStatistical},
		{"Cari açık nedir?", QueryExplanatory},
		{"Bütçe açığı 500 milyar TL mi?", QueryFactual},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectQueryType(tc.question), "question: %s", tc.question)
	}
}

func TestDetectDocumentType(t *testing.T) {
	cases := []struct {
		context string
		want    DocumentType
	}{
		{"2025 bütçe ödenekleri ve mali disiplin", DocBudgetAnalysis},
		{"GSYH büyüme oranı yüzde 4 oldu", DocEconomicReport},
		{"Haftalık piyasa bülteni", DocFinancialBulletin},
		{"Toplantı tutanakları", DocGeneral},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectDocumentType(tc.context), "context: %s", tc.context)
	}
}

func TestBuild_ContainsContextAndQuestion(t *testing.T) {
	p := Build("Enflasyon ne kadar?", "TÜFE yıllık %65 arttı.")

	assert.Contains(t, p, "BAĞLAM BİLGİLERİ:\nTÜFE yıllık %65 arttı.")
	assert.Contains(t, p, "KULLANICI SORUSU:\nEnflasyon ne kadar?")
	assert.True(t, strings.HasSuffix(p, "YANIT:"))
}

func TestBuild_GlossesDomainTerms(t *testing.T) {
	p := Build("TÜFE nedir?", "TÜFE yıllık %65 arttı, GSYH büyümesi yavaşladı.")

	assert.Contains(t, p, "TEMEL KAVRAMLAR:")
	assert.Contains(t, p, "TÜFE: Tüketici Fiyat Endeksi")
	assert.Contains(t, p, "GSYH: Gayri Safi Yurt İçi Hasıla")
}

func TestBuild_NoGlossaryWithoutTerms(t *testing.T) {
	p := Build("Toplantı ne zaman?", "Toplantı salı günü yapılacak.")

	assert.NotContains(t, p, "TEMEL KAVRAMLAR:")
}

func TestBuild_Deterministic(t *testing.T) {
	question := "Bütçe açığı ne kadar?"
	context := "Bütçe dengesi açık verdi. TÜFE ve ÜFE yükseldi."

	assert.Equal(t, Build(question, context), Build(question, context))
}

func TestFormatAnswer_ConfidenceIndicators(t *testing.T) {
	assert.Contains(t, FormatAnswer("cevap", 0.85), "🟢")
	assert.Contains(t, FormatAnswer("cevap", 0.65), "🟡")
	assert.Contains(t, FormatAnswer("cevap", 0.30), "🔴")
}

func TestFormatAnswer_AppendsDisclaimer(t *testing.T) {
	out := FormatAnswer("Bütçe açığı 500 milyar TL.", 0.72)

	assert.True(t, strings.HasPrefix(out, "Bütçe açığı 500 milyar TL."))
	assert.Contains(t, out, "Güven Düzeyi: 72%")
	assert.Contains(t, out, "Not: Bu yanıt sadece verilen bağlam bilgilerine dayanmaktadır.")
}
