package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raporlabs/finrag/internal/core/domain"
)

func TestReconcile_BothStrategies_LongerWins(t *testing.T) {
	rec := Reconcile(1, "kısa metin", "bu çok daha uzun olan metin")

	assert.Equal(t, "bu çok daha uzun olan metin", rec.Text)
	assert.Equal(t, domain.ConfidenceHigh, rec.Confidence)
	assert.Equal(t, domain.ValidationBothSources, rec.Validation)
}

func TestReconcile_BothStrategies_LayoutLongerWins(t *testing.T) {
	rec := Reconcile(1, "bu çok daha uzun olan metin", "kısa metin")

	assert.Equal(t, "bu çok daha uzun olan metin", rec.Text)
	assert.Equal(t, domain.ConfidenceHigh, rec.Confidence)
}

func TestReconcile_ComparesRunesNotBytes(t *testing.T) {
	// 6 runes but 12 bytes of layout text must lose to 8 runes of
	// stream text.
	rec := Reconcile(1, "öğüşçı", "abcdefgh")

	assert.Equal(t, "abcdefgh", rec.Text)
	assert.Equal(t, domain.ConfidenceHigh, rec.Confidence)
}

func TestReconcile_ExactTie_PrefersLayout(t *testing.T) {
	rec := Reconcile(1, "aaaa", "bbbb")

	assert.Equal(t, "aaaa", rec.Text)
	assert.Equal(t, domain.ConfidenceHigh, rec.Confidence)
	assert.Equal(t, domain.ValidationBothSources, rec.Validation)
}

func TestReconcile_LayoutOnly(t *testing.T) {
	rec := Reconcile(2, "sayfa metni", "")

	assert.Equal(t, "sayfa metni", rec.Text)
	assert.Equal(t, domain.ConfidenceMedium, rec.Confidence)
	assert.Equal(t, domain.ValidationLayoutOnly, rec.Validation)
}

func TestReconcile_StreamOnly(t *testing.T) {
	rec := Reconcile(2, "", "sayfa metni")

	assert.Equal(t, "sayfa metni", rec.Text)
	assert.Equal(t, domain.ConfidenceMedium, rec.Confidence)
	assert.Equal(t, domain.ValidationStreamOnly, rec.Validation)
}

func TestReconcile_NeitherStrategy(t *testing.T) {
	rec := Reconcile(3, "", "  \n  ")

	assert.Empty(t, rec.Text)
	assert.Empty(t, rec.Paragraphs)
	assert.Equal(t, domain.ConfidenceLow, rec.Confidence)
	assert.Equal(t, domain.ValidationNoSource, rec.Validation)
	assert.Equal(t, "Page 3", rec.Title)
}

func TestReconcile_WhitespaceOnlyCountsAsEmpty(t *testing.T) {
	rec := Reconcile(1, "   \t  ", "gerçek içerik")

	assert.Equal(t, domain.ValidationStreamOnly, rec.Validation)
}

func TestParagraphs_SplitsNonEmptyLines(t *testing.T) {
	got := Paragraphs("Birinci satır\n\n  İkinci satır  \n\t\nÜçüncü")

	assert.Equal(t, []string{"Birinci satır", "İkinci satır", "Üçüncü"}, got)
}

func TestParagraphs_EmptyText(t *testing.T) {
	assert.Empty(t, Paragraphs(""))
}

func TestDeriveTitle_PicksFirstHeading(t *testing.T) {
	paragraphs := []string{
		"kısa",                                  // too short
		"bu satır küçük harfle başlıyor uzun",   // not uppercase
		"Cümle gibi görünen bir satır biter.",   // ends with period
		"• Madde işaretli satır devam ediyor",   // bullet
		"2024 2025 2026 2027",                   // purely numeric
		"Tablo 2: Yıllık Bütçe Gerçekleşmeleri", // table caption
		"Enflasyon Gelişmeleri ve Beklentiler",  // the heading
		"Sonraki Başlık Adayı Buraya Gelmez mi", // too late
	}

	assert.Equal(t, "Enflasyon Gelişmeleri ve Beklentiler", DeriveTitle(paragraphs, 4))
}

func TestDeriveTitle_RejectsCaptions(t *testing.T) {
	// Table and figure captions are excluded case-insensitively even
	// when they otherwise look like headings.
	assert.Equal(t, "Page 7", DeriveTitle([]string{"Tablo 3: Bütçe Gelirleri"}, 7))
	assert.Equal(t, "Page 7", DeriveTitle([]string{"Grafik 5: Aylık Enflasyon Seyri"}, 7))
	assert.Equal(t, "Page 7", DeriveTitle([]string{"Yukarıdaki tabloda ve grafikte görülen"}, 7))
}

func TestDeriveTitle_RejectsOverlongLine(t *testing.T) {
	long := "Y" + strings.Repeat("a", 120)

	assert.Equal(t, "Page 9", DeriveTitle([]string{long}, 9))
}

func TestDeriveTitle_FallbackWithoutCandidates(t *testing.T) {
	assert.Equal(t, "Page 1", DeriveTitle(nil, 1))
}

func TestDeriveTitle_BoundaryLengths(t *testing.T) {
	// Exactly 10 runes is too short, 11 qualifies.
	assert.Equal(t, "Page 1", DeriveTitle([]string{"Abcdefghij"}, 1))
	assert.Equal(t, "Abcdefghijk", DeriveTitle([]string{"Abcdefghijk"}, 1))
}
