package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raporlabs/finrag/internal/core/domain"
)

type fakeVectorStore struct {
	results   []domain.SearchResult
	searchErr error
	added     []*domain.DocumentAnalysis
	saves     int
}

func (f *fakeVectorStore) AddAnalysis(_ context.Context, a *domain.DocumentAnalysis) error {
	f.added = append(f.added, a)
	return nil
}

func (f *fakeVectorStore) Search(_ context.Context, _ string, k int, typeFilter domain.ChunkType) ([]domain.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	out := f.results
	if typeFilter != "" {
		out = nil
		for _, r := range f.results {
			if r.Chunk.ChunkType == typeFilter {
				out = append(out, r)
			}
		}
	}
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func (f *fakeVectorStore) Save(context.Context) error { f.saves++; return nil }

func (f *fakeVectorStore) Load(context.Context) (bool, error) { return false, nil }

func (f *fakeVectorStore) Stats() domain.Statistics {
	return domain.Statistics{TotalChunks: len(f.results), IndexType: "flat"}
}

type fakeCompletion struct {
	answer string
	err    error
	calls  int
	prompt string
}

func (f *fakeCompletion) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeCompletion) ModelName() string          { return "fake-model" }
func (f *fakeCompletion) Ping(context.Context) error { return nil }
func (f *fakeCompletion) Close() error               { return nil }

func textResult(rank int, score float64, text string) domain.SearchResult {
	return domain.SearchResult{
		Chunk: domain.DocumentChunk{
			ID:         "id",
			Text:       text,
			Source:     "rapor.pdf",
			PageNumber: rank + 1,
			ChunkType:  domain.ChunkTypeText,
		},
		Score: score,
		Rank:  rank,
	}
}

func TestQueryService_Query_EmptyQuestion(t *testing.T) {
	s := NewQueryService(&fakeVectorStore{}, &fakeCompletion{})

	_, err := s.Query(context.Background(), "   ", domain.QueryOptions{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQueryService_Query_NoResultsShortCircuits(t *testing.T) {
	completion := &fakeCompletion{answer: "asla"}
	s := NewQueryService(&fakeVectorStore{}, completion)

	answer, err := s.Query(context.Background(), "enflasyon nedir", domain.QueryOptions{})

	require.NoError(t, err)
	assert.Equal(t, "Üzgünüm, sorunuzla ilgili bilgi bulunamadı.", answer.Text)
	assert.Zero(t, answer.Confidence)
	assert.Zero(t, completion.calls, "completion must not be invoked without context")
}

func TestQueryService_Query_CompletionFailure(t *testing.T) {
	store := &fakeVectorStore{results: []domain.SearchResult{textResult(0, 0.9, "Enflasyon %40 oldu.")}}
	s := NewQueryService(store, &fakeCompletion{err: errors.New("groq: 503")})

	answer, err := s.Query(context.Background(), "enflasyon ne kadar", domain.QueryOptions{})

	require.NoError(t, err)
	assert.Contains(t, answer.Text, "yanıt üretilemedi")
	assert.Zero(t, answer.Confidence)
	assert.Len(t, answer.Results, 1)
}

func TestQueryService_Query_RetrievalFailure(t *testing.T) {
	s := NewQueryService(&fakeVectorStore{searchErr: errors.New("embed: connection refused")}, &fakeCompletion{})

	answer, err := s.Query(context.Background(), "enflasyon", domain.QueryOptions{})

	require.NoError(t, err)
	assert.Zero(t, answer.Confidence)
}

func TestQueryService_Query_Success(t *testing.T) {
	store := &fakeVectorStore{results: []domain.SearchResult{
		textResult(0, 0.92, "Enflasyon yıllık %40 seviyesine geriledi."),
		textResult(1, 0.81, "Gıda fiyatları %55 arttı."),
	}}
	completion := &fakeCompletion{answer: "Enflasyon yıllık bazda yüzde 40 olarak gerçekleşmiştir."}
	s := NewQueryService(store, completion)

	answer, err := s.Query(context.Background(), "enflasyon ne kadar", domain.QueryOptions{})

	require.NoError(t, err)
	assert.Contains(t, answer.Text, completion.answer)
	assert.Contains(t, answer.Text, "Güven Düzeyi")
	assert.Greater(t, answer.Confidence, 0.0)
	assert.LessOrEqual(t, answer.Confidence, 1.0)
	assert.Len(t, answer.Results, 2)

	assert.Contains(t, completion.prompt, "[Kaynak 1 - TEXT - Sayfa 1 - Benzerlik: 0.920]")
	assert.Contains(t, completion.prompt, "Enflasyon yıllık %40 seviyesine geriledi.")
	assert.Contains(t, completion.prompt, "KULLANICI SORUSU:\nenflasyon ne kadar")
}

func TestQueryService_Search_Passthrough(t *testing.T) {
	store := &fakeVectorStore{results: []domain.SearchResult{textResult(0, 0.5, "metin")}}
	s := NewQueryService(store, &fakeCompletion{})

	results, err := s.Search(context.Background(), "metin", 3, "")

	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestAssembleContext_IncludesWholeResults(t *testing.T) {
	results := []domain.SearchResult{
		textResult(0, 0.9, "Birinci parça."),
		textResult(1, 0.8, "İkinci parça."),
	}

	got := assembleContext(results, 2000)

	assert.Contains(t, got, "[Kaynak 1 - TEXT - Sayfa 1 - Benzerlik: 0.900]\nBirinci parça.")
	assert.Contains(t, got, "\n\n[Kaynak 2 - TEXT - Sayfa 2 - Benzerlik: 0.800]\nİkinci parça.")
}

func TestAssembleContext_DropsResultThatDoesNotFit(t *testing.T) {
	results := []domain.SearchResult{
		textResult(0, 0.9, "kısa"),
		textResult(1, 0.8, strings.Repeat("uzun ", 100)),
	}

	got := assembleContext(results, 120)

	assert.Contains(t, got, "kısa")
	assert.NotContains(t, got, "uzun")
	assert.False(t, strings.HasSuffix(got, "..."))
}

func TestAssembleContext_HardCutsOversizedFirstResult(t *testing.T) {
	results := []domain.SearchResult{textResult(0, 0.9, strings.Repeat("çok uzun metin ", 500))}

	got := assembleContext(results, 200)

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, 200, utf8.RuneCountInString(got))
}

func TestAssembleContext_Empty(t *testing.T) {
	assert.Empty(t, assembleContext(nil, 2000))
}

func TestConfidenceScore_AlwaysInUnitInterval(t *testing.T) {
	similarities := []float64{-1, -0.5, 0, 0.5, 1}
	lengths := []int{0, 100, 500, 10000}
	counts := []int{1, 3, 5, 20}

	for _, sim := range similarities {
		for _, length := range lengths {
			for _, count := range counts {
				results := make([]domain.SearchResult, count)
				for i := range results {
					results[i] = textResult(i, sim, "metin")
				}
				score := confidenceScore(results, length)
				assert.GreaterOrEqual(t, score, 0.0, "sim=%v len=%d count=%d", sim, length, count)
				assert.LessOrEqual(t, score, 1.0, "sim=%v len=%d count=%d", sim, length, count)
			}
		}
	}
}

func TestConfidenceScore_EmptyResults(t *testing.T) {
	assert.Zero(t, confidenceScore(nil, 100))
}

func TestConfidenceScore_Weighting(t *testing.T) {
	// One perfect-similarity text result with a 500-rune answer:
	// 0.5*1 + 0.2*1 + 0.2*(1/5) + 0.1*(1/3)
	results := []domain.SearchResult{textResult(0, 1.0, "metin")}

	assert.InDelta(t, 0.5+0.2+0.04+1.0/30, confidenceScore(results, 500), 1e-9)
}
