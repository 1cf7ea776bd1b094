package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/raporlabs/finrag/internal/core/domain"
	"github.com/raporlabs/finrag/internal/core/ports/driven"
	"github.com/raporlabs/finrag/internal/core/ports/driving"
	"github.com/raporlabs/finrag/internal/logger"
	"github.com/raporlabs/finrag/internal/prompt"
)

// Ensure QueryService implements the interface.
var _ driving.Querier = (*QueryService)(nil)

// Defaults for unset query options.
const (
	defaultTopK          = 5
	defaultContextLength = 2000
)

// Fixed user-facing fallback answers. A failed query always produces
// an answer-shaped result with confidence 0, never a crash.
const (
	noInformationAnswer    = "Üzgünüm, sorunuzla ilgili bilgi bulunamadı."
	generationFailedAnswer = "Üzgünüm, yanıt üretilemedi. Lütfen daha sonra tekrar deneyin."
)

// Confidence score weights over average similarity, answer length,
// result count and chunk-type diversity.
const (
	similarityWeight = 0.5
	lengthWeight     = 0.2
	sourceWeight     = 0.2
	typeWeight       = 0.1

	lengthNorm = 500
	sourceNorm = 5
	typeNorm   = 3
)

// QueryService answers questions over the indexed corpus: retrieval,
// context assembly, prompt construction and completion, with a
// composite confidence score on the result.
type QueryService struct {
	store      driven.VectorStore
	completion driven.CompletionService
}

// NewQueryService creates the query pipeline.
func NewQueryService(store driven.VectorStore, completion driven.CompletionService) *QueryService {
	return &QueryService{store: store, completion: completion}
}

// Query retrieves context for the question and generates the answer.
// Retrieval or generation failures degrade to a zero-confidence answer.
func (s *QueryService) Query(ctx context.Context, question string, opts domain.QueryOptions) (*domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("query: %w: empty question", domain.ErrInvalidInput)
	}
	if opts.TopK <= 0 {
		opts.TopK = defaultTopK
	}
	if opts.MaxContextLength <= 0 {
		opts.MaxContextLength = defaultContextLength
	}

	results, err := s.store.Search(ctx, question, opts.TopK, opts.TypeFilter)
	if err != nil {
		logger.Error("query: retrieval failed: %v", err)
		return &domain.Answer{Text: generationFailedAnswer, Confidence: 0}, nil
	}
	if len(results) == 0 {
		logger.Info("query: no results for %q", question)
		return &domain.Answer{Text: noInformationAnswer, Confidence: 0, Results: results}, nil
	}

	contextText := assembleContext(results, opts.MaxContextLength)
	generated, err := s.completion.Complete(ctx, prompt.Build(question, contextText))
	if err != nil {
		logger.Error("query: completion failed: %v", err)
		return &domain.Answer{Text: generationFailedAnswer, Confidence: 0, Results: results}, nil
	}

	confidence := confidenceScore(results, utf8.RuneCountInString(generated))
	return &domain.Answer{
		Text:       prompt.FormatAnswer(generated, confidence),
		Confidence: confidence,
		Results:    results,
	}, nil
}

// Search exposes raw retrieval without generation.
func (s *QueryService) Search(ctx context.Context, query string, k int, typeFilter domain.ChunkType) ([]domain.SearchResult, error) {
	return s.store.Search(ctx, query, k, typeFilter)
}

// Stats reports the state of the underlying index.
func (s *QueryService) Stats() domain.Statistics {
	return s.store.Stats()
}

// assembleContext concatenates per-result blocks of the form
//
//	[Kaynak N - TYPE - Sayfa P - Benzerlik: S]
//	<chunk text>
//
// bounded by maxLength runes. Results are included whole; when the
// first result alone exceeds the bound it is hard-cut with an ellipsis
// marker rather than dropped.
func assembleContext(results []domain.SearchResult, maxLength int) string {
	var b strings.Builder
	used := 0
	for i, r := range results {
		block := fmt.Sprintf("[Kaynak %d - %s - Sayfa %d - Benzerlik: %.3f]\n%s",
			r.Rank+1, strings.ToUpper(string(r.Chunk.ChunkType)), r.Chunk.PageNumber, r.Score, r.Chunk.Text)
		size := utf8.RuneCountInString(block)
		if i > 0 {
			size += 2 // separator
		}
		if used+size > maxLength {
			if i == 0 {
				runes := []rune(block)
				if maxLength > 3 {
					b.WriteString(string(runes[:maxLength-3]) + "...")
				}
			}
			break
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block)
		used += size
	}
	return b.String()
}

// confidenceScore is the composite reliability estimate for an answer
// of answerLength runes built from the result set.
func confidenceScore(results []domain.SearchResult, answerLength int) float64 {
	if len(results) == 0 {
		return 0
	}

	var sum float64
	types := make(map[domain.ChunkType]bool)
	for _, r := range results {
		sum += r.Score
		types[r.Chunk.ChunkType] = true
	}
	avgSimilarity := sum / float64(len(results))
	lengthFactor := capFactor(float64(answerLength) / lengthNorm)
	sourceFactor := capFactor(float64(len(results)) / sourceNorm)
	typeFactor := capFactor(float64(len(types)) / typeNorm)

	score := similarityWeight*avgSimilarity +
		lengthWeight*lengthFactor +
		sourceWeight*sourceFactor +
		typeWeight*typeFactor
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func capFactor(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
