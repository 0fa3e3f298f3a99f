package faq

import (
	"context"
	"math"
	"strings"

	"github.com/Edumoretti/chatbot-llm/ai"
)

// Entry is one question/answer pair in the knowledge base.
type Entry struct {
	Question string
	Answer   string
}

// Store answers FAQ-style questions. ok is false when no entry matches
// confidently enough; callers must treat that as a fallthrough, not a miss
// worth reporting to the user.
type Store interface {
	Search(ctx context.Context, question string) (answer string, ok bool, err error)
}

// DefaultEntries mirrors the store's standard knowledge base.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Question: "Qual o horário de funcionamento?",
			Answer:   "Funcionamos de segunda a sexta das 8h às 18h, e sábados das 8h às 12h.",
		},
		{
			Question: "Como faço para trocar um produto?",
			Answer:   "Você pode trocar produtos em até 7 dias. Entre em contato conosco pelo WhatsApp.",
		},
		{
			Question: "Qual o prazo de entrega?",
			Answer:   "O prazo de entrega é de 2 a 5 dias úteis para todo o país.",
		},
		{
			Question: "Quais formas de pagamento vocês aceitam?",
			Answer:   "Aceitamos cartão de crédito, débito, PIX e boleto bancário.",
		},
		{
			Question: "Como entrar em contato com o suporte?",
			Answer:   "Você pode nos contatar pelo WhatsApp, Discord ou através do nosso site.",
		},
	}
}

// VectorStore matches questions by embedding similarity.
type VectorStore struct {
	embedder  ai.Client
	entries   []Entry
	vectors   [][]float32
	threshold float32
}

// NewVectorStore embeds every entry up front. Building fails if any
// embedding call fails; the caller can fall back to the keyword store.
func NewVectorStore(ctx context.Context, embedder ai.Client, entries []Entry, threshold float32) (*VectorStore, error) {
	vectors := make([][]float32, 0, len(entries))
	for _, entry := range entries {
		vec, err := embedder.Embed(ctx, entry.Question)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vec)
	}

	return &VectorStore{
		embedder:  embedder,
		entries:   entries,
		vectors:   vectors,
		threshold: threshold,
	}, nil
}

func (s *VectorStore) Search(ctx context.Context, question string) (string, bool, error) {
	query, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return "", false, err
	}

	bestIdx := -1
	var bestScore float32
	for i, vec := range s.vectors {
		score := cosine(query, vec)
		if bestIdx < 0 || score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	if bestIdx < 0 || bestScore < s.threshold {
		return "", false, nil
	}
	return s.entries[bestIdx].Answer, true, nil
}

func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// KeywordStore is the deterministic matcher used when no embedding model
// is configured, and by tests.
type KeywordStore struct {
	entries   []Entry
	threshold float64
}

func NewKeywordStore(entries []Entry) *KeywordStore {
	return &KeywordStore{entries: entries, threshold: 0.5}
}

func (s *KeywordStore) Search(_ context.Context, question string) (string, bool, error) {
	queryWords := tokenize(question)
	if len(queryWords) == 0 {
		return "", false, nil
	}

	bestIdx := -1
	var bestScore float64
	for i, entry := range s.entries {
		entryWords := tokenize(entry.Question)
		if len(entryWords) == 0 {
			continue
		}

		shared := 0
		for word := range entryWords {
			if _, ok := queryWords[word]; ok {
				shared++
			}
		}
		score := float64(shared) / float64(len(entryWords))
		if score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	if bestIdx < 0 || bestScore < s.threshold {
		return "", false, nil
	}
	return s.entries[bestIdx].Answer, true, nil
}

// stop words that carry no signal for matching
var stopWords = map[string]struct{}{
	"o": {}, "a": {}, "os": {}, "as": {}, "de": {}, "do": {}, "da": {},
	"que": {}, "qual": {}, "para": {}, "com": {}, "em": {}, "um": {}, "uma": {},
}

func tokenize(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	out := make(map[string]struct{}, len(words))
	for _, word := range words {
		word = strings.Trim(word, "?!.,;:")
		if word == "" {
			continue
		}
		if _, skip := stopWords[word]; skip {
			continue
		}
		out[word] = struct{}{}
	}
	return out
}
