package faq

import (
	"context"
	"errors"
	"testing"

	"github.com/Edumoretti/chatbot-llm/ai"
	"github.com/stretchr/testify/assert"
)

func TestKeywordStore_MatchesDefaultEntries(t *testing.T) {
	store := NewKeywordStore(DefaultEntries())
	ctx := context.Background()

	answer, ok, err := store.Search(ctx, "qual o horário de funcionamento?")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Funcionamos de segunda a sexta das 8h às 18h, e sábados das 8h às 12h.", answer)

	answer, ok, err = store.Search(ctx, "qual o prazo de entrega?")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "O prazo de entrega é de 2 a 5 dias úteis para todo o país.", answer)
}

func TestKeywordStore_NoConfidentMatch(t *testing.T) {
	store := NewKeywordStore(DefaultEntries())

	_, ok, err := store.Search(context.Background(), "vocês vendem notebooks gamer?")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestKeywordStore_EmptyQuestion(t *testing.T) {
	store := NewKeywordStore(DefaultEntries())

	_, ok, err := store.Search(context.Background(), "   ")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenize_DropsStopWordsAndPunctuation(t *testing.T) {
	words := tokenize("Qual o horário de funcionamento?")
	assert.Contains(t, words, "horário")
	assert.Contains(t, words, "funcionamento")
	assert.NotContains(t, words, "qual")
	assert.NotContains(t, words, "o")
	assert.NotContains(t, words, "de")
}

// fixedEmbedder maps known texts to fixed vectors so similarity is exact.
type fixedEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fixedEmbedder) Complete(_ context.Context, _ string) (string, error) {
	return "", errors.New("not a completion model")
}

func (f *fixedEmbedder) Chat(_ context.Context, _ []ai.Message) (string, error) {
	return "", errors.New("not a chat model")
}

func (f *fixedEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float32{0, 0, 1}, nil
}

func TestVectorStore_PicksClosestEntryAboveThreshold(t *testing.T) {
	entries := []Entry{
		{Question: "horário", Answer: "das 8h às 18h"},
		{Question: "entrega", Answer: "2 a 5 dias úteis"},
	}
	embedder := &fixedEmbedder{vectors: map[string][]float32{
		"horário":           {1, 0, 0},
		"entrega":           {0, 1, 0},
		"que horas abrem?":  {0.9, 0.1, 0},
		"pergunta qualquer": {0, 0, 1},
	}}

	ctx := context.Background()
	store, err := NewVectorStore(ctx, embedder, entries, 0.7)
	assert.NoError(t, err)

	answer, ok, err := store.Search(ctx, "que horas abrem?")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "das 8h às 18h", answer)

	_, ok, err = store.Search(ctx, "pergunta qualquer")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestNewVectorStore_EmbeddingFailure(t *testing.T) {
	embedder := &fixedEmbedder{err: errors.New("quota exceeded")}

	_, err := NewVectorStore(context.Background(), embedder, DefaultEntries(), 0.7)
	assert.Error(t, err)
}

func TestCosine_Basics(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 0}, []float32{1, 0}), 1e-6)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.Zero(t, cosine([]float32{1, 0}, []float32{1, 0, 0}))
	assert.Zero(t, cosine(nil, nil))
}
