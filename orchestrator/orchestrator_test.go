package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Edumoretti/chatbot-llm/ai"
	"github.com/Edumoretti/chatbot-llm/faq"
	"github.com/Edumoretti/chatbot-llm/models"
	"github.com/Edumoretti/chatbot-llm/orchestrator"
)

const apology = "Desculpe, ocorreu um erro ao processar sua mensagem. Por favor, tente novamente."

// scriptedAI answers prompts by inspecting their content, so one mock can
// serve the classifier, the extractor and the listing generator at once.
type scriptedAI struct {
	completeFn func(prompt string) (string, error)
	chatFn     func(history []ai.Message) (string, error)
	chatCalls  [][]ai.Message
}

func (s *scriptedAI) Complete(_ context.Context, prompt string) (string, error) {
	if s.completeFn == nil {
		return "", errors.New("no completion scripted")
	}
	return s.completeFn(prompt)
}

func (s *scriptedAI) Chat(_ context.Context, history []ai.Message) (string, error) {
	s.chatCalls = append(s.chatCalls, history)
	if s.chatFn == nil {
		return "", errors.New("no chat scripted")
	}
	return s.chatFn(history)
}

func (s *scriptedAI) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("no embeddings scripted")
}

type scriptedFAQ struct {
	answer string
	ok     bool
	err    error
}

func (s *scriptedFAQ) Search(_ context.Context, _ string) (string, bool, error) {
	return s.answer, s.ok, s.err
}

type panicFAQ struct{}

func (panicFAQ) Search(_ context.Context, _ string) (string, bool, error) {
	panic("boom")
}

type scriptedCatalog struct {
	results []models.Product
	err     error
	terms   []string
}

func (s *scriptedCatalog) GetProduct(_ context.Context, _ string) (*models.Product, error) {
	return nil, nil
}

func (s *scriptedCatalog) SearchProducts(_ context.Context, query string) ([]models.Product, error) {
	s.terms = append(s.terms, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func newOrchestrator(client ai.Client, faqStore faq.Store, cat *scriptedCatalog) *orchestrator.Orchestrator {
	logger, _ := zap.NewDevelopment()
	if faqStore == nil {
		faqStore = &scriptedFAQ{}
	}
	if cat == nil {
		cat = &scriptedCatalog{}
	}
	detector := ai.NewIntentDetector(client, logger)
	return orchestrator.New(detector, client, faqStore, cat, logger)
}

func TestProcessMessage_FAQHitAnswersVerbatim(t *testing.T) {
	answer := "Funcionamos de segunda a sexta das 8h às 18h, e sábados das 8h às 12h."
	orch := newOrchestrator(nil, &scriptedFAQ{answer: answer, ok: true}, nil)

	// Keyword classification: "horário" routes to the knowledge base.
	reply := orch.ProcessMessage(context.Background(), "u1", "qual o horário de funcionamento?", "web", nil)
	assert.Equal(t, answer, reply)
}

func TestProcessMessage_FAQMissFallsThroughToGeneral(t *testing.T) {
	client := &scriptedAI{
		completeFn: func(prompt string) (string, error) {
			return "FAQ", nil
		},
		chatFn: func(history []ai.Message) (string, error) {
			return "Posso te ajudar com entregas, trocas e pedidos.", nil
		},
	}
	orch := newOrchestrator(client, &scriptedFAQ{ok: false}, nil)

	reply := orch.ProcessMessage(context.Background(), "u1", "quando vocês lançam novidades?", "web", nil)
	assert.Equal(t, "Posso te ajudar com entregas, trocas e pedidos.", reply)
}

func TestProcessMessage_ProductSearchNoResults(t *testing.T) {
	cat := &scriptedCatalog{results: []models.Product{}}
	orch := newOrchestrator(nil, nil, cat)

	// Keyword fallback: "comprar" flags product search, "lattafa" is the term.
	reply := orch.ProcessMessage(context.Background(), "u1", "quero comprar um perfume lattafa", "web", nil)
	assert.Equal(t, "Não encontrei produtos para 'lattafa'. Tente buscar por outra marca ou categoria.", reply)
	assert.Equal(t, []string{"lattafa"}, cat.terms)
}

func TestProcessMessage_ProductSearchListsResults(t *testing.T) {
	cat := &scriptedCatalog{results: []models.Product{
		{ID: "p1", Name: "Asad", Price: decimal.RequireFromString("99.90")},
		{ID: "p2", Name: "Khamrah", Price: decimal.RequireFromString("149.90")},
	}}
	client := &scriptedAI{
		completeFn: func(prompt string) (string, error) {
			switch {
			case strings.Contains(prompt, "Classifique"):
				return "PRODUCT_SEARCH", nil
			case strings.Contains(prompt, "Extraia"):
				return "lattafa", nil
			default:
				// listing prompt carries the formatted products
				assert.Contains(t, prompt, "Asad: R$ 99.90")
				assert.Contains(t, prompt, "Khamrah: R$ 149.90")
				return "Temos o Asad por R$ 99,90 e o Khamrah por R$ 149,90!", nil
			}
		},
	}
	orch := newOrchestrator(client, nil, cat)

	reply := orch.ProcessMessage(context.Background(), "u1", "liste os perfumes lattafa", "web", nil)
	assert.Equal(t, "Temos o Asad por R$ 99,90 e o Khamrah por R$ 149,90!", reply)
	assert.Equal(t, []string{"lattafa"}, cat.terms)
}

func TestProcessMessage_ProductSearchWithoutModelListsPlainly(t *testing.T) {
	cat := &scriptedCatalog{results: []models.Product{
		{ID: "p1", Name: "Asad", Price: decimal.RequireFromString("99.90")},
		{ID: "p2", Name: "Khamrah", Price: decimal.RequireFromString("149.90")},
	}}
	orch := newOrchestrator(nil, nil, cat)

	reply := orch.ProcessMessage(context.Background(), "u1", "liste os perfumes lattafa", "web", nil)
	assert.Equal(t, "Encontrei estes produtos:\n- Asad: R$ 99.90\n- Khamrah: R$ 149.90", reply)
}

func TestProcessMessage_CatalogFailureApologizes(t *testing.T) {
	cat := &scriptedCatalog{err: errors.New("catalog down")}
	orch := newOrchestrator(nil, nil, cat)

	reply := orch.ProcessMessage(context.Background(), "u1", "mostrar produtos armaf", "web", nil)
	assert.Equal(t, apology, reply)
}

func TestProcessMessage_GeneralKeepsConversationHistory(t *testing.T) {
	client := &scriptedAI{
		completeFn: func(prompt string) (string, error) {
			return "GENERAL", nil
		},
		chatFn: func(history []ai.Message) (string, error) {
			return "Olá! Tudo bem?", nil
		},
	}
	orch := newOrchestrator(client, nil, nil)
	ctx := context.Background()

	orch.ProcessMessage(ctx, "u1", "oi", "web", nil)
	orch.ProcessMessage(ctx, "u1", "tudo bem?", "web", nil)

	assert.Len(t, client.chatCalls, 2)
	// system seed + first user turn
	assert.Len(t, client.chatCalls[0], 2)
	assert.Equal(t, "system", client.chatCalls[0][0].Role)
	// system + user + assistant + second user turn
	assert.Len(t, client.chatCalls[1], 4)
	assert.Equal(t, "tudo bem?", client.chatCalls[1][3].Text)
}

func TestProcessMessage_ClearConversationResetsHistory(t *testing.T) {
	client := &scriptedAI{
		completeFn: func(prompt string) (string, error) {
			return "GENERAL", nil
		},
		chatFn: func(history []ai.Message) (string, error) {
			return "ok", nil
		},
	}
	orch := newOrchestrator(client, nil, nil)
	ctx := context.Background()

	orch.ProcessMessage(ctx, "u1", "oi", "web", nil)
	orch.ClearConversation("u1")
	orch.ProcessMessage(ctx, "u1", "oi de novo", "web", nil)

	last := client.chatCalls[len(client.chatCalls)-1]
	assert.Len(t, last, 2)
}

func TestProcessMessage_ExtraContextReachesTheModel(t *testing.T) {
	var seen string
	client := &scriptedAI{
		completeFn: func(prompt string) (string, error) {
			return "GENERAL", nil
		},
		chatFn: func(history []ai.Message) (string, error) {
			seen = history[len(history)-1].Text
			return "ok", nil
		},
	}
	orch := newOrchestrator(client, nil, nil)

	orch.ProcessMessage(context.Background(), "u1", "oi", "whatsapp", map[string]string{
		"nome":  "Ana",
		"canal": "whatsapp",
	})

	assert.Contains(t, seen, "Contexto: canal=whatsapp, nome=Ana")
	assert.Contains(t, seen, "Mensagem: oi")
}

func TestProcessMessage_PanicCollapsesIntoApology(t *testing.T) {
	orch := newOrchestrator(nil, panicFAQ{}, nil)

	reply := orch.ProcessMessage(context.Background(), "u1", "qual o horário de funcionamento?", "web", nil)
	assert.Equal(t, apology, reply)
}

func TestProcessMessage_GeneralWithoutModelApologizes(t *testing.T) {
	orch := newOrchestrator(nil, nil, nil)

	reply := orch.ProcessMessage(context.Background(), "u1", "oi, tudo certo?", "web", nil)
	assert.Equal(t, apology, reply)
}
