package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the fast model with the looser rate limit.
const DefaultModel = "gemini-2.5-flash"

// Models lists the supported Gemini models.
var Models = map[string]string{
	"gemini-2.5-flash": "Gemini 2.5 Flash (fast, looser rate limit)",
	"gemini-2.5-pro":   "Gemini 2.5 Pro (higher quality, strict rate limit)",
}

// GeminiConfig configures a Gemini advisor.
type GeminiConfig struct {
	APIKey   string
	Model    string
	Language string
}

// ValidateAPIKey checks the shape of a Google AI Studio key.
func ValidateAPIKey(key string) error {
	switch {
	case key == "":
		return errors.New("api key is empty")
	case !strings.HasPrefix(key, "AIza"):
		return errors.New("api key must start with AIza")
	case len(key) < 30:
		return errors.New("api key is too short")
	}
	return nil
}

type generateFunc func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)

// Gemini produces commentary through the Gemini API. One request runs at a time.
type Gemini struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	language  string

	mu       sync.Mutex
	chat     *genai.ChatSession
	generate generateFunc
	send     generateFunc
}

// NewGemini creates a Gemini advisor. The client is not contacted until the first request.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if err := ValidateAPIKey(cfg.APIKey); err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if _, ok := Models[cfg.Model]; !ok {
		return nil, fmt.Errorf("unsupported model %q", cfg.Model)
	}
	if cfg.Language == "" {
		cfg.Language = "English"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	m := client.GenerativeModel(cfg.Model)
	m.SetTemperature(0.7)
	m.SetTopK(40)
	m.SetTopP(0.95)
	m.SetMaxOutputTokens(2048)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(SystemPrompt)}}

	g := &Gemini{
		client:    client,
		model:     m,
		modelName: cfg.Model,
		language:  cfg.Language,
	}
	g.generate = func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
		return g.model.GenerateContent(ctx, genai.Text(prompt))
	}
	g.send = func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
		if g.chat == nil {
			g.chat = g.model.StartChat()
		}
		return g.chat.SendMessage(ctx, genai.Text(prompt))
	}

	log.Printf("[INFO] gemini advisor ready: %s", cfg.Model)
	return g, nil
}

func (g *Gemini) Name() string { return "gemini:" + g.modelName }

// Commentary asks for a one-shot analysis of the briefing.
func (g *Gemini) Commentary(ctx context.Context, b Briefing) (string, error) {
	return g.do(ctx, g.generate, CommentaryPrompt(b, g.language))
}

// Ask continues the chat session with a user question.
func (g *Gemini) Ask(ctx context.Context, b Briefing, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errors.New("question is empty")
	}
	return g.do(ctx, g.send, QuestionPrompt(b, question, g.language))
}

// ResetChat drops the chat history.
func (g *Gemini) ResetChat() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chat = nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *Gemini) do(ctx context.Context, fn generateFunc, prompt string) (string, error) {
	if !g.mu.TryLock() {
		return "", unavailable(ReasonBusy, ErrBusy)
	}
	defer g.mu.Unlock()

	resp, err := fn(ctx, prompt)
	if err != nil {
		return "", classify(err)
	}
	text := getText(resp)
	if strings.TrimSpace(text) == "" {
		return "", unavailable(ReasonEmpty, errors.New("empty response"))
	}
	return text, nil
}

func getText(resp *genai.GenerateContentResponse) string {
	var text string
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text += string(txt)
			}
		}
	}
	return text
}
