package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"novaLetterAPI/utils"
)

const letterSystemPrompt = "You are an expert love letter writer who can create beautiful, heartfelt messages."

// Provider is one external text-generation backend. Generate returns the
// produced text or an error; an empty result is treated as a failure by the
// service so the next provider in the chain gets a chance.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt, priorContext string) (string, error)
}

// GenerationService tries providers strictly in order: provider N+1 is only
// attempted after provider N has fully failed. There is no parallel dispatch.
// When every provider fails, a static keyword-matched template is returned
// instead of an error, flagged so callers can tell it apart from real output.
type GenerationService struct {
	providers []Provider
}

func NewGenerationService(providers ...Provider) *GenerationService {
	return &GenerationService{providers: providers}
}

// NewGenerationServiceFromEnv builds the provider chain from environment
// configuration. AI_PROVIDER_ORDER selects and orders providers (default
// "openai,deepseek,huggingface"); providers without an API key are skipped
// so a missing credential degrades that provider, not the feature.
func NewGenerationServiceFromEnv() *GenerationService {
	order := os.Getenv("AI_PROVIDER_ORDER")
	if order == "" {
		order = "openai,deepseek,huggingface"
	}

	client := &http.Client{Timeout: 30 * time.Second}
	var providers []Provider
	for _, name := range strings.Split(order, ",") {
		switch strings.TrimSpace(name) {
		case "openai":
			if key := os.Getenv("OPENAI_API_KEY"); key != "" {
				providers = append(providers, NewOpenAIProvider(key, "", client))
			}
		case "deepseek":
			if key := os.Getenv("DEEPSEEK_API_KEY"); key != "" {
				providers = append(providers, NewDeepSeekProvider(key, "", client))
			}
		case "huggingface":
			if key := os.Getenv("HUGGINGFACE_API_KEY"); key != "" {
				providers = append(providers, NewHuggingFaceProvider(key, "", client))
			}
		default:
			log.Printf("GenerationService: unknown provider %q in AI_PROVIDER_ORDER, skipping", name)
		}
	}

	if len(providers) == 0 {
		log.Println("GenerationService: no provider API keys configured, only fallback templates are available")
	}
	return NewGenerationService(providers...)
}

// Generate runs the fallback chain. The returned bool is true when the text
// came from a static fallback template rather than a provider.
func (s *GenerationService) Generate(ctx context.Context, prompt, priorContext string) (string, bool, error) {
	for _, p := range s.providers {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}

		text, err := p.Generate(ctx, prompt, priorContext)
		if err != nil {
			log.Printf("GenerationService: provider %s failed: %v", p.Name(), err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			log.Printf("GenerationService: provider %s returned an empty result", p.Name())
			continue
		}
		return text, false, nil
	}

	log.Printf("GenerationService: all providers exhausted, serving %s fallback template",
		utils.FallbackLetterCategory(prompt))
	return utils.FallbackLetter(prompt), true, nil
}

// chatProvider covers the OpenAI-compatible chat completion APIs (OpenAI
// itself and DeepSeek share the request/response shape).
type chatProvider struct {
	name    string
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewOpenAIProvider targets the OpenAI chat completions API. baseURL is
// overridable for tests; empty means the public endpoint.
func NewOpenAIProvider(apiKey, baseURL string, client *http.Client) Provider {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &chatProvider{name: "openai", apiKey: apiKey, baseURL: baseURL, model: "gpt-3.5-turbo", client: client}
}

// NewDeepSeekProvider targets DeepSeek's OpenAI-compatible endpoint.
func NewDeepSeekProvider(apiKey, baseURL string, client *http.Client) Provider {
	if baseURL == "" {
		baseURL = "https://api.deepseek.com"
	}
	return &chatProvider{name: "deepseek", apiKey: apiKey, baseURL: baseURL, model: "deepseek-chat", client: client}
}

func (p *chatProvider) Name() string { return p.name }

func (p *chatProvider) Generate(ctx context.Context, prompt, priorContext string) (string, error) {
	userContent := prompt
	if priorContext != "" {
		userContent = fmt.Sprintf("%s\n\nPrior conversation:\n%s", prompt, priorContext)
	}

	body, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: letterSystemPrompt},
			{Role: "user", Content: userContent},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return "", fmt.Errorf("malformed response body: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// huggingFaceProvider targets the Hugging Face inference API's text
// generation task.
type huggingFaceProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type hfRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		MaxNewTokens int     `json:"max_new_tokens"`
		Temperature  float64 `json:"temperature"`
		TopP         float64 `json:"top_p"`
	} `json:"parameters"`
}

type hfResult struct {
	GeneratedText string `json:"generated_text"`
}

func NewHuggingFaceProvider(apiKey, baseURL string, client *http.Client) Provider {
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co"
	}
	return &huggingFaceProvider{apiKey: apiKey, baseURL: baseURL, model: "gpt2", client: client}
}

func (p *huggingFaceProvider) Name() string { return "huggingface" }

func (p *huggingFaceProvider) Generate(ctx context.Context, prompt, priorContext string) (string, error) {
	var reqBody hfRequest
	reqBody.Inputs = fmt.Sprintf("%s\n\n%s\n\nDear friend,\n\n", letterSystemPrompt, prompt)
	if priorContext != "" {
		reqBody.Inputs = fmt.Sprintf("%s\n\n%s\n\n%s\n\nDear friend,\n\n", letterSystemPrompt, priorContext, prompt)
	}
	reqBody.Parameters.MaxNewTokens = 200
	reqBody.Parameters.Temperature = 0.7
	reqBody.Parameters.TopP = 0.9

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/models/"+p.model, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var results []hfResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&results); err != nil {
		return "", fmt.Errorf("malformed response body: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("response contained no generations")
	}
	return results[0].GeneratedText, nil
}
