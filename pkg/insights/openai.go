package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/matst80/shophub-catalog/pkg/types"
)

const (
	defaultChatEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultChatModel    = "gpt-3.5-turbo"
	// Only the head of the filtered view is sent to the model.
	MaxPromptProducts = 10
	maxTokens         = 300
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// OpenAIClient implements Generator against an OpenAI-compatible
// chat-completions endpoint.
type OpenAIClient struct {
	Model       string
	ApiEndpoint string
	ApiKey      string
	HttpClient  *http.Client

	inFlight atomic.Bool
}

func NewOpenAIClient(apiKey, model, endpoint string) *OpenAIClient {
	if model == "" {
		model = defaultChatModel
	}
	if endpoint == "" {
		endpoint = defaultChatEndpoint
	}
	return &OpenAIClient{
		Model:       model,
		ApiEndpoint: endpoint,
		ApiKey:      apiKey,
		HttpClient:  &http.Client{},
	}
}

// BuildPrompt renders the request prompt from at most MaxPromptProducts
// items. Truncation happens here so it is testable without a network.
func BuildPrompt(products []types.Product) (string, error) {
	if len(products) > MaxPromptProducts {
		products = products[:MaxPromptProducts]
	}
	data, err := json.Marshal(products)
	if err != nil {
		return "", fmt.Errorf("error marshaling products for prompt: %w", err)
	}
	var builder strings.Builder
	builder.WriteString("Given the following product data:\n")
	builder.Write(data)
	builder.WriteString("\n")
	builder.WriteString("1. Predict which products are likely to increase in price soon.\n")
	builder.WriteString("2. Suggest the best supplier for each product (if supplier info is present).\n")
	builder.WriteString("3. Identify any trending products.\n")
	builder.WriteString("Respond in a concise, user-friendly way.")
	return builder.String(), nil
}

// Generate implements Generator. A second call while one is outstanding
// fails fast with ErrInFlight.
func (o *OpenAIClient) Generate(ctx context.Context, products []types.Product) (string, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return "", ErrInFlight
	}
	defer o.inFlight.Store(false)

	prompt, err := BuildPrompt(products)
	if err != nil {
		return "", err
	}

	reqBody := chatRequest{
		Model:     o.Model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.ApiEndpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.ApiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.ApiKey)
	}

	resp, err := o.HttpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request to insight API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-OK response from insight API: %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("error decoding response from insight API: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("insight API returned no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}
