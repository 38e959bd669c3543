package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/homework"
)

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
	}
}

func (c *Client) IsAvailable() bool { return c.apiKey != "" }

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const systemPrompt = "You are a helpful English teacher."

// GenerateHomework asks the model for a question set matching the
// requested topic, difficulty and format.
func (c *Client) GenerateHomework(ctx context.Context, topic, difficulty, hwType string) ([]homework.Question, error) {
	prompt := fmt.Sprintf(`Generate a %s level English homework exercise about %q.
The format should be %q.
Return ONLY a JSON object with a "questions" array.
Each question object should have:
- "id": number
- "question": string
- "options": array of strings (if multiple choice)
- "correctAnswer": string
- "explanation": string

Do not include any markdown formatting or explanations outside the JSON.`,
		difficulty, topic, hwType)

	var payload struct {
		Questions []homework.Question `json:"questions"`
	}
	if err := c.completeJSON(ctx, prompt, &payload); err != nil {
		return nil, err
	}
	if len(payload.Questions) == 0 {
		return nil, fmt.Errorf("model returned no questions")
	}
	return payload.Questions, nil
}

// DailyQuestion is one generated multiple-choice challenge.
type DailyQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic"`
}

// GenerateDailyQuestion produces a single multiple-choice question for
// the daily challenge.
func (c *Client) GenerateDailyQuestion(ctx context.Context) (DailyQuestion, error) {
	const prompt = `Generate one interesting English learning question as a daily challenge.
Return ONLY a JSON object with:
- "question": string
- "options": array of exactly 4 strings
- "correctAnswer": string (must be one of the options)
- "explanation": string
- "topic": short string naming the topic (e.g. "Idioms", "Grammar")

Do not include any markdown formatting or explanations outside the JSON.`

	var q DailyQuestion
	if err := c.completeJSON(ctx, prompt, &q); err != nil {
		return DailyQuestion{}, err
	}
	if q.Question == "" || q.CorrectAnswer == "" {
		return DailyQuestion{}, fmt.Errorf("model returned incomplete question")
	}
	return q, nil
}

func (c *Client) completeJSON(ctx context.Context, prompt string, out any) error {
	if !c.IsAvailable() {
		return fmt.Errorf("AI generation is not configured")
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &respFormat{Type: "json_object"},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("completion API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return fmt.Errorf("parse API response: %w", err)
	}
	if chatResp.Error != nil {
		return fmt.Errorf("completion API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return fmt.Errorf("empty response from model")
	}

	content := cleanJSONContent(chatResp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("model returned invalid JSON: %w", err)
	}
	return nil
}

// Some models wrap JSON in code fences despite instructions.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
