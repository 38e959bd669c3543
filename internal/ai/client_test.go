package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/ai"
)

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			ResponseFormat *struct {
				Type string `json:"type"`
			} `json:"response_format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Error("request must ask for a json_object response")
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("messages = %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

func TestGenerateHomework(t *testing.T) {
	srv := chatServer(t, `{"questions":[
		{"id":1,"question":"Pick the past of 'eat'.","options":["ate","eated"],"correctAnswer":"ate","explanation":"irregular"}
	]}`)
	defer srv.Close()

	c := ai.NewClient("test-key", srv.URL, "gpt-5.1")
	qs, err := c.GenerateHomework(context.Background(), "Irregular verbs", "Beginner", "Multiple Choice")
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 1 || qs[0].CorrectAnswer != "ate" {
		t.Fatalf("questions = %+v", qs)
	}
}

// Models sometimes fence the JSON despite instructions; the client has
// to strip that before parsing.
func TestGenerateHomeworkStripsCodeFences(t *testing.T) {
	srv := chatServer(t, "```json\n{\"questions\":[{\"id\":1,\"question\":\"q\",\"correctAnswer\":\"a\"}]}\n```")
	defer srv.Close()

	c := ai.NewClient("test-key", srv.URL, "gpt-5.1")
	qs, err := c.GenerateHomework(context.Background(), "t", "Beginner", "Short Answer")
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 1 {
		t.Fatalf("questions = %+v", qs)
	}
}

func TestGenerateHomeworkEmptySet(t *testing.T) {
	srv := chatServer(t, `{"questions":[]}`)
	defer srv.Close()

	c := ai.NewClient("test-key", srv.URL, "gpt-5.1")
	if _, err := c.GenerateHomework(context.Background(), "t", "Beginner", "Short Answer"); err == nil {
		t.Fatal("empty question set should be an error")
	}
}

func TestGenerateDailyQuestion(t *testing.T) {
	srv := chatServer(t, `{"question":"q","options":["a","b","c","d"],"correctAnswer":"a","explanation":"e","topic":"Idioms"}`)
	defer srv.Close()

	c := ai.NewClient("test-key", srv.URL, "gpt-5.1")
	q, err := c.GenerateDailyQuestion(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if q.Topic != "Idioms" || len(q.Options) != 4 {
		t.Fatalf("question = %+v", q)
	}
}

func TestUnconfiguredClient(t *testing.T) {
	c := ai.NewClient("", "https://api.openai.com/v1", "gpt-5.1")
	if c.IsAvailable() {
		t.Error("client without a key reports available")
	}
	if _, err := c.GenerateDailyQuestion(context.Background()); err == nil {
		t.Fatal("unconfigured client should refuse to generate")
	}
}

func TestAPIErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c := ai.NewClient("test-key", srv.URL, "gpt-5.1")
	_, err := c.GenerateDailyQuestion(context.Background())
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("got %v, want status in error", err)
	}
}
