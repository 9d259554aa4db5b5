package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"studyhub_backend/internal/config"
	"studyhub_backend/internal/model"
)

// AIService calls an OpenAI-compatible chat-completions endpoint to draft
// quiz questions for instructors.
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AIService) chat(ctx context.Context, system, prompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("AI returned no choices")
}

// GeneratedQuestion is the draft shape handed back to the instructor; it is
// not stored until the instructor saves it through the quiz endpoints.
type GeneratedQuestion struct {
	Text          string `json:"text"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	Points        int    `json:"points"`
}

const generateSystemPrompt = "You are a quiz author for a study platform. " +
	"Reply with a raw JSON array only: no prose, no markdown fences. " +
	"Each element must have the keys text, optionA, optionB, optionC, optionD, " +
	"correctAnswer (one of \"A\",\"B\",\"C\",\"D\"), explanation, and points (a positive integer)."

// GenerateQuestions asks the model for count multiple-choice questions on a
// topic and parses the strict-JSON reply.
func (s *AIService) GenerateQuestions(ctx context.Context, topic, difficulty string, count int) ([]GeneratedQuestion, error) {
	if count <= 0 {
		count = 5
	}
	if count > 20 {
		count = 20
	}
	if difficulty == "" {
		difficulty = "medium"
	}

	prompt := fmt.Sprintf("Write %d multiple-choice questions about %q at %s difficulty.", count, topic, difficulty)

	content, err := s.chat(ctx, generateSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	return ParseGeneratedQuestions(content)
}

// ParseGeneratedQuestions decodes the model reply, tolerating markdown fences
// and surrounding prose that some models emit despite instructions.
func ParseGeneratedQuestions(content string) ([]GeneratedQuestion, error) {
	payload := extractJSONArray(content)
	if payload == "" {
		return nil, fmt.Errorf("AI reply contains no JSON array")
	}

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(payload), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse AI reply: %w", err)
	}

	valid := make([]GeneratedQuestion, 0, len(questions))
	for _, q := range questions {
		if q.Text == "" || !model.ValidAnswerOption(q.CorrectAnswer) {
			continue
		}
		if q.Points <= 0 {
			q.Points = 1
		}
		valid = append(valid, q)
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf("AI reply contained no usable questions")
	}
	return valid, nil
}

// extractJSONArray cuts the first top-level JSON array out of the reply.
func extractJSONArray(content string) string {
	content = strings.TrimSpace(content)

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return ""
	}
	return content[start : end+1]
}
