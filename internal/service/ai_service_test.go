package service

import (
	"strings"
	"testing"
)

const sampleQuestionJSON = `[
  {
    "text": "What does Big-O notation describe?",
    "optionA": "Exact runtime",
    "optionB": "Growth rate",
    "optionC": "Memory address",
    "optionD": "Compiler version",
    "correctAnswer": "B",
    "explanation": "It bounds how cost grows with input size.",
    "points": 2
  },
  {
    "text": "Which structure gives O(1) average lookup?",
    "optionA": "Hash map",
    "optionB": "Linked list",
    "optionC": "Binary tree",
    "optionD": "Queue",
    "correctAnswer": "A",
    "explanation": "",
    "points": 0
  }
]`

func TestParseGeneratedQuestions(t *testing.T) {
	questions, err := ParseGeneratedQuestions(sampleQuestionJSON)
	if err != nil {
		t.Fatalf("ParseGeneratedQuestions returned error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0].CorrectAnswer != "B" {
		t.Errorf("first CorrectAnswer = %q, want B", questions[0].CorrectAnswer)
	}
	if questions[0].Points != 2 {
		t.Errorf("first Points = %d, want 2", questions[0].Points)
	}
	// Non-positive points default to 1.
	if questions[1].Points != 1 {
		t.Errorf("second Points = %d, want 1", questions[1].Points)
	}
}

func TestParseGeneratedQuestionsWithMarkdownFence(t *testing.T) {
	fenced := "```json\n" + sampleQuestionJSON + "\n```"

	questions, err := ParseGeneratedQuestions(fenced)
	if err != nil {
		t.Fatalf("ParseGeneratedQuestions returned error: %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("got %d questions, want 2", len(questions))
	}
}

func TestParseGeneratedQuestionsWithSurroundingProse(t *testing.T) {
	chatty := "Sure! Here are your questions:\n\n" + sampleQuestionJSON + "\n\nLet me know if you need more."

	questions, err := ParseGeneratedQuestions(chatty)
	if err != nil {
		t.Fatalf("ParseGeneratedQuestions returned error: %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("got %d questions, want 2", len(questions))
	}
}

func TestParseGeneratedQuestionsDropsInvalidEntries(t *testing.T) {
	mixed := `[
  {"text": "Valid?", "optionA": "a", "optionB": "b", "optionC": "c", "optionD": "d", "correctAnswer": "C", "points": 1},
  {"text": "", "correctAnswer": "A", "points": 1},
  {"text": "Bad answer tag", "correctAnswer": "E", "points": 1}
]`

	questions, err := ParseGeneratedQuestions(mixed)
	if err != nil {
		t.Fatalf("ParseGeneratedQuestions returned error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	if questions[0].Text != "Valid?" {
		t.Errorf("kept question %q, want the valid one", questions[0].Text)
	}
}

func TestParseGeneratedQuestionsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty reply", ""},
		{"prose only", "I could not generate questions for that topic."},
		{"malformed json", "[{\"text\": }"},
		{"all entries invalid", `[{"text": "", "correctAnswer": "Z"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGeneratedQuestions(tt.content); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	got := extractJSONArray("noise [1, 2, 3] trailing")
	if got != "[1, 2, 3]" {
		t.Errorf("extractJSONArray = %q, want %q", got, "[1, 2, 3]")
	}

	if got := extractJSONArray("no array here"); got != "" {
		t.Errorf("extractJSONArray = %q, want empty", got)
	}

	if got := extractJSONArray("] backwards ["); got != "" {
		t.Errorf("extractJSONArray = %q, want empty", got)
	}
}

func TestGenerateSystemPromptDemandsRawJSON(t *testing.T) {
	if !strings.Contains(generateSystemPrompt, "JSON array") {
		t.Error("system prompt does not pin the reply format")
	}
}
