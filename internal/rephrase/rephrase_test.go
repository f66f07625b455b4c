package rephrase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLineSpan(t *testing.T) {
	t.Parallel()

	src := "alpha\nbeta\ngamma"
	cases := []struct {
		from, to int
		want     string
	}{
		{0, 0, "alpha"},
		{1, 1, "beta"},
		{2, 0, "alpha\nbeta\ngamma"},
		{1, 2, "beta\ngamma"},
	}
	for _, tc := range cases {
		start, end, err := LineSpan(src, tc.from, tc.to)
		if err != nil {
			t.Fatalf("LineSpan(%d, %d): %v", tc.from, tc.to, err)
		}
		if got := src[start:end]; got != tc.want {
			t.Fatalf("LineSpan(%d, %d) = %q, want %q", tc.from, tc.to, got, tc.want)
		}
	}

	if _, _, err := LineSpan(src, 0, 3); !errors.Is(err, ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}
}

func TestSplice(t *testing.T) {
	t.Parallel()

	got, err := Splice("hello world", 6, 11, "there")
	if err != nil || got != "hello there" {
		t.Fatalf("Splice = %q, %v", got, err)
	}

	src := "héllo"
	if _, err := Splice(src, 2, 3, "e"); !errors.Is(err, ErrRange) {
		t.Fatalf("expected rune boundary error, got %v", err)
	}
	if out, err := Splice(src, 4, 99, ""); !errors.Is(err, ErrRange) || out != src {
		t.Fatalf("expected range error with source unchanged, got %q, %v", out, err)
	}
}

func TestSelectRejectsEmpty(t *testing.T) {
	t.Parallel()

	if _, err := Select("a   b", 1, 4); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	sel, err := Select("a bc d", 2, 4)
	if err != nil || sel.Text() != "bc" {
		t.Fatalf("Select = %#v, %v", sel, err)
	}
}

func TestApplyDetectsStaleSource(t *testing.T) {
	t.Parallel()

	sel, err := Select("keep this part", 5, 9)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	got, err := Apply("keep this part", sel, "that")
	if err != nil || got != "keep that part" {
		t.Fatalf("Apply = %q, %v", got, err)
	}

	if got, err := Apply("keep this part!", sel, "that"); !errors.Is(err, ErrStale) || got != "keep this part!" {
		t.Fatalf("expected stale error with text unchanged, got %q, %v", got, err)
	}
}

func TestCommand(t *testing.T) {
	t.Parallel()

	sel, _ := Select("one two", 4, 7)
	upper := RephraserFunc(func(ctx context.Context, text string) (string, error) {
		return strings.ToUpper(text), nil
	})
	msg := Command(context.Background(), upper, sel)().(ResultMsg)
	if msg.Err != nil || msg.Text != "TWO" {
		t.Fatalf("unexpected result %#v", msg)
	}

	failing := RephraserFunc(func(ctx context.Context, text string) (string, error) {
		return "", errors.New("quota")
	})
	msg = Command(context.Background(), failing, sel)().(ResultMsg)
	if msg.Err == nil || msg.Text != "" {
		t.Fatalf("expected failure, got %#v", msg)
	}

	msg = Command(context.Background(), nil, sel)().(ResultMsg)
	if msg.Err == nil {
		t.Fatalf("expected error without a rephraser")
	}
}

func TestOpenAIRephrase(t *testing.T) {
	t.Parallel()

	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "test-model",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  A clearer sentence.\n"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2}
		}`)
	}))
	defer srv.Close()

	r := NewOpenAI("test-key", "test-model", srv.URL+"/v1")
	out, err := r.Rephrase(context.Background(), "a sentence that is unclear")
	if err != nil {
		t.Fatalf("Rephrase: %v", err)
	}
	if out != "A clearer sentence." {
		t.Fatalf("unexpected rephrase %q", out)
	}
	if got.Model != "test-model" || len(got.Messages) != 2 || got.Messages[1].Content != "a sentence that is unclear" {
		t.Fatalf("unexpected request %#v", got)
	}

	if _, err := r.Rephrase(context.Background(), "  "); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}
