package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTelegram_Send(t *testing.T) {
	var gotPath string
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("Failed to parse form: %v", err)
		}
		gotForm = map[string]string{
			"chat_id":                  r.PostForm.Get("chat_id"),
			"text":                     r.PostForm.Get("text"),
			"parse_mode":               r.PostForm.Get("parse_mode"),
			"disable_web_page_preview": r.PostForm.Get("disable_web_page_preview"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer server.Close()

	sender := NewTelegram("123:abc", "-100500").WithAPIURL(server.URL)

	if err := sender.Send(context.Background(), "<b>hello</b>"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("Expected path '/bot123:abc/sendMessage', got '%s'", gotPath)
	}
	expected := map[string]string{
		"chat_id":                  "-100500",
		"text":                     "<b>hello</b>",
		"parse_mode":               "HTML",
		"disable_web_page_preview": "true",
	}
	for key, value := range expected {
		if gotForm[key] != value {
			t.Errorf("Expected %s '%s', got '%s'", key, value, gotForm[key])
		}
	}
}

func TestTelegram_SendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	sender := NewTelegram("token", "chat").WithAPIURL(server.URL)

	err := sender.Send(context.Background(), "text")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("Expected error to carry API description, got: %v", err)
	}
}

func TestTelegram_SendNotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false}`))
	}))
	defer server.Close()

	sender := NewTelegram("token", "chat").WithAPIURL(server.URL)

	if err := sender.Send(context.Background(), "text"); err == nil {
		t.Error("Expected error for ok=false response, got nil")
	}
}

func TestNewSender_MissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		chatID string
	}{
		{"no token", "", "chat"},
		{"no chat", "token", ""},
		{"nothing", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := NewSender(tt.token, tt.chatID)
			if _, ok := sender.(Noop); !ok {
				t.Fatalf("Expected Noop sender, got %T", sender)
			}
			if err := sender.Send(context.Background(), "text"); !errors.Is(err, ErrNotConfigured) {
				t.Errorf("Expected ErrNotConfigured, got: %v", err)
			}
		})
	}
}

func TestNewSender_Configured(t *testing.T) {
	if _, ok := NewSender("token", "chat").(*Telegram); !ok {
		t.Error("Expected Telegram sender when credentials are set")
	}
}
