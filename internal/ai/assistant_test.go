package ai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ianbedrick007/aichatbot/internal/ai"
	"github.com/ianbedrick007/aichatbot/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var testMetrics = metrics.NewMetrics()

func completionWith(message map[string]any) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"model":   "gpt-4o",
		"choices": []map[string]any{{"index": 0, "message": message, "finish_reason": "stop"}},
	}
}

func TestAssistant_Respond(t *testing.T) {
	t.Run("returns final content", func(t *testing.T) {
		var captured map[string]any

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&captured)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(completionWith(map[string]any{
				"role":    "assistant",
				"content": "We close at 6pm.",
			}))
		}))
		defer server.Close()

		assistant := ai.NewAssistant(ai.Config{BaseURL: server.URL, APIKey: "test", Model: "gpt-4o"},
			ai.NewRegistry(), testMetrics, zap.NewNop())

		response, err := assistant.Respond(context.Background(), ai.RespondCommand{
			BusinessID: 1,
			Persona:    "Shoe store on Oxford Street",
			History:    []ai.Turn{{Text: "hi", IsBot: false}, {Text: "hello!", IsBot: true}},
			Prompt:     "when do you close?",
		})

		assert.NoError(t, err)
		assert.Equal(t, "We close at 6pm.", response)

		messages := captured["messages"].([]any)
		// system + two history turns + current prompt
		assert.Len(t, messages, 4)

		system := messages[0].(map[string]any)
		assert.Equal(t, "system", system["role"])
		assert.Contains(t, system["content"], "Shoe store on Oxford Street")

		last := messages[3].(map[string]any)
		assert.Equal(t, "user", last["role"])
		assert.Equal(t, "when do you close?", last["content"])
	})

	t.Run("executes tool calls and asks again", func(t *testing.T) {
		requests := 0

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.Header().Set("Content-Type", "application/json")

			if requests == 1 {
				json.NewEncoder(w).Encode(completionWith(map[string]any{
					"role": "assistant",
					"tool_calls": []map[string]any{{
						"id":   "call-1",
						"type": "function",
						"function": map[string]any{
							"name":      "lookup",
							"arguments": `{"key":"hours"}`,
						},
					}},
				}))
				return
			}

			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			messages := body["messages"].([]any)
			toolTurn := messages[len(messages)-1].(map[string]any)
			assert.Equal(t, "tool", toolTurn["role"])
			assert.Equal(t, "call-1", toolTurn["tool_call_id"])

			json.NewEncoder(w).Encode(completionWith(map[string]any{
				"role":    "assistant",
				"content": "Open 9 to 6.",
			}))
		}))
		defer server.Close()

		registry := ai.NewRegistry()
		registry.Register(&ai.Tool{
			Name: "lookup",
			Parameters: map[string]any{
				"type":     "object",
				"required": []string{"key"},
			},
			Handler: func(ctx context.Context, call ai.Call) (any, error) {
				return map[string]any{"hours": "9-18"}, nil
			},
		})

		assistant := ai.NewAssistant(ai.Config{BaseURL: server.URL, APIKey: "test", Model: "gpt-4o"},
			registry, testMetrics, zap.NewNop())

		executed := testutil.ToFloat64(testMetrics.ToolExecutions.WithLabelValues("lookup", "ok"))

		response, err := assistant.Respond(context.Background(), ai.RespondCommand{
			BusinessID: 1,
			Prompt:     "what are your hours?",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Open 9 to 6.", response)
		assert.Equal(t, 2, requests)
		assert.Equal(t, executed+1,
			testutil.ToFloat64(testMetrics.ToolExecutions.WithLabelValues("lookup", "ok")))
	})

	t.Run("tool failure is counted and fed back", func(t *testing.T) {
		requests := 0

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.Header().Set("Content-Type", "application/json")

			if requests == 1 {
				json.NewEncoder(w).Encode(completionWith(map[string]any{
					"role": "assistant",
					"tool_calls": []map[string]any{{
						"id":   "call-1",
						"type": "function",
						"function": map[string]any{
							"name":      "lookup",
							"arguments": `{"key":"hours"}`,
						},
					}},
				}))
				return
			}

			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			messages := body["messages"].([]any)
			toolTurn := messages[len(messages)-1].(map[string]any)
			assert.Contains(t, toolTurn["content"], "Error:")

			json.NewEncoder(w).Encode(completionWith(map[string]any{
				"role":    "assistant",
				"content": "I couldn't look that up.",
			}))
		}))
		defer server.Close()

		registry := ai.NewRegistry()
		registry.Register(&ai.Tool{
			Name: "lookup",
			Parameters: map[string]any{
				"type":     "object",
				"required": []string{"key"},
			},
			Handler: func(ctx context.Context, call ai.Call) (any, error) {
				return nil, errors.New("store unavailable")
			},
		})

		assistant := ai.NewAssistant(ai.Config{BaseURL: server.URL, APIKey: "test", Model: "gpt-4o"},
			registry, testMetrics, zap.NewNop())

		failed := testutil.ToFloat64(testMetrics.ToolExecutions.WithLabelValues("lookup", "error"))

		response, err := assistant.Respond(context.Background(), ai.RespondCommand{
			BusinessID: 1,
			Prompt:     "what are your hours?",
		})

		assert.NoError(t, err)
		assert.Equal(t, "I couldn't look that up.", response)
		assert.Equal(t, failed+1,
			testutil.ToFloat64(testMetrics.ToolExecutions.WithLabelValues("lookup", "error")))
	})

	t.Run("image turn is sent as data url part", func(t *testing.T) {
		var captured map[string]any

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&captured)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(completionWith(map[string]any{
				"role":    "assistant",
				"content": "Nice sneakers.",
			}))
		}))
		defer server.Close()

		assistant := ai.NewAssistant(ai.Config{BaseURL: server.URL, APIKey: "test", Model: "gpt-4o"},
			ai.NewRegistry(), testMetrics, zap.NewNop())

		_, err := assistant.Respond(context.Background(), ai.RespondCommand{
			BusinessID: 1,
			Prompt:     "what do you think?",
			Image:      &ai.Image{Base64: "aW1hZ2U=", MimeType: "image/png"},
		})

		assert.NoError(t, err)

		messages := captured["messages"].([]any)
		last := messages[len(messages)-1].(map[string]any)
		parts := last["content"].([]any)
		assert.Len(t, parts, 2)

		imagePart := parts[1].(map[string]any)
		assert.Equal(t, "image_url", imagePart["type"])
		assert.Equal(t, "data:image/png;base64,aW1hZ2U=",
			imagePart["image_url"].(map[string]any)["url"])
	})

	t.Run("upstream error propagates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		assistant := ai.NewAssistant(ai.Config{BaseURL: server.URL, APIKey: "test", Model: "gpt-4o"},
			ai.NewRegistry(), testMetrics, zap.NewNop())

		_, err := assistant.Respond(context.Background(), ai.RespondCommand{BusinessID: 1, Prompt: "hi"})

		assert.Error(t, err)
	})
}
