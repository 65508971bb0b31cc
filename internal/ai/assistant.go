package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ianbedrick007/aichatbot/internal/metrics"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
	"go.uber.org/zap"
)

// One round of tool execution normally suffices; the cap only guards
// against a model that keeps asking for tools.
const maxToolRounds = 3

type Assistant interface {
	Respond(ctx context.Context, cmd RespondCommand) (string, error)
}

type RespondCommand struct {
	BusinessID int64
	Persona    string
	History    []Turn
	Prompt     string
	Image      *Image
}

// Turn is one prior message of the bounded history window.
type Turn struct {
	Text  string
	IsBot bool
}

// Image is an already-downloaded attachment, embedded into the current turn
// as a base64 data URL.
type Image struct {
	Base64   string
	MimeType string
}

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

type assistant struct {
	client   openai.Client
	model    string
	registry *Registry
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewAssistant(cfg Config, registry *Registry, m *metrics.Metrics, logger *zap.Logger) Assistant {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &assistant{
		client:   openai.NewClient(opts...),
		model:    cfg.Model,
		registry: registry,
		metrics:  m,
		logger:   logger,
	}
}

// Respond forwards the conversation to the chat-completion API. On a
// tool-call response it executes the named local handlers, appends their
// results as follow-up turns, and asks again for a natural-language answer.
func (a *assistant) Respond(ctx context.Context, cmd RespondCommand) (string, error) {
	messages := a.buildMessages(cmd)
	tools := a.toolParams()

	for round := 0; round <= maxToolRounds; round++ {
		params := openai.ChatCompletionNewParams{
			Model:    a.model,
			Messages: messages,
			Tools:    tools,
		}

		resp, err := a.client.Chat.Completions.New(ctx, params)
		if err != nil {
			a.logger.Error("Chat completion request failed", zap.Error(err))
			return "", err
		}

		if len(resp.Choices) == 0 {
			return "", errors.New("chat completion returned no choices")
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		assistantParam := msg.ToAssistantMessageParam()
		messages = append(messages, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistantParam})

		for _, call := range msg.ToolCalls {
			name := strings.TrimSpace(call.Function.Name)

			result, execErr := a.registry.Execute(ctx, name, call.Function.Arguments, cmd.BusinessID)
			if execErr != nil {
				a.metrics.RecordToolExecution(name, "error")
				a.logger.Warn("Tool execution failed",
					zap.String("tool", name),
					zap.Error(execErr))
				result = "Error: " + execErr.Error()
			} else {
				a.metrics.RecordToolExecution(name, "ok")
				a.logger.Info("Tool executed",
					zap.String("tool", name),
					zap.Int64("businessID", cmd.BusinessID))
			}

			messages = append(messages, openai.ToolMessage(result, call.ID))
		}
	}

	return "", fmt.Errorf("model kept requesting tools after %d rounds", maxToolRounds)
}

func (a *assistant) buildMessages(cmd RespondCommand) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(cmd.History)+2)
	messages = append(messages, openai.SystemMessage(SystemPrompt(cmd.Persona)))

	for _, turn := range cmd.History {
		if turn.IsBot {
			messages = append(messages, openai.AssistantMessage(turn.Text))
		} else {
			messages = append(messages, openai.UserMessage(turn.Text))
		}
	}

	if cmd.Image != nil {
		messages = append(messages, imageUserMessage(cmd.Prompt, cmd.Image))
	} else {
		messages = append(messages, openai.UserMessage(cmd.Prompt))
	}

	return messages
}

// imageUserMessage builds a multi-part user turn: the text prompt plus the
// attachment as a data URL, for vision-capable models.
func imageUserMessage(prompt string, image *Image) openai.ChatCompletionMessageParamUnion {
	dataURL := fmt.Sprintf("data:%s;base64,%s", image.MimeType, image.Base64)

	parts := []openai.ChatCompletionContentPartUnionParam{
		{
			OfText: &openai.ChatCompletionContentPartTextParam{Text: prompt},
		},
		{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL:    dataURL,
					Detail: "auto",
				},
			},
		},
	}

	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfArrayOfContentParts: parts,
			},
		},
	}
}

func (a *assistant) toolParams() []openai.ChatCompletionToolUnionParam {
	var params []openai.ChatCompletionToolUnionParam
	for _, tool := range a.registry.List() {
		function := openai.FunctionDefinitionParam{
			Name:       tool.Name,
			Parameters: tool.Parameters,
		}
		if tool.Description != "" {
			function.Description = openai.String(tool.Description)
		}

		params = append(params, openai.ChatCompletionToolUnionParam{
			OfFunction: &openai.ChatCompletionFunctionToolParam{
				Function: function,
				Type:     constant.ValueOf[constant.Function](),
			},
		})
	}

	return params
}
