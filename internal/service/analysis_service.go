package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/noah-isme/maum-diary-api/internal/dto"
	"github.com/noah-isme/maum-diary-api/internal/models"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
)

const analysisSystemPrompt = "당신은 학생의 정서를 따뜻하게 살피는 상담 교사입니다. 교사가 학생을 이해하는 데 도움이 되도록 간결하고 공감적으로 답해 주세요."

const noRecord = "기록 없음"

const singleEntryTemplate = `다음은 한 학생의 하루 감정 일기입니다.

오늘의 감정: %s
감사한 일: %s
하고 싶은 말: %s

이 학생의 오늘 정서 상태를 3~4문장으로 분석하고, 교사가 건넬 만한 한마디를 제안해 주세요.`

const historyTemplate = `다음은 한 학생이 그동안 기록한 감정 일기 전체입니다.

[감정 기록]
%s

[감사 기록]
%s

[메시지 기록]
%s

이 학생의 정서 변화 흐름과 눈에 띄는 신호를 분석하고, 교사가 지도에 참고할 점을 정리해 주세요.`

// completionClient is the single remote call the requester makes: one
// prompt in, one free-text report out. No retry, no streaming.
type completionClient interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type historyProvider interface {
	History(ctx context.Context, name string) (*models.DiaryBook, error)
}

// AnalysisService formats diary data into prompts and obtains free-text
// reports from the completion service. An unset credential disables the
// feature rather than failing requests with transport errors.
type AnalysisService struct {
	diaries   historyProvider
	completer completionClient
	logger    *zap.Logger
}

// NewAnalysisService constructs an AnalysisService. A nil completer means
// the analysis credential is absent and every call fails recoverably.
func NewAnalysisService(diaries historyProvider, completer completionClient, logger *zap.Logger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{diaries: diaries, completer: completer, logger: logger}
}

// AnalyzeEntry runs single-entry mode for one (student, date) pair.
func (s *AnalysisService) AnalyzeEntry(ctx context.Context, name, date string) (*dto.AnalysisResponse, error) {
	if s.completer == nil {
		return nil, appErrors.ErrAnalysisUnavailable
	}

	book, err := s.diaries.History(ctx, name)
	if err != nil {
		return nil, err
	}

	entry, found := book.Entries.FindByDate(date)
	if !found {
		return nil, appErrors.Clone(appErrors.ErrEntryNotFound, fmt.Sprintf("no diary entry on %s", date))
	}

	prompt := fmt.Sprintf(singleEntryTemplate,
		orNoRecord(entry.Emotion),
		orNoRecord(entry.Gratitude),
		orNoRecord(entry.Message))

	report, err := s.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &dto.AnalysisResponse{Name: name, Report: report}, nil
}

// AnalyzeHistory runs cumulative mode over the student's full record
// sequence. The history is passed through whole; length enforcement belongs
// to the service boundary, so an oversized prompt surfaces as
// ANALYSIS_REQUEST_FAILED from upstream.
func (s *AnalysisService) AnalyzeHistory(ctx context.Context, name string) (*dto.AnalysisResponse, error) {
	if s.completer == nil {
		return nil, appErrors.ErrAnalysisUnavailable
	}

	book, err := s.diaries.History(ctx, name)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(historyTemplate,
		historySection(book.Entries, func(e models.DiaryEntry) *string { return e.Emotion }),
		historySection(book.Entries, func(e models.DiaryEntry) *string { return e.Gratitude }),
		historySection(book.Entries, func(e models.DiaryEntry) *string { return e.Message }))

	report, err := s.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &dto.AnalysisResponse{Name: name, Report: report}, nil
}

func (s *AnalysisService) complete(ctx context.Context, prompt string) (string, error) {
	report, err := s.completer.Complete(ctx, analysisSystemPrompt, prompt)
	if err != nil {
		s.logger.Warn("analysis request failed", zap.Error(err))
		return "", appErrors.Wrap(err, appErrors.ErrAnalysisRequestFailed.Code, appErrors.ErrAnalysisRequestFailed.Status, appErrors.ErrAnalysisRequestFailed.Message)
	}
	return report, nil
}

// historySection builds "<date>: <value>" lines for one field, skipping
// entries where the field is empty.
func historySection(entries models.Entries, field func(models.DiaryEntry) *string) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		value := field(entry)
		if value == nil || strings.TrimSpace(*value) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", entry.Date, *value))
	}
	if len(lines) == 0 {
		return noRecord
	}
	return strings.Join(lines, "\n")
}

func orNoRecord(value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return noRecord
	}
	return *value
}

// AnthropicCompleter implements completionClient on the Anthropic messages
// API.
type AnthropicCompleter struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicCompleter builds a completer, or nil when no API key is
// configured so callers can treat the feature as disabled.
func NewAnthropicCompleter(apiKey, model string, maxTokens int) *AnthropicCompleter {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &AnthropicCompleter{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

// Complete issues exactly one message request and concatenates the text
// blocks of the response.
func (c *AnthropicCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	return out.String(), nil
}
