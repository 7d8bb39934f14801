// Package hadithapi is a thin client for the hadith REST backend.
// It maps requests and responses only: no caching and no retries.
package hadithapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/hadith-bot/internal/domain/entities"
)

const requestIDHeader = "X-Request-ID"

var ErrNotFound = errors.New("resource not found")

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, strings.TrimSpace(e.Body))
}

// Is makes errors.Is(err, ErrNotFound) work for 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client talks to the hadith backend over JSON/HTTP.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New creates a client for the API rooted at baseURL (for example http://localhost:8080/api).
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		logger: logger,
	}
}

// ListHadiths returns every stored hadith.
func (c *Client) ListHadiths(ctx context.Context) ([]entities.Hadith, error) {
	var hadiths []entities.Hadith
	if err := c.do(c.request(ctx).SetResult(&hadiths), http.MethodGet, "/hadiths"); err != nil {
		return nil, fmt.Errorf("list hadiths: %w", err)
	}
	return hadiths, nil
}

// GetHadith returns a single hadith.
func (c *Client) GetHadith(ctx context.Context, id int64) (*entities.Hadith, error) {
	var hadith entities.Hadith
	req := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&hadith)
	if err := c.do(req, http.MethodGet, "/hadiths/{id}"); err != nil {
		return nil, fmt.Errorf("get hadith %d: %w", id, err)
	}
	return &hadith, nil
}

// CreateHadith stores a new hadith and returns it as saved by the backend.
func (c *Client) CreateHadith(ctx context.Context, in entities.CreateHadithRequest) (*entities.Hadith, error) {
	var hadith entities.Hadith
	if err := c.do(c.request(ctx).SetBody(in).SetResult(&hadith), http.MethodPost, "/hadiths"); err != nil {
		return nil, fmt.Errorf("create hadith: %w", err)
	}
	return &hadith, nil
}

// ListCompanions returns every companion.
func (c *Client) ListCompanions(ctx context.Context) ([]entities.Companion, error) {
	var companions []entities.Companion
	if err := c.do(c.request(ctx).SetResult(&companions), http.MethodGet, "/companions"); err != nil {
		return nil, fmt.Errorf("list companions: %w", err)
	}
	return companions, nil
}

// CreateCompanion stores a companion with the given name.
func (c *Client) CreateCompanion(ctx context.Context, name string) (*entities.Companion, error) {
	var companion entities.Companion
	req := c.request(ctx).
		SetBody(entities.CreateNamedRequest{Name: name}).
		SetResult(&companion)
	if err := c.do(req, http.MethodPost, "/companions"); err != nil {
		return nil, fmt.Errorf("create companion: %w", err)
	}
	return &companion, nil
}

// ListSources returns every source.
func (c *Client) ListSources(ctx context.Context) ([]entities.Source, error) {
	var sources []entities.Source
	if err := c.do(c.request(ctx).SetResult(&sources), http.MethodGet, "/sources"); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	return sources, nil
}

// CreateSource stores a source with the given name.
func (c *Client) CreateSource(ctx context.Context, name string) (*entities.Source, error) {
	var source entities.Source
	req := c.request(ctx).
		SetBody(entities.CreateNamedRequest{Name: name}).
		SetResult(&source)
	if err := c.do(req, http.MethodPost, "/sources"); err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}
	return &source, nil
}

// RandomQuestion asks the backend for a random question restricted to types.
// An empty list lets the backend pick from every type.
func (c *Client) RandomQuestion(ctx context.Context, types []entities.QuestionType) (*entities.QuizQuestion, error) {
	var question entities.QuizQuestion
	req := c.request(ctx).SetResult(&question)
	if len(types) > 0 {
		req.SetQueryParam("types", entities.JoinQuestionTypes(types))
	}
	if err := c.do(req, http.MethodGet, "/quiz/random"); err != nil {
		return nil, fmt.Errorf("random question: %w", err)
	}
	return &question, nil
}

// CheckAnswer submits an answer; the backend is the only judge of correctness.
func (c *Client) CheckAnswer(ctx context.Context, in entities.CheckAnswerRequest) (*entities.CheckAnswerResponse, error) {
	var out entities.CheckAnswerResponse
	if err := c.do(c.request(ctx).SetBody(in).SetResult(&out), http.MethodPost, "/quiz/check"); err != nil {
		return nil, fmt.Errorf("check answer: %w", err)
	}
	return &out, nil
}

// CorrectAnswer fetches the authoritative answer for a hadith question.
func (c *Client) CorrectAnswer(
	ctx context.Context, hadithID int64, questionType entities.QuestionType, blankIndices []int,
) (*entities.CorrectAnswer, error) {
	var out entities.CorrectAnswer
	req := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(hadithID, 10)).
		SetQueryParam("type", string(questionType)).
		SetResult(&out)
	if len(blankIndices) > 0 {
		req.SetQueryParam("blank_indices", joinInts(blankIndices))
	}
	if err := c.do(req, http.MethodGet, "/quiz/answer/{id}"); err != nil {
		return nil, fmt.Errorf("correct answer %d: %w", hadithID, err)
	}
	return &out, nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, uuid.NewString()).
		ForceContentType("application/json")
}

func (c *Client) do(req *resty.Request, method, path string) error {
	started := time.Now()
	resp, err := req.Execute(method, path)

	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", req.Header.Get(requestIDHeader)),
		zap.Duration("elapsed", time.Since(started)),
	}

	if err != nil {
		c.logger.Warn("api request failed", append(fields, zap.Error(err))...)
		return err
	}

	fields = append(fields, zap.Int("status", resp.StatusCode()))
	if !resp.IsSuccess() {
		c.logger.Warn("api request rejected", fields...)
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}
	}

	c.logger.Debug("api request done", fields...)
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}
