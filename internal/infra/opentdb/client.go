// Package opentdb is a client for the Open Trivia Database question API.
package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trivia-quiz/internal/domain"
)

const (
	DefaultBaseURL = "https://opentdb.com"
	DefaultTimeout = 5 * time.Second
)

// Provider response codes.
const (
	codeSuccess      = 0
	codeNoResults    = 1
	codeInvalidParam = 2
	codeTokenMissing = 3
	codeTokenEmpty   = 4
)

// Client fetches question batches from api.php.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type response struct {
	ResponseCode *int               `json:"response_code"`
	Results      *[]domain.Question `json:"results"`
}

// FetchQuestions issues one request and maps provider response codes to domain errors.
func (c *Client) FetchQuestions(ctx context.Context, query domain.QuestionQuery) ([]domain.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("request timed out: %w", err)
		}
		return nil, fmt.Errorf("unable to reach trivia api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trivia api: HTTP %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode trivia response: %w", err)
	}
	if body.ResponseCode != nil {
		if err := codeError(*body.ResponseCode); err != nil {
			return nil, err
		}
	}
	if body.Results == nil {
		return nil, errors.New("unexpected response format from the trivia api")
	}
	return *body.Results, nil
}

func (c *Client) requestURL(query domain.QuestionQuery) string {
	amount := query.Amount
	if amount <= 0 {
		amount = 10
	}
	qtype := query.Type
	if qtype == "" {
		qtype = "multiple"
	}
	v := url.Values{}
	v.Set("amount", strconv.Itoa(amount))
	v.Set("category", strconv.Itoa(query.CategoryID))
	v.Set("difficulty", string(query.Difficulty))
	v.Set("type", qtype)
	return c.baseURL + "/api.php?" + v.Encode()
}

func codeError(code int) error {
	switch code {
	case codeSuccess:
		return nil
	case codeNoResults:
		return domain.ErrEmptyResult
	case codeInvalidParam:
		return domain.ErrInvalidRequest
	case codeTokenMissing:
		return fmt.Errorf("%w: token not found", domain.ErrToken)
	case codeTokenEmpty:
		return fmt.Errorf("%w: token empty", domain.ErrToken)
	default:
		return fmt.Errorf("trivia api: unknown response code %d", code)
	}
}
