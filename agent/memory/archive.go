package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

var (
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrInvalidSessionID   = errors.New("session id is empty")
)

const (
	defaultArchiveKeyPrefix = "kopibot:transcript:"
	defaultArchiveTTL       = 24 * time.Hour
	maxResponseSizeBytes    = 2 << 20
)

// ArchiveOption customizes UpstashRedisArchive.
type ArchiveOption func(*UpstashRedisArchive)

func WithKeyPrefix(prefix string) ArchiveOption {
	return func(a *UpstashRedisArchive) {
		trimmed := strings.TrimSpace(prefix)
		if trimmed != "" {
			a.keyPrefix = trimmed
		}
	}
}

func WithTTL(ttl time.Duration) ArchiveOption {
	return func(a *UpstashRedisArchive) {
		a.ttl = ttl
	}
}

func WithHTTPClient(client *http.Client) ArchiveOption {
	return func(a *UpstashRedisArchive) {
		if client != nil {
			a.httpClient = client
		}
	}
}

// UpstashRedisArchive keeps durable copies of session transcripts in
// Upstash Redis via its REST API. The in-process Store remains the source
// of truth during a conversation; the archive only needs to be fresh enough
// to warm-start a session after a restart.
type UpstashRedisArchive struct {
	baseURL    string
	token      string
	httpClient *http.Client
	keyPrefix  string
	ttl        time.Duration
}

var _ contractx.TranscriptArchive = (*UpstashRedisArchive)(nil)

type redisRESTResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

type UpstashRedisConfig struct {
	URL     string        `envconfig:"URL" split_words:"true"`
	Token   string        `envconfig:"TOKEN" split_words:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// Enabled reports whether the config points at a deployment at all; the
// archive is an optional collaborator.
func (c UpstashRedisConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

func NewUpstashRedisArchive(cfg UpstashRedisConfig, opts ...ArchiveOption) (*UpstashRedisArchive, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("upstash redis url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid redis rest url: %w", err)
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("upstash redis token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	archive := &UpstashRedisArchive{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		keyPrefix: defaultArchiveKeyPrefix,
		ttl:       defaultArchiveTTL,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(archive)
		}
	}

	if archive.ttl < 0 {
		return nil, errors.New("ttl must be >= 0")
	}

	return archive, nil
}

func (a *UpstashRedisArchive) Save(ctx context.Context, sessionID string, turns []contractx.Turn) error {
	key, err := a.redisKey(sessionID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}

	cmd := []any{"SET", key, string(payload)}
	if a.ttl > 0 {
		cmd = append(cmd, "EX", ttlSeconds(a.ttl))
	}

	if _, err := a.exec(ctx, cmd); err != nil {
		return err
	}
	return nil
}

func (a *UpstashRedisArchive) Load(ctx context.Context, sessionID string) ([]contractx.Turn, error) {
	key, err := a.redisKey(sessionID)
	if err != nil {
		return nil, err
	}

	resp, err := a.exec(ctx, []any{"GET", key})
	if err != nil {
		return nil, err
	}

	result := bytes.TrimSpace(resp.Result)
	if len(result) == 0 || bytes.Equal(result, []byte("null")) {
		return nil, ErrTranscriptNotFound
	}

	// Upstash returns the stored value JSON-encoded as a string, so the
	// payload is decoded twice.
	var encoded string
	if err := json.Unmarshal(result, &encoded); err != nil {
		return nil, fmt.Errorf("decode transcript payload: %w", err)
	}

	var turns []contractx.Turn
	if err := json.Unmarshal([]byte(encoded), &turns); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}
	return turns, nil
}

func (a *UpstashRedisArchive) Delete(ctx context.Context, sessionID string) error {
	key, err := a.redisKey(sessionID)
	if err != nil {
		return err
	}
	_, err = a.exec(ctx, []any{"DEL", key})
	return err
}

func (a *UpstashRedisArchive) redisKey(sessionID string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", ErrInvalidSessionID
	}
	prefix := strings.TrimSpace(a.keyPrefix)
	return prefix + sessionID, nil
}

func (a *UpstashRedisArchive) exec(ctx context.Context, command []any) (*redisRESTResponse, error) {
	if a == nil {
		return nil, errors.New("nil archive")
	}
	if len(command) == 0 {
		return nil, errors.New("empty redis command")
	}

	body, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("marshal redis command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build redis request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute redis request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read redis response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("redis http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed redisRESTResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode redis response: %w", err)
	}
	if parsed.Error != "" {
		return nil, errors.New(parsed.Error)
	}
	return &parsed, nil
}

func ttlSeconds(ttl time.Duration) int64 {
	seconds := ttl / time.Second
	if seconds <= 0 {
		return 1
	}
	if ttl%time.Second != 0 {
		seconds++
	}
	return int64(seconds)
}
