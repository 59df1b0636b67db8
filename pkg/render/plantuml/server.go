package plantuml

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/umldoc/pkg/cache"
	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/observability"
	"github.com/matzehuels/umldoc/pkg/render"
)

// DefaultServerURL is the public PlantUML server.
const DefaultServerURL = "https://www.plantuml.com/plantuml"

const defaultServerTimeout = 30 * time.Second

// Server converts diagrams through a PlantUML HTTP server. Formats the server
// cannot produce directly are derived from its SVG output where possible.
type Server struct {
	base   string
	client *http.Client
}

// NewServer returns a converter for the server at baseURL.
func NewServer(baseURL string, timeout time.Duration) (*Server, error) {
	if baseURL == "" {
		baseURL = DefaultServerURL
	}
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultServerTimeout
	}
	return &Server{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
	}, nil
}

// URL returns the request URL for source in format f.
func (s *Server) URL(source string, f Format) (string, error) {
	path, ok := f.ServerPath()
	if !ok {
		return "", errors.New(errors.ErrCodeUnsupported, "the PlantUML server does not produce %s", f)
	}
	encoded, err := Encode(source)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode diagram")
	}
	return s.base + "/" + path + "/" + encoded, nil
}

// Convert implements Converter.
func (s *Server) Convert(ctx context.Context, source string, f Format) ([]byte, error) {
	if _, ok := f.ServerPath(); !ok {
		switch f {
		case PDF:
			svg, err := s.fetch(ctx, source, SVG)
			if err != nil {
				return nil, err
			}
			return render.ToPDF(ctx, svg)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "the PlantUML server does not produce %s", f)
		}
	}
	return s.fetch(ctx, source, f)
}

func (s *Server) fetch(ctx context.Context, source string, f Format) ([]byte, error) {
	url, err := s.URL(source, f)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = cache.RetryWithBackoff(ctx, func() error {
		data, err = s.get(ctx, url)
		return err
	})
	return data, err
}

func (s *Server) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "request %s", s.base))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read response")
	}
	return data, nil
}

// checkStatus maps server responses. PlantUML answers syntax errors with
// 400 and an error image, which is still a failed conversion.
func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusBadRequest:
		return errors.New(errors.ErrCodeRenderFailed, "diagram rejected by server (status %d)", code)
	case code >= 500:
		return cache.Retryable(errors.New(errors.ErrCodeNetwork, "server error (status %d)", code))
	default:
		return errors.New(errors.ErrCodeNetwork, "unexpected status %d", code)
	}
}
