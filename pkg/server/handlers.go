package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umldoc/pkg/buildinfo"
	"github.com/matzehuels/umldoc/pkg/doclet"
	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/model"
	"github.com/matzehuels/umldoc/pkg/pipeline"
	"github.com/matzehuels/umldoc/pkg/render/plantuml"
	"github.com/matzehuels/umldoc/pkg/uml"
)

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Model *model.Model `json:"model"`
	// Formats overrides the configured image formats; an empty list keeps
	// them.
	Formats []string `json:"formats,omitempty"`
	// Diagrams selects class and/or package diagrams; empty renders both.
	Diagrams []string `json:"diagrams,omitempty"`
}

// RenderResponse is the body of a successful POST /v1/render.
type RenderResponse struct {
	RunID     string           `json:"run_id"`
	ModelHash string           `json:"model_hash"`
	Diagrams  []DiagramPayload `json:"diagrams"`
}

// DiagramPayload is one rendered diagram. Artifacts are keyed by format
// name and base64 encoded in JSON.
type DiagramPayload struct {
	Name      string            `json:"name"`
	Package   string            `json:"package"`
	Kind      string            `json:"kind"`
	Source    string            `json:"source"`
	Artifacts map[string][]byte `json:"artifacts,omitempty"`
	Failed    bool              `json:"failed,omitempty"`
}

// OverviewRequest is the body of POST /v1/overview.
type OverviewRequest struct {
	Model     *model.Model `json:"model"`
	Format    string       `json:"format,omitempty"`
	Detailed  bool         `json:"detailed,omitempty"`
	Qualified bool         `json:"qualified,omitempty"`
}

// FormatInfo describes an artifact format.
type FormatInfo struct {
	Name   string `json:"name"`
	Suffix string `json:"suffix"`
	Server bool   `json:"server"` // produced by the PlantUML server engine
}

type errorBody struct {
	Error struct {
		Code      errors.Code `json:"code"`
		Message   string      `json:"message"`
		RequestID string      `json:"request_id,omitempty"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
	}
	if s.opts.Stats != nil {
		body["stats"] = s.opts.Stats.Snapshot()
	}
	writeJSON(w, r, http.StatusOK, body)
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	var artifacts []FormatInfo
	for _, f := range plantuml.All() {
		_, server := f.ServerPath()
		artifacts = append(artifacts, FormatInfo{Name: f.String(), Suffix: f.Suffix(), Server: server})
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"artifacts": artifacts,
		"overview":  pipeline.OverviewFormats,
		"default":   s.base.ImageFormats(),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Model == nil {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "model is required"))
		return
	}
	kinds, err := doclet.ParseDiagramKinds(req.Diagrams)
	if err != nil {
		writeError(w, r, err)
		return
	}

	dir, err := os.MkdirTemp("", "umldoc-render-*")
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeIO, err, "create work directory"))
		return
	}
	defer os.RemoveAll(dir)

	logger := requestLogger(r.Context(), s.logger)
	settings := *s.base
	settings.Destination = dir
	settings.Log = logger
	if len(req.Formats) > 0 {
		settings.Formats = plantuml.NormalizeFormats(req.Formats, logger)
	}
	cfg := uml.NewSettings(settings)

	runner := pipeline.NewRunner(cfg, s.cache, s.keyer, logger)
	result, err := runner.Execute(r.Context(), pipeline.Options{
		Model:    req.Model,
		Diagrams: kinds,
		Workers:  s.opts.Workers,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	formats := plantuml.ParseFormats(cfg.ImageFormats(), nil)
	failed := make(map[string]bool, len(result.Failed))
	for _, path := range result.Failed {
		failed[path] = true
	}

	resp := RenderResponse{RunID: result.RunID, ModelHash: result.ModelHash}
	for _, d := range result.Diagrams {
		payload, err := collect(d, formats, failed[d.Path()])
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp.Diagrams = append(resp.Diagrams, payload)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// collect reads the files a rendered diagram left behind.
func collect(d *uml.Diagram, formats []plantuml.Format, failed bool) (DiagramPayload, error) {
	p := DiagramPayload{Name: d.Name(), Package: d.Package(), Kind: d.Kind().String(), Failed: failed}
	src, err := os.ReadFile(d.Path())
	if err != nil {
		if failed && os.IsNotExist(err) {
			return p, nil
		}
		return p, errors.Wrap(errors.ErrCodeIO, err, "read %s", filepath.Base(d.Path()))
	}
	p.Source = string(src)

	base := strings.TrimSuffix(d.Path(), ".puml")
	for _, f := range formats {
		data, err := os.ReadFile(base + f.Suffix())
		if err != nil {
			continue
		}
		if p.Artifacts == nil {
			p.Artifacts = make(map[string][]byte)
		}
		p.Artifacts[f.String()] = data
	}
	return p, nil
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	var req OverviewRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Model == nil {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "model is required"))
		return
	}
	if err := req.Model.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	logger := requestLogger(r.Context(), s.logger)
	runner := pipeline.NewRunner(s.base, s.cache, s.keyer, logger)
	data, hit, err := runner.Overview(r.Context(), req.Model, pipeline.OverviewOptions{
		Format:    req.Format,
		Detailed:  req.Detailed,
		Qualified: req.Qualified,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", overviewContentType(req.Format))
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func overviewContentType(format string) string {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), ".")) {
	case pipeline.OverviewPNG:
		return "image/png"
	case pipeline.OverviewPDF:
		return "application/pdf"
	case pipeline.OverviewDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "image/svg+xml"
	}
}

// decode reads a size-limited JSON body, rejecting unknown fields.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", s.opts.MaxBodyBytes)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		requestLogger(r.Context(), log.Default()).Warn("couldn't write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var body errorBody
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	body.Error.RequestID = RequestID(r.Context())
	writeJSON(w, r, errors.HTTPStatus(err), body)
}

func notFound(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}
