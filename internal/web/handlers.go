package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hoaithanh/giaitoan/internal/export"
	"github.com/hoaithanh/giaitoan/internal/llm"
	"github.com/hoaithanh/giaitoan/internal/problem"
	"github.com/hoaithanh/giaitoan/internal/render"
	"github.com/hoaithanh/giaitoan/internal/solver"
)

// SolveRequest is the JSON form of POST /api/solve.
type SolveRequest struct {
	Mode string       `json:"mode"`
	Text string       `json:"text"`
	File *FilePayload `json:"file,omitempty"`
}

// FilePayload carries an uploaded file as raw base64 or a data URL.
type FilePayload struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// SolveResponse is returned by POST /api/solve.
type SolveResponse struct {
	RequestID   string     `json:"request_id"`
	OK          bool       `json:"ok"`
	Solution    string     `json:"solution,omitempty"`
	FinalAnswer string     `json:"final_answer,omitempty"`
	Display     string     `json:"display"`
	Error       *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed solve.
type ErrorBody struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Reason    string `json:"reason,omitempty"`
	Retryable bool   `json:"retryable"`
}

// ExportRequest is the body of POST /api/export/pdf.
type ExportRequest struct {
	Solution string `json:"solution"`
	Problem  string `json:"problem"`
}

type indexData struct {
	Modes       []modeView
	Samples     []problem.Sample
	MaxUploadMB int64
}

type modeView struct {
	Key   string
	Label string
}

// GET /
func (s *Server) indexPage(c *gin.Context) {
	modes := make([]modeView, 0, len(problem.Modes))
	for _, m := range problem.Modes {
		modes = append(modes, modeView{Key: string(m), Label: m.Label()})
	}
	c.HTML(http.StatusOK, "index.html", indexData{
		Modes:       modes,
		Samples:     problem.Samples,
		MaxUploadMB: s.cfg.MaxUploadBytes >> 20,
	})
}

// GET /healthz
func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/examples
func (s *Server) examples(c *gin.Context) {
	c.JSON(http.StatusOK, problem.Samples)
}

// POST /api/solve
func (s *Server) solve(c *gin.Context) {
	requestID := uuid.NewString()
	c.Header("X-Request-ID", requestID)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)

	draft, err := s.readDraft(c)
	if err != nil {
		var ioErr *problem.IOError
		switch {
		case isTooLarge(err):
			msg := fmt.Sprintf("Tệp quá lớn (tối đa %d MB).", s.cfg.MaxUploadBytes>>20)
			s.writeFailure(c, http.StatusRequestEntityTooLarge, requestID, solver.KindInvalidInput, msg)
		case errors.As(err, &ioErr):
			s.writeFailure(c, http.StatusBadRequest, requestID, solver.KindIO, ioErr.Name)
		default:
			s.writeFailure(c, http.StatusBadRequest, requestID, solver.KindInvalidInput, err.Error())
		}
		return
	}

	in, err := draft.Submit()
	if err != nil {
		s.writeFailure(c, http.StatusBadRequest, requestID, solver.KindInvalidInput, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestTimeout(c))
	defer cancel()
	ctx = llm.WithRequestID(llm.WithChannel(ctx, "web"), requestID)

	res := s.solver.Solve(ctx, in)
	c.JSON(statusFor(res), newSolveResponse(requestID, res))
}

// POST /api/export/pdf
func (s *Server) exportPDF(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Solution) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "solution is empty"})
		return
	}

	opts := s.cfg.Export.Options()
	opts.Problem = req.Problem
	data, err := export.Bytes(req.Solution, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(time.Now())))
	c.Data(http.StatusOK, "application/pdf", data)
}

// readDraft builds a Draft from a multipart form or a JSON body.
func (s *Server) readDraft(c *gin.Context) (*problem.Draft, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return s.readMultipart(c)
	}

	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isTooLarge(err) {
			return nil, err
		}
		return nil, fmt.Errorf("Dữ liệu không hợp lệ: %w", err)
	}

	var file *problem.File
	if req.File != nil && req.File.Data != "" {
		data, hint, err := problem.DecodeDataURL(req.File.Data)
		if err != nil {
			return nil, fmt.Errorf("Dữ liệu tệp không hợp lệ: %w", err)
		}
		mt := problem.ResolveMediaType(req.File.MediaType, hint, req.File.Name, data)
		f := problem.FileFromBytes(req.File.Name, mt, data)
		file = &f
	}
	return buildDraft(req.Mode, req.Text, file), nil
}

func (s *Server) readMultipart(c *gin.Context) (*problem.Draft, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	var file *problem.File
	if headers := form.File["file"]; len(headers) > 0 {
		f, err := fileFromHeader(headers[0])
		if err != nil {
			return nil, err
		}
		file = &f
	}
	return buildDraft(first(form.Value["mode"]), first(form.Value["text"]), file), nil
}

func fileFromHeader(fh *multipart.FileHeader) (problem.File, error) {
	src, err := fh.Open()
	if err != nil {
		return problem.File{}, &problem.IOError{Name: fh.Filename, Err: err}
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return problem.File{}, &problem.IOError{Name: fh.Filename, Err: err}
	}
	mt := problem.ResolveMediaType(fh.Header.Get("Content-Type"), "", fh.Filename, data)
	return problem.FileFromBytes(fh.Filename, mt, data), nil
}

// buildDraft fills a draft for mode. A missing mode is inferred from the
// attached file.
func buildDraft(mode, text string, file *problem.File) *problem.Draft {
	m := problem.ParseMode(mode)
	if strings.TrimSpace(mode) == "" && file != nil {
		m = problem.ModeImage
		if problem.ModePDF.Accepts(file.MediaType) {
			m = problem.ModePDF
		}
	}

	d := problem.NewDraft(m)
	if m == problem.ModeText {
		d.SetText(text)
	} else if file != nil {
		d.SetFile(*file)
	}
	return d
}

// requestTimeout honors X-Request-Timeout in seconds but never extends the
// configured limit.
func (s *Server) requestTimeout(c *gin.Context) time.Duration {
	limit := s.cfg.RequestTimeout
	if ts := c.GetHeader("X-Request-Timeout"); ts != "" {
		v, err := strconv.ParseInt(ts, 10, 64)
		if err == nil && v > 0 && v < int64(limit/time.Second) {
			return time.Duration(v) * time.Second
		}
	}
	return limit
}

func (s *Server) writeFailure(c *gin.Context, status int, requestID string, kind solver.ErrorKind, msg string) {
	res := solver.Result{Err: &solver.Error{Kind: kind, Message: msg}}
	c.JSON(status, newSolveResponse(requestID, res))
}

func newSolveResponse(requestID string, res solver.Result) SolveResponse {
	out := SolveResponse{
		RequestID: requestID,
		OK:        res.OK(),
		Display:   render.Display(res),
	}
	if res.OK() {
		out.Solution = res.Solution
		out.FinalAnswer, _ = render.FinalAnswer(res.Solution)
		return out
	}
	out.Error = &ErrorBody{
		Kind:      string(res.Err.Kind),
		Message:   res.Err.Message,
		Reason:    res.Err.Reason,
		Retryable: res.Err.Kind.Retryable(),
	}
	return out
}

func statusFor(res solver.Result) int {
	if res.OK() {
		return http.StatusOK
	}
	switch res.Err.Kind {
	case solver.KindInvalidInput, solver.KindIO:
		return http.StatusBadRequest
	case solver.KindConfiguration:
		return http.StatusServiceUnavailable
	case solver.KindSafetyBlocked:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large")
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
