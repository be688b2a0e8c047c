package httpserver

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/milad/loadprofile/internal/report"
	"github.com/milad/loadprofile/internal/report/chart"
	"github.com/milad/loadprofile/internal/rpc/profilev1"
	"github.com/milad/loadprofile/internal/service"
)

const upstreamTimeout = 5 * time.Second

// Route names double as the "route" metric label.
const (
	routeIndex      = "index"
	routeAPIProfile = "api_profile"
	routeChart      = "chart"
	routeHealthz    = "healthz"
	routeMetrics    = "metrics"
)

var chartContentTypes = map[string]string{
	chart.FormatHTML: "text/html; charset=utf-8",
	chart.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	chart.FormatPDF:  "application/pdf",
}

type Server struct {
	client    ProfileClient
	chartOpts chart.Options
	logger    *zap.Logger
	router    *mux.Router
}

func New(client ProfileClient, chartOpts chart.Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		client:    client,
		chartOpts: chartOpts,
		logger:    logger,
		router:    mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := newRequestID()

	w.Header().Set("X-Request-Id", reqID)
	rr := &statusRecorder{ResponseWriter: w, status: http.StatusOK, route: routeOther}
	defer func() {
		if rec := recover(); rec != nil {
			rr.status = http.StatusInternalServerError

			// Best-effort response. If headers/body were already written, we can
			// only log.
			if !rr.wroteHeader {
				if strings.HasPrefix(r.URL.Path, "/api") {
					writeAPIError(rr, http.StatusInternalServerError, "internal_error", "internal error")
				} else {
					http.Error(rr, "internal error", http.StatusInternalServerError)
				}
			}

			s.logger.Error("panic handling request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("req_id", reqID),
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
		}

		dur := time.Since(start)
		observeHTTPRequest(rr.route, r.Method, rr.status, dur)

		// Probes and scrapes stay out of the request log.
		if rr.route != routeHealthz && rr.route != routeMetrics {
			s.logger.Info("request",
				zap.String("method", r.Method),
				zap.String("route", rr.route),
				zap.String("path", r.URL.Path),
				zap.Int("status", rr.status),
				zap.Duration("duration", dur.Truncate(time.Millisecond)),
				zap.String("req_id", reqID),
			)
		}
	}()

	s.router.ServeHTTP(rr, r)
}

func (s *Server) routes() {
	s.router.Use(routeLabeler)
	s.router.HandleFunc("/api/profile", s.handleProfile).Name(routeAPIProfile)
	s.router.HandleFunc("/chart", s.handleChart).Name(routeChart)
	s.router.HandleFunc("/healthz", s.handleHealthz).Name(routeHealthz)
	s.router.Handle("/metrics", promhttp.Handler()).Name(routeMetrics)
	s.router.HandleFunc("/", s.handleIndex).Name(routeIndex)
	s.router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
}

// handleProfile returns the aggregated series as JSON, plus the range split
// when `range` is given. `from` and `to` are exclusive ISO 8601 bounds.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r, true) {
		return
	}
	req, ok := s.parseRequest(w, r, true)
	if !ok {
		return
	}
	resp, ok := s.callUpstream(w, r, req)
	if !ok {
		return
	}
	_ = writeJSON(w, http.StatusOK, toProfileJSON(resp))
}

// handleChart renders the series with the renderer picked by `format`.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r, false) {
		return
	}
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = chart.FormatHTML
	}
	renderer, err := chart.New(format, s.chartOpts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req, ok := s.parseRequest(w, r, false)
	if !ok {
		return
	}
	resp, ok := s.callUpstream(w, r, req)
	if !ok {
		return
	}

	series := report.Series{
		X: make([]int, 0, len(resp.Points)),
		Y: make([]float64, 0, len(resp.Points)),
	}
	for _, p := range resp.Points {
		series.X = append(series.X, p.Seconds)
		series.Y = append(series.Y, p.Total)
	}

	var buf bytes.Buffer
	err = renderer.Render(&buf, series)
	observeChartRender(renderer.Ext(), err)
	if err != nil {
		s.logger.Error("render chart", zap.String("format", format), zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", chartContentTypes[renderer.Ext()])
	if renderer.Ext() != chart.FormatHTML {
		w.Header().Set("Content-Disposition", `attachment; filename="profile.`+renderer.Ext()+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	// Keep API errors JSON.
	if strings.HasPrefix(r.URL.Path, "/api") {
		writeAPIError(w, http.StatusNotFound, "not_found", "not found")
		return
	}
	http.NotFound(w, r) // HTML/plain-text is fine for non-API paths.
}

// parseRequest validates the query before it goes upstream so bad input
// costs no round trip.
func (s *Server) parseRequest(w http.ResponseWriter, r *http.Request, api bool) (*profilev1.GetProfileRequest, bool) {
	q := r.URL.Query()
	req := &profilev1.GetProfileRequest{
		From: q.Get("from"),
		To:   q.Get("to"),
	}
	if api {
		req.TimeRange = q.Get("range")
	}
	if _, err := service.ParseQuery(req.From, req.To, req.TimeRange); err != nil {
		writeError(w, api, http.StatusBadRequest, "invalid_argument", err.Error())
		return nil, false
	}
	return req, true
}

func (s *Server) callUpstream(w http.ResponseWriter, r *http.Request, req *profilev1.GetProfileRequest) (*profilev1.GetProfileResponse, bool) {
	api := strings.HasPrefix(r.URL.Path, "/api")

	ctx, cancel := context.WithTimeout(r.Context(), upstreamTimeout)
	defer cancel()
	grpcStart := time.Now()
	resp, err := s.client.GetProfile(ctx, req)
	grpcDur := time.Since(grpcStart)
	if err != nil {
		code := codes.Unknown.String()
		if st, ok := status.FromError(err); ok {
			code = st.Code().String()
			switch st.Code() {
			case codes.InvalidArgument:
				observeUpstream("GetProfile", code, grpcDur)
				writeError(w, api, http.StatusBadRequest, "invalid_argument", st.Message())
				return nil, false
			case codes.DeadlineExceeded:
				observeUpstream("GetProfile", code, grpcDur)
				writeError(w, api, http.StatusGatewayTimeout, "upstream_timeout", "upstream timeout")
				return nil, false
			}
		}
		observeUpstream("GetProfile", code, grpcDur)
		s.logger.Warn("upstream call failed", zap.String("code", code), zap.Error(err))
		writeError(w, api, http.StatusBadGateway, "upstream_error", "upstream error")
		return nil, false
	}
	observeUpstream("GetProfile", codes.OK.String(), grpcDur)
	profilePoints.Observe(float64(len(resp.Points)))
	return resp, true
}

func allowGet(w http.ResponseWriter, r *http.Request, api bool) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	writeError(w, api, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	return false
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	route       string
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(p)
}

func newRequestID() string {
	var b [6]byte // 12 hex chars
	if _, err := rand.Read(b[:]); err != nil {
		return "000000000000"
	}
	return hex.EncodeToString(b[:])
}

func writeError(w http.ResponseWriter, api bool, status int, code, message string) {
	if api {
		writeAPIError(w, status, code, message)
		return
	}
	http.Error(w, message, status)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	reqID := w.Header().Get("X-Request-Id")
	_ = writeJSON(w, status, apiErrorJSON{
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}
