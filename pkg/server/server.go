// Package server exposes the audit engine over HTTP: a JSON audit
// endpoint, report retrieval by id, health, and Prometheus metrics.
package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/seolens/seolens/pkg/audit"
	"github.com/seolens/seolens/pkg/defaults"
	"github.com/seolens/seolens/pkg/fetcher"
	"github.com/seolens/seolens/pkg/jsonutil"
	"github.com/seolens/seolens/pkg/report"
	"github.com/seolens/seolens/pkg/scoring"
	"github.com/seolens/seolens/pkg/urlproc"
)

// Options configures the server.
type Options struct {
	// OutDir is where generated reports are stored and served from.
	OutDir string

	// Concurrency bounds parallel categories per audit.
	Concurrency int

	// Client is the fetch client audits use. Nil uses the default.
	Client *fetcher.Client

	// Log receives request and audit logs. Nil uses the standard logger.
	Log *logrus.Logger
}

// Server handles the audit API.
type Server struct {
	opts Options
	log  *logrus.Logger

	registry      *prometheus.Registry
	auditsTotal   *prometheus.CounterVec
	auditDuration prometheus.Histogram
}

// New builds a Server and registers its metrics.
func New(opts Options) *Server {
	if opts.OutDir == "" {
		opts.OutDir = "reports"
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	registry := prometheus.NewRegistry()
	auditsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "seolens_audits_total",
		Help: "Audits served, labeled by outcome.",
	}, []string{"outcome"})
	auditDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "seolens_audit_duration_seconds",
		Help:    "Wall time of full audits.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
	registry.MustRegister(auditsTotal, auditDuration)

	return &Server{
		opts:          opts,
		log:           log,
		registry:      registry,
		auditsTotal:   auditsTotal,
		auditDuration: auditDuration,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/audit", s.handleAudit)
	mux.HandleFunc("GET /api/reports/{id}", s.handleReport)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return s.logRequests(mux)
}

// ListenAndServe runs the API until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.WithField("addr", addr).Info("serving audit API")
	return srv.ListenAndServe()
}

type auditRequest struct {
	URL        string   `json:"url"`
	AuditTypes []string `json:"audit_types"`
	Keywords   []string `json:"keywords"`
	Format     string   `json:"format"`
}

type auditResponse struct {
	Success    bool            `json:"success"`
	URL        string          `json:"url"`
	ReportPath string          `json:"report_path"`
	ReportID   string          `json:"report_id"`
	Summary    scoring.Summary `json:"summary"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	var req auditRequest
	if err := jsonutil.UnmarshalRead(r.Body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	for _, cat := range req.AuditTypes {
		if !audit.IsCategory(cat) {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown audit category %q", cat))
			return
		}
	}
	format := report.FormatHTML
	if req.Format != "" {
		f, err := report.ParseFormat(req.Format)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = f
	}

	started := time.Now()
	ctx := r.Context()

	target, err := urlproc.Normalize(ctx, req.URL, s.opts.Client)
	if err != nil {
		s.auditsTotal.WithLabelValues("invalid").Inc()
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid url: %v", err))
		return
	}

	results, err := audit.Run(ctx, target, audit.Options{
		Categories:  req.AuditTypes,
		Keywords:    req.Keywords,
		Concurrency: s.opts.Concurrency,
	}, &audit.Env{Client: s.opts.Client})
	if err != nil {
		s.auditsTotal.WithLabelValues("failed").Inc()
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep := report.New(target, results, req.Keywords)
	path, err := rep.Generate(format, "", s.opts.OutDir)
	if err != nil {
		s.auditsTotal.WithLabelValues("failed").Inc()
		s.log.WithError(err).Error("report generation failed")
		s.writeError(w, http.StatusInternalServerError, "report generation failed")
		return
	}

	elapsed := time.Since(started)
	s.auditDuration.Observe(elapsed.Seconds())
	s.auditsTotal.WithLabelValues("ok").Inc()
	s.log.WithFields(logrus.Fields{
		"url":       target,
		"report_id": rep.ID,
		"duration":  elapsed.Round(time.Millisecond).String(),
	}).Info("audit complete")

	s.writeJSON(w, http.StatusOK, auditResponse{
		Success:    true,
		URL:        target,
		ReportPath: path,
		ReportID:   rep.ID,
		Summary:    rep.Summary(),
	})
}

var reportIDRe = regexp.MustCompile(`^[0-9a-f]{8}$`)

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !reportIDRe.MatchString(id) {
		s.writeError(w, http.StatusBadRequest, "invalid report id")
		return
	}
	matches, err := filepath.Glob(filepath.Join(s.opts.OutDir, "seo_report_"+id+".*"))
	if err != nil || len(matches) == 0 {
		s.writeError(w, http.StatusNotFound, "report not found")
		return
	}
	http.ServeFile(w, r, matches[0])
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": defaults.Version,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", defaults.ContentTypeJSON)
	w.WriteHeader(status)
	if err := jsonutil.MarshalWrite(w, v); err != nil {
		s.log.WithError(err).Error("write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

// statusRecorder captures the response code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(started).Round(time.Millisecond).String(),
		}).Info("request")
	})
}
