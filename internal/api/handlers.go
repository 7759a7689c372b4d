// Package api exposes the rendering engine over HTTP: a plan-gated image
// endpoint plus health and metrics.
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"qrforge/internal/config"
	"qrforge/internal/metrics"
	"qrforge/internal/plan"
	"qrforge/internal/qr"
)

// cacheControl applies to every image response. Identical requests are
// byte-identical by contract, so long-lived caching is safe.
const cacheControl = "public, max-age=86400, immutable"

// Server carries the handler dependencies.
type Server struct {
	cfg      *config.Config
	log      *logrus.Logger
	metrics  *metrics.Metrics
	renderer *qr.Renderer
	cache    *lru.Cache[string, cachedImage]
}

type cachedImage struct {
	contentType string
	etag        string
	body        []byte
}

// NewServer wires the handler dependencies and the rendered-image cache.
func NewServer(cfg *config.Config, log *logrus.Logger, m *metrics.Metrics, renderer *qr.Renderer) (*Server, error) {
	cache, err := lru.New[string, cachedImage](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}
	return &Server{
		cfg:      cfg,
		log:      log,
		metrics:  m,
		renderer: renderer,
		cache:    cache,
	}, nil
}

// errorResponse is the JSON body for every non-image failure.
type errorResponse struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RequiredPlan string `json:"requiredPlan,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// HealthHandler reports service liveness.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// QRImageHandler serves GET /api/qr: it resolves the caller's plan, gates
// the requested style, and returns the rendered image with CORS and
// caching headers, or a structured 403 when the plan does not cover the
// requested type. Plan lookup and the access check both happen before any
// rendering work.
func (s *Server) QRImageHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("url") == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "invalid_request",
			Message: "url parameter is required",
		})
		return
	}

	req, format := parseRenderParams(q, s.cfg.MaxImageSize)
	callerPlan := s.planFor(r)

	if err := qr.CheckAccess(callerPlan, req.QRType); err != nil {
		s.metrics.RenderErrors.WithLabelValues(string(qr.KindPlanForbidden)).Inc()
		e, _ := qr.AsError(err)
		writeJSON(w, http.StatusForbidden, errorResponse{
			Code:         string(e.Kind),
			Message:      e.Message,
			RequiredPlan: e.RequiredPlan.String(),
		})
		return
	}

	key := cacheKey(req, format)
	if img, ok := s.cache.Get(key); ok {
		s.metrics.CacheHits.Inc()
		s.serveImage(w, r, img)
		return
	}
	s.metrics.CacheMisses.Inc()

	body, err := s.render(r, req, format)
	if err != nil {
		s.writeRenderError(w, r, req, err)
		return
	}

	sum := sha256.Sum256(body)
	img := cachedImage{
		contentType: format.contentType(),
		etag:        `"` + hex.EncodeToString(sum[:16]) + `"`,
		body:        body,
	}
	s.cache.Add(key, img)
	s.serveImage(w, r, img)
}

func (s *Server) render(r *http.Request, req qr.RenderRequest, format imageFormat) ([]byte, error) {
	start := time.Now()
	defer func() {
		s.metrics.RenderDuration.WithLabelValues(string(req.QRType)).Observe(time.Since(start).Seconds())
	}()

	var body []byte
	var err error
	switch {
	case req.QRType == qr.TypeCube3D:
		var doc *qr.Document
		doc, err = s.renderer.RenderCube(req)
		if err == nil {
			body = []byte(doc.SVG)
		}
	case format == formatSVG:
		var doc *qr.Document
		doc, err = s.renderer.Render(req)
		if err == nil {
			body = []byte(doc.SVG)
		}
	default:
		body, err = s.renderer.RenderRaster(r.Context(), req, qr.RasterFormat(format))
	}
	if err != nil {
		return nil, err
	}
	s.metrics.RendersTotal.WithLabelValues(string(req.QRType), string(format)).Inc()
	return body, nil
}

func (s *Server) writeRenderError(w http.ResponseWriter, r *http.Request, req qr.RenderRequest, err error) {
	e, ok := qr.AsError(err)
	if !ok {
		s.log.WithError(err).Error("render failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:    "internal",
			Message: "render failed",
		})
		return
	}
	s.metrics.RenderErrors.WithLabelValues(string(e.Kind)).Inc()
	s.log.WithFields(logrus.Fields{
		"kind":    string(e.Kind),
		"qr_type": string(req.QRType),
	}).WithError(err).Warn("render rejected")

	status := http.StatusInternalServerError
	switch e.Kind {
	case qr.KindEncodingOverflow:
		status = http.StatusUnprocessableEntity
	case qr.KindPlanForbidden:
		status = http.StatusForbidden
	}
	writeJSON(w, status, errorResponse{
		Code:         string(e.Kind),
		Message:      e.Message,
		RequiredPlan: requiredPlanName(e),
	})
}

func requiredPlanName(e *qr.Error) string {
	if e.Kind != qr.KindPlanForbidden {
		return ""
	}
	return e.RequiredPlan.String()
}

func (s *Server) serveImage(w http.ResponseWriter, r *http.Request, img cachedImage) {
	w.Header().Set("ETag", img.etag)
	w.Header().Set("Cache-Control", cacheControl)
	if r.Header.Get("If-None-Match") == img.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", img.contentType)
	w.Write(img.body)
}

// planFor resolves the caller's subscription tier from the X-API-Key
// header or key query parameter. Unknown or missing keys are free tier.
func (s *Server) planFor(r *http.Request) plan.Tier {
	key := r.Header.Get("X-API-Key")
	if key == "" {
		key = r.URL.Query().Get("key")
	}
	return s.cfg.PlanForKey(key)
}

// cacheKey canonicalizes a request; two requests with the same key render
// byte-identical output.
func cacheKey(req qr.RenderRequest, format imageFormat) string {
	style := ""
	if req.StyleSettings != nil {
		st := req.StyleSettings
		style = fmt.Sprintf("%s|%s|%s|%s|%s",
			st.DotStyle, st.CornerStyle, st.GradientDirection, st.GradientStartColor, st.GradientEndColor)
	}
	logo := ""
	if req.ImageSettings != nil {
		logo = fmt.Sprintf("%s|%t", req.ImageSettings.Src, req.ImageSettings.Excavate)
	}
	return fmt.Sprintf("%s|%d|%s|%s|%s|%d|%s|%s|%s|%s",
		req.Value, req.Size, req.Level, req.FgColor, req.BgColor,
		req.Margin, req.QRType, style, logo, format)
}
