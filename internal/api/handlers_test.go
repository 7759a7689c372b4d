package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrforge/internal/config"
	"qrforge/internal/metrics"
	"qrforge/internal/plan"
	"qrforge/internal/qr"
)

func testMatrix() qr.Matrix {
	m := make(qr.Matrix, 21)
	for i := range m {
		m[i] = make([]bool, 21)
		for j := range m[i] {
			m[i][j] = (i+j)%3 == 0
		}
	}
	return m
}

func testRouter(t *testing.T, encode qr.EncodeFunc) http.Handler {
	t.Helper()
	cfg := &config.Config{
		AllowedOrigin: "*",
		CacheSize:     16,
		MaxImageSize:  4096,
		APIKeys: map[string]plan.Tier{
			"biz-key": plan.Business,
			"pro-key": plan.Pro,
		},
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	if encode == nil {
		matrix := testMatrix()
		encode = func(string, qr.Level) (qr.Matrix, error) { return matrix, nil }
	}
	s, err := NewServer(cfg, log, metrics.New(), qr.New(qr.WithEncoder(encode)))
	require.NoError(t, err)
	return NewRouter(s)
}

func get(h http.Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestQRImageMissingURL(t *testing.T) {
	rec := get(testRouter(t, nil), "/api/qr", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "invalid_request", e.Code)
}

func TestQRImageSVG(t *testing.T) {
	rec := get(testRouter(t, nil), "/api/qr?url=https://example.com&format=svg", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<svg"))
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=86400")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestQRImageDefaultsToPNG(t *testing.T) {
	rec := get(testRouter(t, nil), "/api/qr?url=https://example.com", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", rec.Body.String()[:4])
}

func TestQRImagePlanGating(t *testing.T) {
	router := testRouter(t, nil)

	rec := get(router, "/api/qr?url=x&qrType=holographic", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "forbidden", e.Code)
	assert.Equal(t, "business", e.RequiredPlan)

	rec = get(router, "/api/qr?url=x&qrType=holographic&format=svg", map[string]string{"X-API-Key": "pro-key"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = get(router, "/api/qr?url=x&qrType=holographic&format=svg", map[string]string{"X-API-Key": "biz-key"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "qr-gradient")

	// The key query parameter works where headers are impractical.
	rec = get(router, "/api/qr?url=x&qrType=custom&format=svg&key=pro-key", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestQRImageUnknownTypeDegrades(t *testing.T) {
	// Unrecognized qrType values degrade to standard, which is free tier.
	rec := get(testRouter(t, nil), "/api/qr?url=x&qrType=qr5d&format=svg", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestQRImageETagRoundTrip(t *testing.T) {
	router := testRouter(t, nil)

	rec := get(router, "/api/qr?url=x&format=svg", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	again := get(router, "/api/qr?url=x&format=svg", nil)
	assert.Equal(t, etag, again.Header().Get("ETag"), "identical requests share an ETag")

	cached := get(router, "/api/qr?url=x&format=svg", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, cached.Code)
	assert.Empty(t, cached.Body.String())
}

func TestQRImageCube3D(t *testing.T) {
	router := testRouter(t, nil)

	// Raster formats degrade to SVG for the cube composition.
	rec := get(router, "/api/qr?url=x&qrType=cube3d&format=png", map[string]string{"X-API-Key": "biz-key"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, 3, strings.Count(rec.Body.String(), "<g transform="))
}

func TestQRImageEncodeOverflow(t *testing.T) {
	router := testRouter(t, qr.Encode)
	rec := get(router, "/api/qr?url="+strings.Repeat("x", 3000)+"&format=svg", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "content_too_long", e.Code)
	assert.Empty(t, e.RequiredPlan)
}

func TestHealthHandler(t *testing.T) {
	rec := get(testRouter(t, nil), "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	router := testRouter(t, nil)
	get(router, "/api/qr?url=x&format=svg", nil)

	rec := get(router, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "qrforge_renders_total")
}
