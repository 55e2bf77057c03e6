package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/stellar/go-stellar-sdk/support/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/duckdrop/spl-airdrop-backend/internal/monitor"
)

func Test_RecoverHandler(t *testing.T) {
	// setup logger to assert the logged texts later
	buf := new(strings.Builder)
	log.DefaultLogger.SetOutput(buf)
	log.DefaultLogger.SetLevel(logrus.TraceLevel)

	// setup
	r := chi.NewRouter()
	r.Use(RecoverHandler)
	r.Post("/api/airdrop", func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})

	// test
	req, err := http.NewRequest(http.MethodPost, "/api/airdrop", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	// assert response
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error": "An internal error occurred while processing this request."}`, rr.Body.String())

	// assert logged text
	assert.Contains(t, buf.String(), "panic: test panic", "should log the panic message")
}

func Test_RecoverHandler_doesNotRecoverFromErrAbortHandler(t *testing.T) {
	buf := new(strings.Builder)
	log.DefaultLogger.SetOutput(buf)
	log.DefaultLogger.SetLevel(logrus.TraceLevel)

	r := chi.NewRouter()
	r.Use(RecoverHandler)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	require.Panics(t, func() {
		req, err := http.NewRequest(http.MethodGet, "/", nil)
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
	}, "http.ErrAbortHandler is supposed to panic")
}

func Test_MetricsRequestHandler(t *testing.T) {
	mMonitorService := &monitor.MockMonitorService{}
	defer mMonitorService.AssertExpectations(t)

	// setup
	r := chi.NewRouter()
	r.Use(MetricsRequestHandler(mMonitorService))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(`{"status": "pass"}`))
		require.NoError(t, err)
	})

	t.Run("monitor request with valid route", func(t *testing.T) {
		mLabels := monitor.HttpRequestLabels{
			Status: "200",
			Route:  "/health",
			Method: http.MethodGet,
		}
		mMonitorService.On("MonitorHttpRequestDuration", mock.AnythingOfType("time.Duration"), mLabels).Return(nil).Once()

		req, err := http.NewRequest(http.MethodGet, "/health", nil)
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status": "pass"}`, rr.Body.String())
	})

	t.Run("monitor request with invalid route", func(t *testing.T) {
		mLabels := monitor.HttpRequestLabels{
			Status: "404",
			Route:  "undefined",
			Method: http.MethodGet,
		}
		mMonitorService.On("MonitorHttpRequestDuration", mock.AnythingOfType("time.Duration"), mLabels).Return(nil).Once()

		req, err := http.NewRequest(http.MethodGet, "/invalid-route", nil)
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("monitor errors are logged and do not change the response", func(t *testing.T) {
		getEntries := log.DefaultLogger.StartTest(log.ErrorLevel)

		mLabels := monitor.HttpRequestLabels{
			Status: "200",
			Route:  "/health",
			Method: http.MethodGet,
		}
		mMonitorService.
			On("MonitorHttpRequestDuration", mock.AnythingOfType("time.Duration"), mLabels).
			Return(monitor.ErrClientNotInitialized).
			Once()

		req, err := http.NewRequest(http.MethodGet, "/health", nil)
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		entries := getEntries()
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Message, "Error trying to monitor request time")
	})
}

func Test_CORSHeadersMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(CORSHeadersMiddleware)
	r.HandleFunc("/api/airdrop", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	})

	wantHeaders := map[string]string{
		"Access-Control-Allow-Credentials": "true",
		"Access-Control-Allow-Origin":      "*",
		"Access-Control-Allow-Methods":     "GET,OPTIONS,PATCH,DELETE,POST,PUT",
		"Access-Control-Allow-Headers":     "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version",
	}

	testCases := []struct {
		name           string
		method         string
		origin         string
		expectedStatus int
	}{
		{name: "preflight without origin", method: http.MethodOptions, expectedStatus: http.StatusOK},
		{name: "preflight with origin", method: http.MethodOptions, origin: "https://duck.example", expectedStatus: http.StatusOK},
		{name: "error response", method: http.MethodPost, origin: "https://duck.example", expectedStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, "/api/airdrop", nil)
			require.NoError(t, err)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			for key, value := range wantHeaders {
				assert.Equal(t, value, rr.Header().Get(key), key)
			}
		})
	}
}

func Test_LoggingMiddleware(t *testing.T) {
	t.Run("emits request started and finished logs", func(t *testing.T) {
		r := chi.NewRouter()
		expectedRespBody := "ok"

		debugEntries := log.DefaultLogger.StartTest(log.DebugLevel)

		r.Use(chimiddleware.RequestID)
		r.Use(LoggingMiddleware)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, err := w.Write([]byte(expectedRespBody))
			require.NoError(t, err)
		})

		req, err := http.NewRequest(http.MethodGet, "/health", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		resp := rr.Result()
		respBody, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, expectedRespBody, string(respBody))

		requestLogs := debugEntries()
		require.Len(t, requestLogs, 2)

		for i, e := range requestLogs {
			assert.Equal(t, http.MethodGet, e.Data["method"])
			assert.Equal(t, "/health", e.Data["path"])
			assert.NotEmpty(t, e.Data["req"])

			switch i {
			case 0:
				assert.Contains(t, e.Message, "starting request")
			case 1:
				assert.Contains(t, e.Message, "finished request")
				assert.Equal(t, http.StatusOK, e.Data["status"])
				assert.Equal(t, "/health", e.Data["route"])
			default:
				require.Fail(t, "unexpected log entry")
			}
			assert.Equal(t, logrus.InfoLevel, e.Level)
		}
	})
}
