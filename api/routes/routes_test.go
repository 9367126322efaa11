package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"remindbot/internal/mocks"
	"remindbot/internal/scheduler"
	"remindbot/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func createTestRouter(t *testing.T, withWebhook bool) (*gin.Engine, *mocks.MockChatbotService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var svc *mocks.MockChatbotService
	deps := Dependencies{
		DatabaseCheck: func(context.Context) error { return nil },
		Scheduler:     scheduler.NewEngine(zap.NewNop()),
		Logger:        &logger.Logger{SugaredLogger: zap.NewNop().Sugar()},
	}
	if withWebhook {
		svc = mocks.NewMockChatbotService(gomock.NewController(t))
		deps.Chatbot = svc
	}

	router := gin.New()
	SetupRoutes(router, deps)
	return router, svc
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupRoutes_Endpoints(t *testing.T) {
	router, svc := createTestRouter(t, true)
	svc.EXPECT().HandleWebhook(gomock.Any(), []byte(`{"update_id":1}`)).Return(nil)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
	}{
		{name: "root health", method: http.MethodGet, path: "/health", wantCode: http.StatusOK},
		{name: "api health", method: http.MethodGet, path: "/api/v1/health", wantCode: http.StatusOK},
		{name: "scheduler metrics", method: http.MethodGet, path: "/api/v1/scheduler/metrics", wantCode: http.StatusOK},
		{name: "telegram webhook", method: http.MethodPost, path: "/api/v1/telegram/webhook", body: `{"update_id":1}`, wantCode: http.StatusOK},
		{name: "unknown path", method: http.MethodGet, path: "/api/v1/nope", wantCode: http.StatusNotFound},
		{name: "webhook via GET", method: http.MethodGet, path: "/api/v1/telegram/webhook", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestSetupRoutes_PollingModeHasNoWebhook(t *testing.T) {
	router, _ := createTestRouter(t, false)

	w := do(router, http.MethodPost, "/api/v1/telegram/webhook", `{"update_id":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
