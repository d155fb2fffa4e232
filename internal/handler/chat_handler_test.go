package handler

import (
	"context"
	"errors"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"maplemed-support-be/internal/dto"
	"maplemed-support-be/internal/pkg/logger"
	"maplemed-support-be/internal/pkg/serverutils"
	"maplemed-support-be/internal/service"

	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionID = "5b0c3a0e-8f7e-4c61-9a0a-0d8f8e1b2c3d"

type stubService struct {
	service.ISupportService
	err error
}

func (s *stubService) SendMessage(_ context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SendMessageResponse{SessionId: req.SessionId, Response: "echo: " + req.Message}, nil
}

func TestTurnSuccess(t *testing.T) {
	h := NewChatHandler(&stubService{}, logger.NewNopLogger())

	reply := h.Turn(sessionID, "u1")(context.Background(), "hello")

	res, ok := reply.(*serverutils.Response[*dto.SendMessageResponse])
	require.True(t, ok)
	assert.True(t, res.Success)
	assert.Equal(t, "echo: hello", res.Data.Response)
}

func TestTurnErrors(t *testing.T) {
	cases := []struct {
		err  error
		msg  string
		code int
	}{
		{service.ErrSessionNotFound, "hi", fiber.StatusNotFound},
		{service.ErrSessionUserMismatch, "hi", fiber.StatusForbidden},
		{errors.New("boom"), "hi", fiber.StatusInternalServerError},
		{nil, "", fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		h := NewChatHandler(&stubService{err: tc.err}, logger.NewNopLogger())

		res, ok := h.Turn(sessionID, "u1")(context.Background(), tc.msg).(*serverutils.Response[any])
		require.True(t, ok)
		assert.False(t, res.Success)
		assert.Equal(t, tc.code, res.Code)
	}
}

func TestServeWsRequiresParamsAndUpgrade(t *testing.T) {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatHandler(&stubService{}, logger.NewNopLogger()).RegisterRoutes(app.Group("/api"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/ws/chat", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/ws/chat?session_id="+sessionID+"&user_id=u1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestServeWsRefusedAfterClose(t *testing.T) {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	h := NewChatHandler(&stubService{}, logger.NewNopLogger())
	h.RegisterRoutes(app.Group("/api"))

	h.Close()

	select {
	case <-h.Done():
	default:
		t.Fatal("handler not done after Close")
	}
	resp, err := app.Test(httptest.NewRequest("GET", "/api/ws/chat?session_id="+sessionID+"&user_id=u1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

// blockingService holds every turn until its context ends.
type blockingService struct {
	service.ISupportService
	entered chan struct{}
	ended   chan error
}

func (s *blockingService) SendMessage(ctx context.Context, _ *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	close(s.entered)
	<-ctx.Done()
	s.ended <- ctx.Err()
	return nil, ctx.Err()
}

func TestCloseCancelsInFlightTurnAndEndsSocket(t *testing.T) {
	svc := &blockingService{entered: make(chan struct{}), ended: make(chan error, 1)}
	h := NewChatHandler(svc, logger.NewNopLogger())

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	h.RegisterRoutes(app.Group("/api"))
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go app.Listener(ln)
	t.Cleanup(func() { _ = app.Shutdown() })

	url := "ws://" + ln.Addr().String() + "/api/ws/chat?session_id=" + sessionID + "&user_id=u1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	select {
	case <-svc.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("turn never started")
	}

	h.Close()

	select {
	case err := <-svc.ended:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight turn was not cancelled")
	}

	// the server closes the socket; the client sees that before its deadline
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			break
		}
	}
	var netErr net.Error
	assert.False(t, errors.As(err, &netErr) && netErr.Timeout(), "socket still open: %v", err)
}
