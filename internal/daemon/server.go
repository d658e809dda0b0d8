package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"syncwatch/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const defaultHistoryN = 20

// Server is the local control endpoint used by the status, history and stop
// commands. It only listens on the loopback interface.
type Server struct {
	echo     *echo.Echo
	state    *State
	histRepo *repository.HistoryRepository
	gatherer prometheus.Gatherer
	port     int
	log      *zap.Logger
	stopCh   chan struct{}
}

func NewServer(state *State, histRepo *repository.HistoryRepository, gatherer prometheus.Gatherer, port int, log *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:     e,
		state:    state,
		histRepo: histRepo,
		gatherer: gatherer,
		port:     port,
		log:      log,
		stopCh:   make(chan struct{}, 1),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/status", s.handleStatus)
	s.echo.POST("/stop", s.handleStop)
	s.echo.GET("/history", s.handleHistory)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
}

func (s *Server) Addr() string {
	return fmt.Sprintf("127.0.0.1:%d", s.port)
}

func (s *Server) Start() {
	go func() {
		addr := s.Addr()
		s.log.Info("control server started",
			zap.String("addr", addr))

		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("control server error", zap.Error(err))
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// StopCh receives a value when a client asks the daemon to exit.
func (s *Server) StopCh() <-chan struct{} {
	return s.stopCh
}

func (s *Server) handleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, s.state.Snapshot())
}

func (s *Server) handleStop(c echo.Context) error {
	select {
	case s.stopCh <- struct{}{}:
	default:
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "stopping"})
}

func (s *Server) handleHistory(c echo.Context) error {
	n := defaultHistoryN
	if nStr := c.QueryParam("n"); nStr != "" {
		parsed, err := strconv.Atoi(nStr)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid n"})
		}
		n = parsed
	}

	if c.QueryParam("failed") == "true" {
		failed := s.histRepo.GetFailed()
		if len(failed) > n {
			failed = failed[:n]
		}
		return c.JSON(http.StatusOK, failed)
	}

	return c.JSON(http.StatusOK, s.histRepo.GetRecent(n))
}
