package millionaire

import (
	"context"
	"net/http"
	"time"
)

type Server struct {
	httpServer *http.Server
}

// NewServer готовит http.Server заранее, чтобы Shutdown можно было вызвать
// из другой горутины в любой момент после создания.
func NewServer(port string, handler http.Handler, readTimeout, writeTimeout time.Duration) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:           "0.0.0.0:" + port,
			Handler:        handler,
			MaxHeaderBytes: 1 << 20,
			ReadTimeout:    readTimeout,
			WriteTimeout:   writeTimeout,
		},
	}
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
