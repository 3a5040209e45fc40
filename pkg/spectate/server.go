package spectate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// shutdownTimeout 关闭 HTTP 服务的等待时间
const shutdownTimeout = 2 * time.Second

// Handler 返回观战服务的路由：/ws 为 WebSocket 推送，/healthz 返回连接数
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "ok %d\n", h.ClientCount())
	})
	return mux
}

// Serve 启动 Hub 并在 addr 上提供观战服务，直到 ctx 结束
func (h *Hub) Serve(ctx context.Context, addr string) error {
	go h.Run(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[Spectate] Shutdown error: %v", err)
		}
	}()

	log.Printf("[Spectate] Listening on %s (ws://%s/ws)", addr, addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("spectate server: %w", err)
	}
	return nil
}
