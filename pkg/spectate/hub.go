// Package spectate 通过 WebSocket 向观战者推送农场快照
//
// 推送是只读的：观战者发来的消息会被丢弃，不会影响游戏状态。
package spectate

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/decker502/pigfarm/pkg/game"
)

// broadcastQueueSize 广播队列长度，队列满时丢弃新快照
const broadcastQueueSize = 16

// Hub 维护所有观战连接，并把快照广播给它们
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
	dropped    int
}

// NewHub 创建 Hub，需要调用 Run 启动主循环
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastQueueSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run 处理连接注册、注销和广播，直到 ctx 结束
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("[Spectate] Hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("[Spectate] Spectator connected: %s", client.addr)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("[Spectate] Spectator disconnected: %s", client.addr)
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// 观战者太慢，断开
					close(client.send)
					delete(h.clients, client)
					log.Printf("[Spectate] Spectator too slow, dropped: %s", client.addr)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish 序列化快照并放入广播队列
// 从帧循环调用，永不阻塞：队列满时丢弃这次快照
func (h *Hub) Publish(snapshot game.WorldSnapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("[Spectate] Failed to serialize snapshot: %v", err)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.mu.Lock()
		h.dropped++
		h.mu.Unlock()
	}
}

// ClientCount 当前连接的观战者数量
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped 因队列已满被丢弃的快照数量
func (h *Hub) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Done 在 Run 返回后关闭
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
