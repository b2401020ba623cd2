package handler

import (
	"babyboo_store/database"
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

const orderEventsChannel = "orders:events"

var (
	feedClients = make(map[*websocket.Conn]bool)
	feedMu      sync.Mutex
)

// OrderEvent là message đẩy lên feed admin mỗi khi đơn hàng thay đổi
type OrderEvent struct {
	OrderID uint      `json:"orderId"`
	Event   string    `json:"event"`
	At      time.Time `json:"at"`
}

// PublishOrderEvent bắn sự kiện đơn hàng qua Redis. Lỗi publish chỉ log,
// không chặn luồng xử lý đơn.
func PublishOrderEvent(orderID uint, event string) {
	payload, err := json.Marshal(OrderEvent{
		OrderID: orderID,
		Event:   event,
		At:      time.Now(),
	})
	if err != nil {
		return
	}

	if err := database.Redis.Publish(context.Background(), orderEventsChannel, payload).Err(); err != nil {
		log.Printf("Không publish được sự kiện đơn %d: %v", orderID, err)
	}
}

// OrderFeedSocket xử lý WS connection cho feed đơn hàng của admin
func OrderFeedSocket(c *websocket.Conn) {
	// Khi WS disconnect → xoá client
	defer func() {
		feedMu.Lock()
		delete(feedClients, c)
		feedMu.Unlock()
		c.Close()
	}()

	// Thêm client mới
	feedMu.Lock()
	feedClients[c] = true
	feedMu.Unlock()

	// Sub kênh Redis
	pubsub := database.Redis.Subscribe(context.Background(), orderEventsChannel)
	defer pubsub.Close()

	// Lắng nghe message từ Redis
	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		feedMu.Lock()
		for conn := range feedClients {
			// Nếu client lỗi → xoá
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(feedClients, conn)
			}
		}
		feedMu.Unlock()
	}
}
