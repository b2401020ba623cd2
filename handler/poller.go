package handler

import (
	"babyboo_store/database"
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Poll trạng thái MoMo phía server. Mỗi đơn một goroutine với handle stop rõ
// ràng: tự dừng khi thanh toán xong, khi quá hạn, hoặc khi IPN về trước.

type pollCheck func(ctx context.Context) (done bool)

type pollHandle struct {
	cancel context.CancelFunc
}

type pollRegistry struct {
	mu       sync.Mutex
	polls    map[uint]*pollHandle
	interval time.Duration
	timeout  time.Duration
}

func newPollRegistry(interval, timeout time.Duration) *pollRegistry {
	return &pollRegistry{
		polls:    make(map[uint]*pollHandle),
		interval: interval,
		timeout:  timeout,
	}
}

// Start chạy check theo chu kỳ cho một đơn. Gọi lại với cùng orderID sẽ thay
// vòng poll cũ bằng vòng mới.
func (r *pollRegistry) Start(orderID uint, check pollCheck) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	handle := &pollHandle{cancel: cancel}

	r.mu.Lock()
	if old, ok := r.polls[orderID]; ok {
		old.cancel()
	}
	r.polls[orderID] = handle
	r.mu.Unlock()

	go func() {
		// Chỉ gỡ entry của chính mình, vòng poll thay thế giữ nguyên
		defer func() {
			cancel()
			r.mu.Lock()
			if r.polls[orderID] == handle {
				delete(r.polls, orderID)
			}
			r.mu.Unlock()
		}()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				if check(ctx) {
					return
				}
			}
		}
	}()
}

func (r *pollRegistry) Stop(orderID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if handle, ok := r.polls[orderID]; ok {
		handle.cancel()
		delete(r.polls, orderID)
	}
}

func (r *pollRegistry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, handle := range r.polls {
		handle.cancel()
		delete(r.polls, id)
	}
}

func (r *pollRegistry) active(orderID uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.polls[orderID]
	return ok
}

// Chu kỳ 10s, tối đa 15 phút cho một phiên thanh toán ví
var momoPolls = newPollRegistry(10*time.Second, 15*time.Minute)

func StartMomoPoll(orderID uint, orderNumber, requestID string) {
	momo := NewMoMo()
	momoPolls.Start(orderID, func(ctx context.Context) bool {
		res, err := momo.QueryStatus(orderNumber, requestID)
		if err != nil {
			log.Printf("MoMo poll: lỗi tra trạng thái đơn %s: %v", orderNumber, err)
			return false
		}
		if res.ResultCode != 0 {
			return false
		}

		payload, _ := json.Marshal(res)
		if _, err := MarkOrderPaid(database.DB, orderID, string(payload)); err != nil {
			log.Printf("MoMo poll: lỗi cập nhật đơn %s: %v", orderNumber, err)
			return false
		}
		return true
	})
}

func StopMomoPoll(orderID uint) {
	momoPolls.Stop(orderID)
}

// StopAllMomoPolls gọi khi shutdown server
func StopAllMomoPolls() {
	momoPolls.StopAll()
}
