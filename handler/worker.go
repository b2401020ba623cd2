package handler

import (
	"babyboo_store/constants"
	"babyboo_store/database"
	"babyboo_store/model"
	"babyboo_store/utils"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var orderExpiryScheduler gocron.Scheduler

// ExpireUnpaidOrders huỷ các đơn online chưa thanh toán quá 24h và hoàn kho.
// COD và chuyển khoản không bị quét vì thanh toán sau khi giao.
func ExpireUnpaidOrders() {
	log.Println("[CRON] ExpireUnpaidOrders triggered")

	db := database.DB
	cutoff := time.Now().Add(-24 * time.Hour)

	var orders []model.Order
	err := db.Where(
		"status = ? AND is_paid = ? AND payment_method NOT IN ? AND created_at < ?",
		constants.ORDER_PENDING, false,
		[]string{constants.PAYMENT_COD, constants.PAYMENT_BANK_TRANSFER},
		cutoff,
	).Find(&orders).Error
	if err != nil {
		log.Printf("Lỗi khi quét đơn quá hạn: %v", err)
		return
	}

	for _, order := range orders {
		cancelled, err := CancelOrderTx(db, order.ID, "Quá hạn thanh toán")
		if err != nil {
			log.Printf("Lỗi huỷ đơn quá hạn %s: %v", order.OrderNumber, err)
			continue
		}

		StopMomoPoll(order.ID)
		PublishOrderEvent(order.ID, "status:"+constants.ORDER_CANCELLED)
		if cancelled.Email != "" {
			utils.SendOrderCancelledEmail(cancelled.Email, buildOrderEmailData(*cancelled))
		}
		log.Printf("Huỷ đơn quá hạn thanh toán %s", order.OrderNumber)
	}
}

func StartOrderExpiryScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Fatal(err)
	}

	orderExpiryScheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(ExpireUnpaidOrders),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("✅ Order expiry scheduler started (10m)")
}

func StopOrderExpiryScheduler() {
	if orderExpiryScheduler != nil {
		_ = orderExpiryScheduler.Shutdown()
	}
}
