package database

import (
	"babyboo_store/config"
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

func ConnectRedis() {
	addr := config.ConfigOr("REDIS_ADDR", "localhost:6379")
	Redis = redis.NewClient(&redis.Options{Addr: addr})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		log.Printf("⚠️ Không kết nối được Redis (%s): %v", addr, err)
	} else {
		log.Println("Connection Opened to Redis")
	}
}
