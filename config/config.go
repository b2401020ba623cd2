package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var once sync.Once

// Config đọc biến môi trường, tự load file .env lần đầu tiên
func Config(key string) string {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("⚠️ Không tìm thấy file .env, dùng biến môi trường hệ thống...")
		}
	})
	return os.Getenv(key)
}

// ConfigOr trả về giá trị mặc định nếu biến môi trường trống
func ConfigOr(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}
