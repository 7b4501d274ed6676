package utility

import (
	"time"

	"cafe_pos/internal/logger"
)

// GoProtect chạy f trong goroutine riêng với recover để panic không làm chết server.
func GoProtect(f func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.GetAppLogger().Errorf("Recovered from panic: %v", r)
			}
		}()
		f()
	}()
}

// UnixMilli trả về thời gian theo millisecond
func UnixMilli(t time.Time) int64 {
	return t.UnixMilli()
}

// CurrentTimeInMilli trả về thời gian hiện tại theo millisecond
func CurrentTimeInMilli() int64 {
	return time.Now().UnixMilli()
}
