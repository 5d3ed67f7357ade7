package constants

import "time"

const (
	SlowRequestThreshold = 1000 * time.Millisecond // 超过这个耗时的请求以 Warn 级别记录
)
