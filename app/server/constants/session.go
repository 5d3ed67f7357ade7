package constants

import "time"

const (
	CacheKeySession = "portal:session:%s"
)

const (
	SessionCookieName = "portal_session"
	SessionDuration   = 30 * 24 * time.Hour // 持久会话，登出或过期前一直有效
)
