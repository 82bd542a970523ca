package pkgconfig

import (
	"io"
	"time"
)

// Config reads typed values by dotted key (for example "server.address.http").
type Config interface {
	GetInt(key string) int64
	GetBool(key string) bool
	GetString(key string) string
	GetArray(key string) []string
	GetDuration(key string) time.Duration
	io.Closer
}
