package redisx

import "time"

const (
	// Cached price resolution: space_price:{space_id}:{tier} -> decimal string
	KeySpacePrice = "space_price:%d:%s"
)

var (
	TTLSpacePrice = 10 * time.Minute
)
