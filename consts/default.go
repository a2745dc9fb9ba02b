package consts

import "time"

const (
	DefaultPlatformFeePercent = 5.0
	DefaultMinimumDonation    = 10.0
	DefaultBroadcastLimit     = 1000
	DefaultTypingTTL          = 3 * time.Second
	DefaultRequestListLimit   = 100
	DefaultNotificationLimit  = 50
	DefaultNearDistance       = 50000 // meters
)
