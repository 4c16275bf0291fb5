package constants

// Context keys
const (
	ContextTokenData = "token_data"
)

// Database defaults
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Planning window: slots run 08:00-22:00 in 2-hour steps,
// free-start search runs 09:00-18:00 in 30-minute steps.
const (
	SlotDayStartMinutes   = 8 * 60
	SlotDayEndMinutes     = 22 * 60
	SlotWidthMinutes      = 2 * 60
	SearchWindowStart     = 9 * 60
	SearchWindowEnd       = 18 * 60
	SearchStepMinutes     = 30
	DefaultDurationHours  = 2
	DefaultStartMinutes   = 9 * 60
	PriceTierUnitRate     = 25.0
	SuggestionCacheTTLMin = 15 // minutes
)
