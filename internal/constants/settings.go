package constants

const (
	// Default preference values applied when a request omits them
	DefaultWakeTime  = "08:00"
	DefaultSleepTime = "22:00"
	DefaultTimezone  = "Local" // Use system local timezone by default

	// Priority bounds for tasks; 1 is the most urgent
	PriorityHighest = 1
	PriorityLowest  = 3
	DefaultPriority = 2
)
