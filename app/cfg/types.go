package cfg

type Cfg struct {
	// Storage and input files
	DBPath         string
	FeedConfig     string
	PartitionsFile string
	KeywordsFile   string
	StopwordsFile  string

	// Delivery
	TelegramToken  string
	TelegramChatID string

	// Upstream requests
	UserAgent string
	Cookies   string

	// Run mode
	Once         bool
	ScheduleOnly bool

	// Maintenance
	ClearAll       bool
	ClearPartition *int

	// Application metadata
	MetricsPort string
	Timezone    string
	Debug       bool
	Version     string
}

// Maintenance reports whether a store maintenance action was requested
func (c *Cfg) Maintenance() bool {
	return c.ClearAll || c.ClearPartition != nil
}

// UsageError is returned for invalid command lines. Usage holds the help
// text to print alongside the error.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}
