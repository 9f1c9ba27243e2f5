package feed

// Feed processing types

// Record is one flat entry parsed from a feed document. Fields missing in
// the source are empty strings.
type Record struct {
	Title       string
	Description string
	Link        string
	PubDate     string
}

// Response is the raw result of fetching a feed document
type Response struct {
	StatusCode int
	Body       []byte
}

// Configuration types

const PartitionPlaceholder = "{partition}"

type Config struct {
	URL      string         `yaml:"url"` // Contains PartitionPlaceholder
	Settings ConfigSettings `yaml:"settings"`
	Schedule ConfigSchedule `yaml:"schedule"`
}

type ConfigSettings struct {
	Timeout               int `yaml:"timeout"` // seconds
	MinPartition          int `yaml:"min_partition"`
	MaxPartition          int `yaml:"max_partition"`
	AlwaysNotifyPartition int `yaml:"always_notify_partition"` // negative disables the override
	DescriptionLimit      int `yaml:"description_limit"`       // characters
	MinDelay              int `yaml:"min_delay"`               // seconds between partitions
	MaxDelay              int `yaml:"max_delay"`               // seconds between partitions
}

type ConfigSchedule struct {
	Times        []string `yaml:"times"`         // HH:MM, local time
	PollInterval int      `yaml:"poll_interval"` // seconds
}

// PartitionRange is an inclusive range of allowed partition ids
type PartitionRange struct {
	Min int
	Max int
}

func (r PartitionRange) Contains(id int) bool {
	return id >= r.Min && id <= r.Max
}

// All returns every partition id in the range, ascending
func (r PartitionRange) All() []int {
	if r.Max < r.Min {
		return []int{}
	}
	ids := make([]int, 0, r.Max-r.Min+1)
	for id := r.Min; id <= r.Max; id++ {
		ids = append(ids, id)
	}
	return ids
}
