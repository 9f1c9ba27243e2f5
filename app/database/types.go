package database

import (
	"errors"
	"time"
)

// ErrEmptyLink is returned when an item without a link is offered to the store
var ErrEmptyLink = errors.New("item link is empty")

type InsertStatus int

const (
	InsertInserted InsertStatus = iota + 1
	InsertAlreadyPresent
)

func (s InsertStatus) String() string {
	switch s {
	case InsertInserted:
		return "inserted"
	case InsertAlreadyPresent:
		return "already_present"
	default:
		return "unknown"
	}
}

type Item struct {
	ID          int64      `db:"id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Link        string     `db:"link"`         // Natural unique key
	PubDate     string     `db:"pub_date"`     // Raw publication date as provided by the feed
	PublishedAt *time.Time `db:"published_at"` // PubDate parsed, nil when unparseable
	PartitionID int        `db:"partition_id"`
	CreatedAt   time.Time  `db:"created_at"` // Assigned by the store at insert time
	UpdatedAt   time.Time  `db:"updated_at"`
}

type Statistics struct {
	TotalCount       int
	CountByPartition map[int]int
	LastStoredAt     *time.Time
}
