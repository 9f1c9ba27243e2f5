package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var itemsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "feed_notify_items_total",
	Help: "Counter of ingested feed items",
}, []string{"state"})

var notificationsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "feed_notify_notifications_total",
	Help: "Counter of notification attempts",
}, []string{"result"})

var fetchCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "feed_notify_fetch_total",
	Help: "Counter of feed fetches by status code",
}, []string{"code"})

var cyclesCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "feed_notify_cycles_total",
	Help: "Counter of completed poll cycles",
})

func ItemSeenInc() {
	itemsCounter.WithLabelValues("seen").Inc()
}
func ItemNewInc() {
	itemsCounter.WithLabelValues("new").Inc()
}
func ItemFailedInc() {
	itemsCounter.WithLabelValues("failed").Inc()
}

func NotificationSentInc() {
	notificationsCounter.WithLabelValues("sent").Inc()
}
func NotificationFailedInc() {
	notificationsCounter.WithLabelValues("failed").Inc()
}

func FetchStatusInc(statusCode int) {
	fetchCounter.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}
func FetchErrorInc() {
	fetchCounter.WithLabelValues("error").Inc()
}

func CycleInc() {
	cyclesCounter.Inc()
}
