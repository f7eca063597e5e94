package utils

import (
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/event"
)

// MongoMetrics is a snapshot of connection pool activity.
type MongoMetrics struct {
	ActiveConnections  int64     `json:"activeConnections"`
	CreatedConnections int64     `json:"createdConnections"`
	ClosedConnections  int64     `json:"closedConnections"`
	LastCheckTime      time.Time `json:"lastCheckTime"`
}

var (
	activeConnections  atomic.Int64
	createdConnections atomic.Int64
	closedConnections  atomic.Int64
)

// NewPoolMonitor returns a driver pool monitor that feeds GetMongoMetrics.
func NewPoolMonitor() *event.PoolMonitor {
	return &event.PoolMonitor{
		Event: func(evt *event.PoolEvent) {
			switch evt.Type {
			case event.ConnectionCreated:
				createdConnections.Add(1)
			case event.ConnectionClosed:
				closedConnections.Add(1)
			case event.GetSucceeded:
				activeConnections.Add(1)
			case event.ConnectionReturned:
				activeConnections.Add(-1)
			}
		},
	}
}

func GetMongoMetrics() MongoMetrics {
	return MongoMetrics{
		ActiveConnections:  activeConnections.Load(),
		CreatedConnections: createdConnections.Load(),
		ClosedConnections:  closedConnections.Load(),
		LastCheckTime:      time.Now().UTC(),
	}
}
