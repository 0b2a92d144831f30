// Package workers runs the application's background workers.
// It defines the Worker interface and a Workers aggregate that starts
// every worker in a unified way.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is done.
type Worker interface {
	Run(ctx context.Context)
}
