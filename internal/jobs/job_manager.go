package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	assignmentSweeperJob *AssignmentSweeperJob
}

// NewJobManager creates a manager over the given jobs.
func NewJobManager(assignmentSweeperJob *AssignmentSweeperJob) *JobManager {
	return &JobManager{
		assignmentSweeperJob: assignmentSweeperJob,
	}
}

// StartAll starts every scheduled job.
func (jm *JobManager) StartAll() error {
	if err := jm.assignmentSweeperJob.Start(); err != nil {
		return fmt.Errorf("failed to start assignment sweeper job: %w", err)
	}
	return nil
}

// StopAll stops every scheduled job gracefully.
func (jm *JobManager) StopAll() {
	jm.assignmentSweeperJob.Stop()
}
