package tasks

// TaskSchedulerInterface is what the HTTP layer needs from the scheduler:
// queueing an out-of-band rebuild and reading the outcome of the last one.
//
//	scheduler := NewScheduler(newBuildTask, interval)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(newBuildTask())
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	Status() BuildStatus
}
