package api

import (
	"github.com/lysyi3m/podcast-comb/app/feed"
	"github.com/lysyi3m/podcast-comb/app/tasks"
)

type Handler struct {
	feedConfig *feed.Config
	scheduler  tasks.TaskSchedulerInterface
	newTask    func() *tasks.BuildFeedTask
}
