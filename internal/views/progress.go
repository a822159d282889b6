package views

import (
	"math"

	"github.com/Formula-SAE/signupspark/internal/store"
)

// Summary counts a campaign's tasks by status.
type Summary struct {
	Total int `json:"total"`
	Open  int `json:"open"`
	Taken int `json:"taken"`
}

func Summarize(tasks []store.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case store.TASK_TAKEN:
			s.Taken++
		case store.TASK_OPEN:
			s.Open++
		}
	}
	return s
}

// Progress is the rounded percentage of taken tasks, 0 for an empty list.
func Progress(tasks []store.Task) int {
	s := Summarize(tasks)
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Taken) / float64(s.Total) * 100))
}
