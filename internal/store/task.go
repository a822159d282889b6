package store

import (
	"fmt"

	"github.com/Formula-SAE/signupspark/internal/db"
)

type taskState struct {
	Tasks map[string][]Task `json:"tasks"`
}

func cloneTaskState(s taskState) taskState {
	next := taskState{Tasks: make(map[string][]Task, len(s.Tasks))}
	for campaignID, tasks := range s.Tasks {
		copied := make([]Task, len(tasks))
		for i, task := range tasks {
			copied[i] = cloneTask(task)
		}
		next.Tasks[campaignID] = copied
	}
	return next
}

// TaskStore keeps tasks keyed by campaign id.
type TaskStore struct {
	c *container[taskState]
}

func NewTaskStore(p Persister) (*TaskStore, error) {
	c, err := newContainer("task", db.TASK_SNAPSHOT, p, taskState{Tasks: map[string][]Task{}}, cloneTaskState)
	if err != nil {
		return nil, err
	}
	return &TaskStore{c: c}, nil
}

func (s *TaskStore) Subscribe(fn Listener) func() {
	return s.c.subscribe(fn)
}

// AddTask appends a fully formed task to the campaign's list.
func (s *TaskStore) AddTask(campaignID string, task Task) error {
	if !validStatus(task.Status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, task.Status)
	}
	if task.Comments == nil {
		task.Comments = []Comment{}
	}
	return s.c.write("add", func(st *taskState) (bool, error) {
		st.Tasks[campaignID] = append(st.Tasks[campaignID], cloneTask(task))
		return true, nil
	})
}

func (s *TaskStore) RemoveTask(campaignID, taskID string) error {
	return s.c.write("remove", func(st *taskState) (bool, error) {
		tasks, ok := st.Tasks[campaignID]
		if !ok {
			return false, nil
		}
		kept := make([]Task, 0, len(tasks))
		for _, task := range tasks {
			if task.ID != taskID {
				kept = append(kept, task)
			}
		}
		st.Tasks[campaignID] = kept
		return len(kept) != len(tasks), nil
	})
}

// UpdateTask merges updates into the task with taskID inside campaignID only.
// It reports whether a task matched.
func (s *TaskStore) UpdateTask(campaignID, taskID string, updates TaskUpdate) (bool, error) {
	if updates.Status != nil && !validStatus(*updates.Status) {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, *updates.Status)
	}

	matched := false
	err := s.c.write("update", func(st *taskState) (bool, error) {
		tasks := st.Tasks[campaignID]
		for i := range tasks {
			if tasks[i].ID == taskID {
				updates.apply(&tasks[i])
				matched = true
			}
		}
		return matched, nil
	})
	return matched, err
}

// ReplaceTask overwrites the stored task that has the same id.
func (s *TaskStore) ReplaceTask(campaignID string, task Task) error {
	return s.c.write("update", func(st *taskState) (bool, error) {
		tasks := st.Tasks[campaignID]
		for i := range tasks {
			if tasks[i].ID == task.ID {
				tasks[i] = cloneTask(task)
				return true, nil
			}
		}
		return false, nil
	})
}

// GetTasksByCampaign returns copies of the campaign's tasks, or an empty
// slice when there are none.
func (s *TaskStore) GetTasksByCampaign(campaignID string) []Task {
	tasks := []Task{}
	s.c.read(func(st taskState) {
		for _, task := range st.Tasks[campaignID] {
			tasks = append(tasks, cloneTask(task))
		}
	})
	return tasks
}

func (s *TaskStore) GetTask(campaignID, taskID string) (Task, bool) {
	var (
		found Task
		ok    bool
	)
	s.c.read(func(st taskState) {
		for _, task := range st.Tasks[campaignID] {
			if task.ID == taskID {
				found, ok = cloneTask(task), true
				return
			}
		}
	})
	return found, ok
}

func (s *TaskStore) ClearTasks(campaignID string) error {
	return s.c.write("clear", func(st *taskState) (bool, error) {
		if _, ok := st.Tasks[campaignID]; !ok {
			return false, nil
		}
		delete(st.Tasks, campaignID)
		return true, nil
	})
}

func (s *TaskStore) ClearAllTasks() error {
	return s.c.write("clear-all", func(st *taskState) (bool, error) {
		st.Tasks = map[string][]Task{}
		return true, nil
	})
}

func validStatus(status string) bool {
	return status == TASK_OPEN || status == TASK_TAKEN
}
