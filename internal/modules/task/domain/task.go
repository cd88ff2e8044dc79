package domain

import (
	"fmt"
	"time"
)

// Task is one node of the parent-pointer task tree. A parent is complete
// exactly when all of its children are complete.
type Task struct {
	ID             int64
	Name           string
	Tag            string
	PlannedMinutes int
	CreatedAt      time.Time
	IsActive       bool
	Color          string
	ParentID       *int64
	IsCompleted    bool
}

func (t Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if t.PlannedMinutes < 0 {
		return fmt.Errorf("planned minutes must be non-negative")
	}
	return nil
}

// PropagateCompletion computes every completion flag that must change when
// one task is toggled. Marking complete sweeps the whole subtree complete and
// then closes any ancestor whose children are now all complete; marking
// incomplete reopens every ancestor. The traversal is an explicit worklist
// with a visited set, so a malformed self-referential parent pointer
// terminates instead of hanging.
func PropagateCompletion(tasks []Task, id int64, completed bool) (map[int64]bool, error) {
	byID := make(map[int64]Task, len(tasks))
	children := make(map[int64][]int64, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
		if task.ParentID != nil {
			children[*task.ParentID] = append(children[*task.ParentID], task.ID)
		}
	}
	if _, ok := byID[id]; !ok {
		return nil, fmt.Errorf("task %d does not exist", id)
	}

	changes := map[int64]bool{id: completed}
	state := func(taskID int64) bool {
		if done, ok := changes[taskID]; ok {
			return done
		}
		return byID[taskID].IsCompleted
	}

	if completed {
		visited := map[int64]bool{}
		worklist := []int64{id}
		for len(worklist) > 0 {
			current := worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]
			if visited[current] {
				continue
			}
			visited[current] = true
			changes[current] = true
			worklist = append(worklist, children[current]...)
		}
	}

	visited := map[int64]bool{id: true}
	current := byID[id]
	for current.ParentID != nil && !visited[*current.ParentID] {
		parentID := *current.ParentID
		visited[parentID] = true
		parent, ok := byID[parentID]
		if !ok {
			break
		}
		if completed {
			allDone := true
			for _, childID := range children[parentID] {
				if !state(childID) {
					allDone = false
					break
				}
			}
			if !allDone {
				break
			}
			changes[parentID] = true
		} else {
			changes[parentID] = false
		}
		current = parent
	}

	for taskID, done := range changes {
		if byID[taskID].IsCompleted == done {
			delete(changes, taskID)
		}
	}
	return changes, nil
}

// Subtree returns the ids of a task and all descendants, cycle-safe.
func Subtree(tasks []Task, id int64) []int64 {
	children := make(map[int64][]int64, len(tasks))
	for _, task := range tasks {
		if task.ParentID != nil {
			children[*task.ParentID] = append(children[*task.ParentID], task.ID)
		}
	}
	visited := map[int64]bool{}
	out := make([]int64, 0)
	worklist := []int64{id}
	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if visited[current] {
			continue
		}
		visited[current] = true
		out = append(out, current)
		worklist = append(worklist, children[current]...)
	}
	return out
}
