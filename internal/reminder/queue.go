package reminder

import "container/heap"

// queue is a min-heap of reminders ordered by FireAt.
type queue []Reminder

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].FireAt.Equal(q[j].FireAt) {
		return q[i].ID < q[j].ID
	}
	return q[i].FireAt.Before(q[j].FireAt)
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(Reminder)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// remove drops the reminder with id, reporting whether it was queued.
func (q *queue) remove(id string) bool {
	for i := range *q {
		if (*q)[i].ID == id {
			heap.Remove(q, i)
			return true
		}
	}
	return false
}
