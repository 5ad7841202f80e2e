package lib

// Queue is a growable FIFO ring buffer. The app pushes the input events of
// one tick and drains them in order before drawing, all on the game loop
// goroutine, so there is no locking.
type Queue[T any] struct {
	data      []T
	popIndex  int
	pushIndex int
}

func CreateQueue[T any](initSize int) Queue[T] {
	if initSize < 1 {
		initSize = 1
	}
	return Queue[T]{data: make([]T, initSize)}
}

func (q *Queue[T]) Push(item T) {
	if len(q.data) == 0 {
		q.data = make([]T, 8)
	}
	// one slot stays free so that a full buffer is not mistaken for an empty one
	if (q.pushIndex+1)%len(q.data) == q.popIndex {
		size := q.Size()
		q.data = growSlice(q.data, q.popIndex)
		q.popIndex = 0
		q.pushIndex = size
	}

	q.data[q.pushIndex] = item
	q.pushIndex = (q.pushIndex + 1) % len(q.data)
}

func (q *Queue[T]) Pop() (T, bool) {
	var none T
	if q.IsEmpty() {
		return none, false
	}

	value := q.data[q.popIndex]
	q.data[q.popIndex] = none
	q.popIndex = (q.popIndex + 1) % len(q.data)

	return value, true
}

// Drain pops every queued item into fn, stopping early when fn returns false.
func (q *Queue[T]) Drain(fn func(T) bool) {
	for {
		item, ok := q.Pop()
		if !ok || !fn(item) {
			return
		}
	}
}

func (q *Queue[T]) Clear() {
	for !q.IsEmpty() {
		q.Pop()
	}
}

func (q *Queue[T]) Size() int {
	if q.popIndex <= q.pushIndex {
		return q.pushIndex - q.popIndex
	}
	return len(q.data) - q.popIndex + q.pushIndex
}

func (q *Queue[T]) IsEmpty() bool {
	return q.pushIndex == q.popIndex
}

func growSlice[T any](slice []T, startIndex int) []T {
	size := len(slice)
	resized := make([]T, (size+1)*2)
	for i := 0; i < size; i++ {
		resized[i] = slice[(i+startIndex)%size]
	}
	return resized
}
