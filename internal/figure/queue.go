package figure

// DefaultQueueSize is the number of figures offered at once.
const DefaultQueueSize = 3

// Queue holds the figures available to the player. Its length stays
// constant: every consumed figure is replaced by a freshly generated one.
type Queue struct {
	gen     *Generator
	figures []Figure
}

// NewQueue fills a queue of the given size from gen.
func NewQueue(gen *Generator, size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	q := &Queue{gen: gen, figures: make([]Figure, 0, size)}
	for range size {
		q.figures = append(q.figures, gen.Generate())
	}
	return q
}

// Len returns the number of queued figures.
func (q *Queue) Len() int {
	return len(q.figures)
}

// Figures returns a copy of the queued figures in order.
func (q *Queue) Figures() []Figure {
	out := make([]Figure, len(q.figures))
	copy(out, q.figures)
	return out
}

// At returns the figure at index i.
func (q *Queue) At(i int) (Figure, bool) {
	if i < 0 || i >= len(q.figures) {
		return Figure{}, false
	}
	return q.figures[i], true
}

// Find returns the figure with the given ID.
func (q *Queue) Find(id string) (Figure, bool) {
	i := q.indexOf(id)
	if i < 0 {
		return Figure{}, false
	}
	return q.figures[i], true
}

func (q *Queue) indexOf(id string) int {
	for i, f := range q.figures {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// Rotate advances the stored rotation of the figure with the given ID.
func (q *Queue) Rotate(id string, delta int) (Figure, bool) {
	i := q.indexOf(id)
	if i < 0 {
		return Figure{}, false
	}
	q.figures[i] = q.figures[i].Rotate(delta)
	return q.figures[i], true
}

// Consume removes the figure with the given ID and appends a new one.
// Returns false, leaving the queue untouched, if the ID is unknown.
func (q *Queue) Consume(id string) (Figure, bool) {
	i := q.indexOf(id)
	if i < 0 {
		return Figure{}, false
	}
	f := q.figures[i]
	q.figures = append(q.figures[:i], q.figures[i+1:]...)
	q.figures = append(q.figures, q.gen.Generate())
	return f, true
}

// Reset replaces every queued figure with a fresh one.
func (q *Queue) Reset() {
	n := len(q.figures)
	q.figures = q.figures[:0]
	for range n {
		q.figures = append(q.figures, q.gen.Generate())
	}
}
