package engine

// List is an ordered sequence of strings with O(1) tail append.
type List struct {
	head   *listNode
	tail   *listNode
	length int
}

type listNode struct {
	value string
	next  *listNode
}

func NewList() *List {
	return &List{}
}

func (l *List) Len() int {
	return l.length
}

// Append adds items at the tail and returns the new length.
func (l *List) Append(items ...string) int {
	for _, item := range items {
		node := &listNode{value: item}
		if l.tail == nil {
			l.head, l.tail = node, node
		} else {
			l.tail.next = node
			l.tail = node
		}
		l.length++
	}
	return l.length
}

// Range materializes the inclusive [start, stop] slice. Negative indices
// count from the end; out-of-range bounds are clamped.
func (l *List) Range(start, stop int) []string {
	start, stop, ok := resolveRange(start, stop, l.length)
	if !ok {
		return nil
	}
	node := l.head
	for i := 0; i < start; i++ {
		node = node.next
	}
	out := make([]string, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		out = append(out, node.value)
		node = node.next
	}
	return out
}

// resolveRange turns possibly-negative inclusive bounds into concrete
// indices within [0, n). Reports false when the range is empty.
func resolveRange(start, stop, n int) (int, int, bool) {
	if start < 0 {
		start = n + start
	}
	if stop < 0 {
		stop = n + stop
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start >= n || start > stop {
		return 0, 0, false
	}
	return start, stop, true
}
