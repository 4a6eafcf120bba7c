package engine

// Sorted is an order-statistics AVL tree over (score, member) pairs. Every
// node caches its height and subtree size, so rank queries descend in
// O(log n). A member index maps each member to its current score, keeping
// updates and removals O(log n) as well.
type Sorted struct {
	root  *treeNode
	index map[string]float64
}

type treeNode struct {
	score  float64
	member string

	left   *treeNode
	right  *treeNode
	height int
	size   int
}

func NewSorted() *Sorted {
	return &Sorted{index: make(map[string]float64)}
}

func (s *Sorted) Len() int {
	return nodeSize(s.root)
}

// Score reports the member's current score.
func (s *Sorted) Score(member string) (float64, bool) {
	score, ok := s.index[member]
	return score, ok
}

// Add inserts member with the given score, or moves it to the new score if
// it already exists. Reports true only when the member is new to the set.
func (s *Sorted) Add(score float64, member string) bool {
	old, exists := s.index[member]
	if exists {
		if old == score {
			return false
		}
		s.root = remove(s.root, old, member)
	}
	s.root = insert(s.root, &treeNode{
		score:  score,
		member: member,
		height: 1,
		size:   1,
	})
	s.index[member] = score
	return !exists
}

// Remove deletes the member. Reports false when it was not present.
func (s *Sorted) Remove(member string) bool {
	score, ok := s.index[member]
	if !ok {
		return false
	}
	s.root = remove(s.root, score, member)
	delete(s.index, member)
	return true
}

// ByRank returns the member at the zero-based rank under the
// (score, member) order.
func (s *Sorted) ByRank(rank int) (string, bool) {
	if rank < 0 || rank >= nodeSize(s.root) {
		return "", false
	}
	node := s.root
	for node != nil {
		leftSize := nodeSize(node.left)
		switch {
		case rank == leftSize:
			return node.member, true
		case rank < leftSize:
			node = node.left
		default:
			rank -= leftSize + 1
			node = node.right
		}
	}
	return "", false
}

// RangeByRank materializes members at ranks [start, stop] inclusive.
// Negative indices count from the end; out-of-range bounds are clamped.
func (s *Sorted) RangeByRank(start, stop int) []string {
	start, stop, ok := resolveRange(start, stop, nodeSize(s.root))
	if !ok {
		return nil
	}
	out := make([]string, 0, stop-start+1)
	for rank := start; rank <= stop; rank++ {
		member, ok := s.ByRank(rank)
		if !ok {
			break
		}
		out = append(out, member)
	}
	return out
}

func nodeHeight(n *treeNode) int {
	if n == nil {
		return 0
	}
	return n.height
}

func nodeSize(n *treeNode) int {
	if n == nil {
		return 0
	}
	return n.size
}

// update recomputes the cached height and subtree size from the children.
func update(n *treeNode) {
	n.height = 1 + max(nodeHeight(n.left), nodeHeight(n.right))
	n.size = 1 + nodeSize(n.left) + nodeSize(n.right)
}

// balance is positive when the right subtree is taller.
func balance(n *treeNode) int {
	if n == nil {
		return 0
	}
	return nodeHeight(n.right) - nodeHeight(n.left)
}

// compare orders pairs by score, then member.
func compare(aScore float64, aMember string, bScore float64, bMember string) int {
	switch {
	case aScore < bScore:
		return -1
	case aScore > bScore:
		return 1
	case aMember < bMember:
		return -1
	case aMember > bMember:
		return 1
	default:
		return 0
	}
}

func rotateRight(y *treeNode) *treeNode {
	x := y.left
	y.left = x.right
	x.right = y
	update(y)
	update(x)
	return x
}

func rotateLeft(x *treeNode) *treeNode {
	y := x.right
	x.right = y.left
	y.left = x
	update(x)
	update(y)
	return y
}

func insert(node, fresh *treeNode) *treeNode {
	if node == nil {
		return fresh
	}
	if compare(fresh.score, fresh.member, node.score, node.member) < 0 {
		node.left = insert(node.left, fresh)
	} else {
		node.right = insert(node.right, fresh)
	}

	update(node)
	switch bf := balance(node); {
	case bf < -1 && compare(fresh.score, fresh.member, node.left.score, node.left.member) < 0:
		return rotateRight(node)
	case bf < -1:
		node.left = rotateLeft(node.left)
		return rotateRight(node)
	case bf > 1 && compare(fresh.score, fresh.member, node.right.score, node.right.member) > 0:
		return rotateLeft(node)
	case bf > 1:
		node.right = rotateRight(node.right)
		return rotateLeft(node)
	}
	return node
}

func remove(node *treeNode, score float64, member string) *treeNode {
	if node == nil {
		return nil
	}

	switch cmp := compare(score, member, node.score, node.member); {
	case cmp < 0:
		node.left = remove(node.left, score, member)
	case cmp > 0:
		node.right = remove(node.right, score, member)
	default:
		if node.left == nil {
			return node.right
		}
		if node.right == nil {
			return node.left
		}
		succ := node.right
		for succ.left != nil {
			succ = succ.left
		}
		node.score, node.member = succ.score, succ.member
		node.right = remove(node.right, succ.score, succ.member)
	}

	update(node)
	switch bf := balance(node); {
	case bf < -1 && balance(node.left) <= 0:
		return rotateRight(node)
	case bf < -1:
		node.left = rotateLeft(node.left)
		return rotateRight(node)
	case bf > 1 && balance(node.right) >= 0:
		return rotateLeft(node)
	case bf > 1:
		node.right = rotateRight(node.right)
		return rotateLeft(node)
	}
	return node
}
