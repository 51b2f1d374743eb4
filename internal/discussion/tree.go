package discussion

import (
	"petlink/internal/models"
)

// MaxCommentDepth bounds reply nesting in generic comment threads. Q&A
// threads are fixed at three levels (question, answer, comment-on-answer)
// and never recurse further.
const MaxCommentDepth = 10

// Node is one post with its ordered children, as reconstructed from the
// flat list.
type Node struct {
	Post     models.Post
	Children []*Node
	Depth    int
}

// ChildrenOf returns every post whose parent is postID, preserving input
// order. The list contract delivers posts createdAt-ascending, so the
// result is chronological with ties broken by insertion order. The input
// slice is never mutated.
func ChildrenOf(posts []models.Post, postID uint) []models.Post {
	var children []models.Post
	for _, p := range posts {
		if p.ParentID != nil && *p.ParentID == postID {
			children = append(children, p)
		}
	}
	return children
}

// Roots returns the posts that anchor the tree: those without a parent,
// plus those whose parent is not in the given set. An orphaned reference
// (data inconsistency) degrades to a root rather than failing.
func Roots(posts []models.Post) []models.Post {
	present := make(map[uint]bool, len(posts))
	for _, p := range posts {
		present[p.ID] = true
	}
	var roots []models.Post
	for _, p := range posts {
		if p.ParentID == nil || !present[*p.ParentID] {
			roots = append(roots, p)
		}
	}
	return roots
}

// Build reconstructs the parent/children hierarchy from the flat list.
// Children keep list order under every parent; orphans become roots.
func Build(posts []models.Post) []*Node {
	nodes := make(map[uint]*Node, len(posts))
	for _, p := range posts {
		nodes[p.ID] = &Node{Post: p}
	}

	for _, p := range posts {
		if p.ParentID != nil {
			if parent, ok := nodes[*p.ParentID]; ok {
				parent.Children = append(parent.Children, nodes[p.ID])
			}
		}
	}

	var roots []*Node
	for _, r := range Roots(posts) {
		roots = append(roots, nodes[r.ID])
	}

	var setDepth func(n *Node, depth int)
	setDepth = func(n *Node, depth int) {
		n.Depth = depth
		for _, c := range n.Children {
			setDepth(c, depth+1)
		}
	}
	for _, r := range roots {
		setDepth(r, 0)
	}
	return roots
}
