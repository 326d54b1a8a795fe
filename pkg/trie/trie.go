// Package trie is the character prefix tree the fuzzy search walks.
// Every node owns its children; paths from the root to a terminal node spell
// dictionary words.
package trie

import "sort"

// Node is a single trie vertex.
type Node struct {
	terminal bool
	children map[rune]*Node
	// labels holds the keys of children in ascending order.
	labels []rune
}

func newNode() *Node {
	return &Node{children: make(map[rune]*Node)}
}

// Terminal reports whether a word ends at this node.
func (n *Node) Terminal() bool { return n.terminal }

// Child returns the node reached over the edge r.
func (n *Node) Child(r rune) (*Node, bool) {
	c, ok := n.children[r]
	return c, ok
}

// Labels returns the outgoing edge characters in ascending order.
// The returned slice must not be modified.
func (n *Node) Labels() []rune { return n.labels }

// Len returns the number of children.
func (n *Node) Len() int { return len(n.labels) }

func (n *Node) getOrAdd(r rune) *Node {
	if c, ok := n.children[r]; ok {
		return c
	}
	c := newNode()
	n.children[r] = c
	i := sort.Search(len(n.labels), func(i int) bool { return n.labels[i] >= r })
	n.labels = append(n.labels, 0)
	copy(n.labels[i+1:], n.labels[i:])
	n.labels[i] = r
	return c
}

// Trie indexes dictionary words by character.
// It is not safe for concurrent AddWord calls; once built it may be read from
// any number of goroutines.
type Trie struct {
	root  *Node
	words int
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: newNode()}
}

// AddWord inserts word. Adding the same word twice is a no-op.
func (t *Trie) AddWord(word string) {
	node := t.root
	for _, r := range word {
		node = node.getOrAdd(r)
	}
	if !node.terminal {
		node.terminal = true
		t.words++
	}
}

// Root returns the root node.
func (t *Trie) Root() *Node { return t.root }

// Contains reports whether word was added.
func (t *Trie) Contains(word string) bool {
	node := t.root
	for _, r := range word {
		next, ok := node.children[r]
		if !ok {
			return false
		}
		node = next
	}
	return node.terminal
}

// Len returns the number of distinct words.
func (t *Trie) Len() int { return t.words }
