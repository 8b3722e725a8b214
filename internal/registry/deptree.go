package registry

import (
	"fmt"
	"io"

	"github.com/moddle-labs/moddle/internal/meta"
	"github.com/moddle-labs/moddle/internal/ns"
)

// HierarchyNode is a type in the ancestry tree of a queried type.
type HierarchyNode struct {
	Name    string
	Trait   bool // reached through extends
	Type    *meta.Type
	Supers  []*HierarchyNode
	Traits  []*HierarchyNode
	Deduped bool // true if this type was already seen earlier in the tree
}

// BuildHierarchy returns the ancestry tree of name. Traversal order matches
// MapTypes; a type reached a second time is marked Deduped and not expanded.
func (r *Registry) BuildHierarchy(name string) (*HierarchyNode, error) {
	nsName, err := ns.ParseName(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	return r.buildNode(nsName, false, seen, make(map[string]bool))
}

func (r *Registry) buildNode(name ns.QualifiedName, trait bool, seen, path map[string]bool) (*HierarchyNode, error) {
	t, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	qname := t.QualifiedName()

	node := &HierarchyNode{Name: qname, Trait: trait, Type: t}
	if path[qname] {
		return nil, fmt.Errorf("%w: <%s>", ErrCyclicInheritance, qname)
	}
	if seen[qname] {
		node.Deduped = true
		return node, nil
	}
	path[qname] = true
	defer delete(path, qname)

	for _, superName := range t.SuperClass {
		parent, err := r.parseRef(superName, name.Prefix)
		if err != nil {
			return nil, err
		}
		child, err := r.buildNode(parent, trait, seen, path)
		if err != nil {
			return nil, err
		}
		node.Supers = append(node.Supers, child)
	}

	// Mark after the superclasses so a diamond below this type is expanded
	// once, in the same place the linearization visits it.
	seen[qname] = true

	for _, traitName := range t.Traits {
		tn, err := r.parseRef(traitName, name.Prefix)
		if err != nil {
			return nil, err
		}
		child, err := r.buildNode(tn, true, seen, path)
		if err != nil {
			return nil, err
		}
		node.Traits = append(node.Traits, child)
	}

	return node, nil
}

// FlattenHierarchy returns the type names of the tree in linearization
// order (superclasses, type, traits), without duplicates.
func FlattenHierarchy(root *HierarchyNode) []string {
	seen := make(map[string]bool)
	var result []string
	flattenRecursive(root, seen, &result)
	return result
}

func flattenRecursive(node *HierarchyNode, seen map[string]bool, result *[]string) {
	if node == nil || node.Deduped || seen[node.Name] {
		return
	}

	for _, child := range node.Supers {
		flattenRecursive(child, seen, result)
	}

	if !seen[node.Name] {
		seen[node.Name] = true
		*result = append(*result, node.Name)
	}

	for _, child := range node.Traits {
		flattenRecursive(child, seen, result)
	}
}

// PrintHierarchy writes the tree with box-drawing connectors.
func PrintHierarchy(w io.Writer, node *HierarchyNode, prefix string, isLast, isRoot bool) {
	if node == nil {
		return
	}

	connector := "├── "
	if isLast {
		connector = "└── "
	}

	label := node.Name
	if node.Trait {
		label += " (trait)"
	}
	if node.Deduped {
		label += " (deduped)"
	}

	if isRoot {
		fmt.Fprintf(w, "  %s\n", label)
	} else {
		fmt.Fprintf(w, "  %s%s%s\n", prefix, connector, label)
	}

	childPrefix := prefix
	if !isRoot {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}

	children := append(append([]*HierarchyNode{}, node.Supers...), node.Traits...)
	for i, child := range children {
		PrintHierarchy(w, child, childPrefix, i == len(children)-1, false)
	}
}
