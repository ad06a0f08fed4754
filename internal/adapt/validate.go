package adapt

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of a mapped tree: a course root,
// one parent per node with matching ParentID, depth following the kind
// hierarchy, components under blocks, mcq nodes with options and unique ids.
func Validate(root *ContentNode) error {
	if root == nil {
		return errors.New("adapt: nil tree")
	}
	if root.Kind != KindCourse {
		return fmt.Errorf("adapt: root kind %q, want %q", root.Kind, KindCourse)
	}

	var issues []error
	seen := map[string]string{}
	visited := map[*ContentNode]struct{}{}

	Walk(root, func(node, parent *ContentNode) bool {
		if _, dup := visited[node]; dup {
			issues = append(issues, fmt.Errorf("node %q reachable from more than one parent", node.ID))
			return false
		}
		visited[node] = struct{}{}

		if node.ID == "" {
			issues = append(issues, fmt.Errorf("%s %q has no id", node.Kind, node.Title))
		} else if other, dup := seen[node.ID]; dup {
			issues = append(issues, fmt.Errorf("duplicate id %q (%s and %s)", node.ID, other, node.Kind))
		} else {
			seen[node.ID] = string(node.Kind)
		}

		if parent != nil {
			if node.ParentID != parent.ID {
				issues = append(issues, fmt.Errorf("%s %q parent id %q, want %q", node.Kind, node.ID, node.ParentID, parent.ID))
			}
			if node.Kind.Depth() != parent.Kind.Depth()+1 {
				issues = append(issues, fmt.Errorf("%s %q cannot be a child of %s %q", node.Kind, node.ID, parent.Kind, parent.ID))
			}
		}
		if node.Kind == KindMcq && len(node.Options) == 0 {
			issues = append(issues, fmt.Errorf("mcq %q has no options", node.ID))
		}
		if node.Kind.IsComponent() && len(node.Children) > 0 {
			issues = append(issues, fmt.Errorf("component %q has children", node.ID))
		}
		return true
	})

	if len(issues) > 0 {
		return fmt.Errorf("adapt: invalid tree: %w", errors.Join(issues...))
	}
	return nil
}
