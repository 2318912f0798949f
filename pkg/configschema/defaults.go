package configschema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-configform/pkg/configdoc"
)

// Diagnostic reports a non-fatal problem encountered while extracting
// defaults, such as a reference that does not resolve. The affected subtree
// is omitted from the defaults document; the rest of the traversal continues.
type Diagnostic struct {
	// Path is the document path being populated when the problem occurred.
	Path []string
	// Ref is the offending reference, when the problem is ref-related.
	Ref string
	// Message describes the problem.
	Message string
}

func (d Diagnostic) String() string {
	location := strings.Join(d.Path, ".")
	if location == "" {
		location = "(root)"
	}
	return fmt.Sprintf("configschema: %s at %s", d.Message, location)
}

// Defaults traverses the schema depth-first and collects every declared
// default into a document, each at the path of the declaring node. A $ref is
// resolved against the schema root and traversed at the current path;
// references do not add a path segment. When a node carries both properties
// and a $ref, properties are visited first, so a ref-supplied default at the
// same path overwrites the property-supplied one.
func (s *Schema) Defaults() (configdoc.Document, []Diagnostic) {
	if s == nil {
		return configdoc.Document{}, nil
	}
	walker := &defaultsWalker{schema: s, active: make(map[string]struct{})}
	out := walker.visit(configdoc.Document{}, nil, s.Root)
	return out, walker.diagnostics
}

type defaultsWalker struct {
	schema      *Schema
	diagnostics []Diagnostic
	// active holds the refs on the current resolution chain, so cyclic
	// references terminate instead of recursing forever.
	active map[string]struct{}
}

func (w *defaultsWalker) visit(out configdoc.Document, path []string, node Node) configdoc.Document {
	if node.HasDefault {
		out = w.record(out, path, node.Default)
	}

	for _, name := range node.PropertyNames() {
		childPath := append(append([]string(nil), path...), name)
		out = w.visit(out, childPath, node.Properties[name])
	}

	if node.Ref != "" {
		out = w.follow(out, path, node.Ref)
	}

	return out
}

func (w *defaultsWalker) record(out configdoc.Document, path []string, value any) configdoc.Document {
	if len(path) == 0 {
		root, ok := value.(map[string]any)
		if !ok {
			w.report(path, "", "root default is not an object")
			return out
		}
		return configdoc.Document(root).Clone()
	}

	written, err := out.WithValue(path, configdoc.CloneValue(value))
	if err != nil {
		w.report(path, "", err.Error())
		return out
	}
	return written
}

func (w *defaultsWalker) follow(out configdoc.Document, path []string, ref string) configdoc.Document {
	if _, onChain := w.active[ref]; onChain {
		w.report(path, ref, fmt.Sprintf("cyclic reference %q", ref))
		return out
	}

	resolved, ok := w.schema.Resolve(ref)
	if !ok {
		w.report(path, ref, fmt.Sprintf("unresolved reference %q", ref))
		return out
	}

	w.active[ref] = struct{}{}
	out = w.visit(out, path, resolved)
	delete(w.active, ref)
	return out
}

func (w *defaultsWalker) report(path []string, ref, message string) {
	w.diagnostics = append(w.diagnostics, Diagnostic{
		Path:    append([]string(nil), path...),
		Ref:     ref,
		Message: message,
	})
}
