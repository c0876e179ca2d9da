package xmltree

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// WriteFile serializes the document rooted at root to a new file at path.
// Creation and write errors are fatal and returned to the caller.
func WriteFile(path string, root *Node) error {
	f, err := os.Create(path) // #nosec G304 -- path is the caller's output target
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}

	w := bufio.NewWriter(f)
	writeErr := Write(w, root)
	if writeErr == nil {
		writeErr = w.Flush()
	}

	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return fmt.Errorf("write %q: %w", path, writeErr)
	}
	return nil
}

// Write emits the XML declaration followed by the document tree.
func Write(w io.Writer, root *Node) error {
	if _, err := io.WriteString(w, xmlDeclaration); err != nil {
		return err
	}
	return writeNode(w, root, 0)
}

// writeNode walks the tree depth-first, pre-order. Content is emitted as a
// CDATA payload only for child-less nodes; if a caller bug produced both
// children and content, children win and the content is dropped.
func writeNode(w io.Writer, n *Node, level int) error {
	indent := Indent(level)

	if n.Closed {
		_, err := fmt.Fprintf(w, "%s<%s%s/>\n", indent, n.Name, n.attributeString())
		return err
	}

	if len(n.Children) == 0 && n.Content != nil {
		_, err := fmt.Fprintf(w, "%s<%s%s><![CDATA[%s]]></%s>\n",
			indent, n.Name, n.attributeString(), *n.Content, n.Name)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s<%s%s>\n", indent, n.Name, n.attributeString()); err != nil {
		return err
	}
	for i := range n.Children {
		if err := writeNode(w, &n.Children[i], level+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s</%s>\n", indent, n.Name)
	return err
}
