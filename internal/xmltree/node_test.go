package xmltree

import (
	"strings"
	"testing"
)

func TestAttributeLastWriteWins(t *testing.T) {
	n := New("position").Attribute("x", "1").Attribute("x", "2")
	if n.Attributes["x"] != "2" {
		t.Fatalf("x = %q, want 2", n.Attributes["x"])
	}
}

func TestChildSnapshotsCurrentState(t *testing.T) {
	child := New("variable").Attribute("name", "before")
	parent := New("vars").Child(child)

	// Mutating the original must not affect the attached copy.
	child.Attribute("name", "after")
	child.Child(New("stray"))

	got := parent.Children[0]
	if got.Attributes["name"] != "before" {
		t.Fatalf("attached copy changed: name = %q", got.Attributes["name"])
	}
	if len(got.Children) != 0 {
		t.Fatalf("attached copy gained children: %d", len(got.Children))
	}
}

func TestAddChildrenPreservesOrder(t *testing.T) {
	n := New("list").AddChildren(New("a"), New("b"), New("c"))
	names := make([]string, 0, 3)
	for _, c := range n.Children {
		names = append(names, c.Name)
	}
	if strings.Join(names, "") != "abc" {
		t.Fatalf("order = %v", names)
	}
}

func TestSerializeClosedElement(t *testing.T) {
	n := New("connection").Attribute("refLocalId", "3").Close()
	got := n.Serialize(0)
	if got != "<connection refLocalId=\"3\"/>\n" {
		t.Fatalf("got %q", got)
	}
	if strings.Contains(got, "</connection>") {
		t.Fatalf("closed element must not emit a separate closing tag")
	}
}

func TestSerializeContentBeatsChildren(t *testing.T) {
	n := New("expression").SetContent("a + b")
	n.Children = append(n.Children, *New("ignored"))

	got := n.Serialize(0)
	if got != "<expression>a + b</expression>\n" {
		t.Fatalf("got %q", got)
	}
	if strings.Contains(got, "ignored") {
		t.Fatalf("content element must not serialize children")
	}
}

func TestSerializeNestedIndentation(t *testing.T) {
	inner := New("TypeName").SetContent("INT")
	n := New("Type").Child(inner)
	got := n.Serialize(0)
	want := "<Type>\n    <TypeName>INT</TypeName>\n</Type>\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSerializeAttributesSorted(t *testing.T) {
	n := New("e").Attribute("b", "2").Attribute("a", "1").Close()
	if got := n.Serialize(0); got != "<e a=\"1\" b=\"2\"/>\n" {
		t.Fatalf("got %q", got)
	}
}

func TestFindDepthFirst(t *testing.T) {
	root := New("Project").
		Child(New("Types").Child(New("GlobalNamespace"))).
		Child(New("Instances"))

	if root.Find("GlobalNamespace") == nil {
		t.Fatalf("expected to find nested GlobalNamespace")
	}
	if root.Find("Nope") != nil {
		t.Fatalf("expected nil for unknown tag")
	}
}

func TestFindPath(t *testing.T) {
	root := New("Project").
		Child(New("Types").Child(New("GlobalNamespace")))

	if root.FindPath("Types", "GlobalNamespace") == nil {
		t.Fatalf("expected path hit")
	}
	if root.FindPath("Types", "Instances") != nil {
		t.Fatalf("expected nil for broken path")
	}
}

func TestFindReturnsAliasForInPlaceMutation(t *testing.T) {
	root := New("Project").Child(New("Instances"))
	anchor := root.Find("Instances")
	anchor.Child(New("Configuration"))

	if got := len(root.Children[0].Children); got != 1 {
		t.Fatalf("mutation through Find not visible in tree: %d children", got)
	}
}
