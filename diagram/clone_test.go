package diagram

import "testing"

func TestCloneSubtreeIndependence(t *testing.T) {
	original := testNode("A", TypePanel,
		testNode("B", TypeBreaker,
			testNode("C", TypeLoad)))
	Walk([]*Node{original}, func(n *Node) {
		n.Model = "M-" + n.ID
		n.Voltage = "480V"
	})
	original.Children[0].ExtraConnections = []string{"elsewhere"}

	clone := CloneSubtree(original)

	// Same shape and descriptive fields.
	if len(clone.Children) != 1 || len(clone.Children[0].Children) != 1 {
		t.Fatal("clone shape differs from original")
	}
	if clone.Model != "M-A" || clone.Children[0].Voltage != "480V" {
		t.Error("descriptive fields should be preserved")
	}

	// Entirely disjoint ids.
	originalIDs := map[string]bool{}
	Walk([]*Node{original}, func(n *Node) { originalIDs[n.ID] = true })
	Walk([]*Node{clone}, func(n *Node) {
		if originalIDs[n.ID] {
			t.Errorf("clone reuses id %s", n.ID)
		}
	})

	// No inherited secondary links at any level.
	Walk([]*Node{clone}, func(n *Node) {
		if len(n.ExtraConnections) != 0 {
			t.Errorf("clone node %s inherited extra connections %v", n.ID, n.ExtraConnections)
		}
	})
}

func TestNodeClonePreservesIdentity(t *testing.T) {
	x := 10.5
	n := testNode("A", TypeGrid, testNode("B", TypeLoad))
	n.ManualX = &x
	n.ExtraConnections = []string{"Z"}

	clone := n.Clone()
	if clone.ID != "A" || clone.Children[0].ID != "B" {
		t.Error("Clone must preserve ids")
	}
	if clone.ManualX == n.ManualX || *clone.ManualX != 10.5 {
		t.Error("Clone must deep-copy manual positions")
	}

	clone.ExtraConnections[0] = "Y"
	clone.Children[0].Name = "changed"
	if n.ExtraConnections[0] != "Z" || n.Children[0].Name == "changed" {
		t.Error("Clone shares state with the original")
	}
}

func TestDocumentClone(t *testing.T) {
	doc := NewDocument()
	page := doc.CurrentPage()
	page.Items = []*Node{testNode("A", TypeGrid)}

	clone := doc.Clone()
	clone.CurrentPage().Items[0].Name = "changed"
	if page.Items[0].Name == "changed" {
		t.Error("Document.Clone shares node state")
	}
	if clone.ActiveProject != doc.ActiveProject || clone.ActivePage != doc.ActivePage {
		t.Error("active pointers should be copied")
	}
}
