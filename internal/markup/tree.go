package markup

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Tree builds a printable outline of a node sequence
func Tree(nodes Nodes) treeprint.Tree {
	root := treeprint.NewWithRoot("markup")
	addNodes(root, nodes)
	return root
}

func addNodes(t treeprint.Tree, nodes Nodes) {
	for _, n := range nodes {
		switch n := n.(type) {
		case Literal:
			t.AddNode(fmt.Sprintf("literal %q", n.Text))
		case ManaCostRef:
			t.AddNode(fmt.Sprintf("cost %s value=%s colors=%s",
				n.Cost, n.Cost.Value, strings.Join(n.Cost.Colors.Names(), ",")))
		case KeywordCall:
			t.AddNode("call " + n.String())
		case CardNameRef:
			t.AddNode("card name")
		case LineBreak:
			t.AddNode("line break")
		case AbilityBlock:
			addNodes(t.AddBranch(n.Kind.String()), n.Body)
		case BulletList:
			list := t.AddBranch("list")
			for i, item := range n.Items {
				addNodes(list.AddBranch(fmt.Sprintf("item %d", i+1)), item)
			}
		case Keyword:
			label := "keyword " + n.Call.Name
			if n.Unknown {
				label += " (unknown)"
			}
			k := t.AddBranch(label)
			addNodes(k.AddBranch("display"), n.Display)
			if n.Call.Reminder && !n.Unknown {
				addNodes(k.AddBranch("reminder"), n.Reminder)
			}
		case Reminder:
			addNodes(t.AddBranch("reminder"), n.Body)
		}
	}
}
