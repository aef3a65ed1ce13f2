package translator

import (
	"strings"

	"github.com/expr-lang/expr/ast"

	"formSheet/cellname"
)

// FindCellRefsVisitor collects identifiers shaped like cell names, skipping callees
type FindCellRefsVisitor struct {
	identifiers []*ast.IdentifierNode
	callees     map[*ast.IdentifierNode]bool
}

func NewFindCellRefsVisitor() *FindCellRefsVisitor {
	return &FindCellRefsVisitor{
		callees: make(map[*ast.IdentifierNode]bool),
	}
}

func (v *FindCellRefsVisitor) Visit(node *ast.Node) {
	var ok bool
	var callNode *ast.CallNode
	var identifierNode *ast.IdentifierNode

	if callNode, ok = (*node).(*ast.CallNode); ok && callNode.Callee != nil {
		if identifierNode, ok = callNode.Callee.(*ast.IdentifierNode); ok {
			v.callees[identifierNode] = true
		}
		return
	}

	if identifierNode, ok = (*node).(*ast.IdentifierNode); ok && cellname.LooksLikeCellName(identifierNode.Value) {
		v.identifiers = append(v.identifiers, identifierNode)
	}
}

// CellRefs are upper cased and unique, in first-seen order
func (v *FindCellRefsVisitor) CellRefs() []string {
	refs := make([]string, 0, len(v.identifiers))
	seen := make(map[string]bool, len(v.identifiers))
	for _, identifier := range v.identifiers {
		if v.callees[identifier] {
			continue
		}
		name := strings.ToUpper(identifier.Value)
		if !seen[name] {
			seen[name] = true
			refs = append(refs, name)
		}
	}
	return refs
}
