package project

import (
	"path/filepath"

	"github.com/lexandro/importgraph-mcp/rewrite"
)

// PlanRewrite brings the catalog up to date and plans the renames selected by sel over
// the whole tree. Targets outside the root are reported, never renamed.
func (p *Project) PlanRewrite(sel rewrite.Selector) (*rewrite.Plan, error) {
	if _, err := p.Verify(); err != nil {
		return nil, err
	}
	tree, err := p.Tree()
	if err != nil {
		return nil, err
	}
	sel.Root = filepath.ToSlash(p.rootDir)
	sel.Resolver = p.Resolver()
	return rewrite.BuildPlan(tree.References, sel, nil)
}

// ApplyRewrite executes plan and re-analyzes the tree, whether or not the plan completed.
func (p *Project) ApplyRewrite(plan *rewrite.Plan) (*rewrite.Result, error) {
	result, applyErr := rewrite.Apply(plan, p.logger)
	if _, err := p.Reanalyze(); err != nil && applyErr == nil {
		return result, err
	}
	return result, applyErr
}
