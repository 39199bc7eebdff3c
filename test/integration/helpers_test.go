package integration

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/lemonberrylabs/simplexpr/pkg/expr"
	"github.com/lemonberrylabs/simplexpr/pkg/types"
)

func lit(s string) expr.Node {
	return &expr.LiteralNode{Value: types.NewString(s)}
}

func num(f float64) expr.Node {
	return &expr.LiteralNode{Value: types.NewFloat(f)}
}

func varRef(name string) expr.Node {
	return &expr.VarRefNode{Name: name}
}

func bin(op expr.BinOp, left, right expr.Node) expr.Node {
	return &expr.BinaryNode{Op: op, Left: left, Right: right}
}

func ifElse(cond, then, els expr.Node) expr.Node {
	return &expr.IfElseNode{Cond: cond, Then: then, Else: els}
}

func call(fn string, args ...expr.Node) expr.Node {
	return &expr.CallNode{Function: fn, Args: args}
}

// indexPath chains one index node per path element over a JSON document.
func indexPath(doc expr.Node, path ...string) expr.Node {
	node := doc
	for _, key := range path {
		node = &expr.IndexNode{Object: node, Index: lit(key)}
	}
	return node
}

// evalString evaluates node against vars and fails the test on error.
func evalString(t *testing.T, node expr.Node, vars map[string]types.Value) string {
	t.Helper()
	v, err := expr.Eval(node, vars)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	return v.String()
}

// loadFixture reads a file from the testdata directory.
func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}
	return data
}

// decodeFixture parses a YAML fixture from the testdata directory into out.
func decodeFixture(t *testing.T, name string, out any) {
	t.Helper()
	if err := yaml.Unmarshal(loadFixture(t, name), out); err != nil {
		t.Fatalf("failed to parse fixture %s: %v", name, err)
	}
}
