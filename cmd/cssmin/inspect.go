package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	tp "github.com/xlab/treeprint"

	"cssmin"
	"cssmin/ast"
	"cssmin/token"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] file.css",
	Short: "Show the parsed structure of a CSS file",
	Long:  `Inspect parses a stylesheet and prints its rules and declarations as a tree`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	ss, err := cssmin.Parse(src)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	tree := tp.New()
	tree.SetValue("stylesheet")
	for _, rule := range ss.Rules {
		addRule(tree, rule)
	}
	fmt.Fprint(cmd.OutOrStdout(), tree.String())
	return nil
}

func addRule(tree tp.Tree, rule ast.Rule) {
	switch r := rule.(type) {
	case *ast.QualifiedRule:
		branch := tree.AddBranch(strings.Join(r.Selectors, ", "))
		for _, decl := range r.Declarations {
			branch.AddNode(decl.String())
		}
	case *ast.AtRule:
		label := "@" + r.Name
		if text := preludeText(r.Prelude); text != "" {
			label += " " + text
		}
		if r.Block == nil {
			tree.AddNode(label)
			return
		}
		branch := tree.AddBranch(label)
		for _, item := range r.Block.Items {
			switch it := item.(type) {
			case *ast.Declaration:
				branch.AddNode(it.String())
			case ast.Rule:
				addRule(branch, it)
			}
		}
	}
}

func preludeText(prelude []token.Token) string {
	var b strings.Builder
	for _, tok := range prelude {
		if tok.Kind == token.Whitespace {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(tok.Text())
	}
	return b.String()
}
