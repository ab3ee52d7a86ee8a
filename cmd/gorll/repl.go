package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/gorll/lang/calc"
	"github.com/npillmayer/gorll/ll"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	var initFile string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive calculator",
		Long: `Start an interactive calculator.

Enter arithmetic expressions or assignments like 'let r = 2'. Commands:

  :tree   toggle display of parse trees
  :vars   list session variables

Quit with <ctrl>D.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := calc.New()
			if err != nil {
				return err
			}
			rl, err := readline.New("gorll> ")
			if err != nil {
				return err
			}
			defer rl.Close()
			intp := &Intp{calc: c, repl: rl}
			pterm.Info.Println("Welcome to the gorll calculator")
			intp.loadInitFile(initFile)
			intp.REPL()
			return nil
		},
	}
	cmd.Flags().StringVar(&initFile, "init", "", "File of statements to evaluate first")
	return cmd
}

// Intp is our interpreter object
type Intp struct {
	calc  *calc.Calculator
	repl  *readline.Instance
	trees bool // show parse trees
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := intp.calc.Eval(line); err != nil {
			tracer().Errorf("error in line %d: %v", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		intp.Eval(line)
	}
	pterm.Println("Good bye!")
}

// Eval executes a command or evaluates a calculator statement.
func (intp *Intp) Eval(line string) {
	switch line {
	case ":tree":
		intp.trees = !intp.trees
		pterm.Info.Println(fmt.Sprintf("tree display is %v", intp.trees))
		return
	case ":vars":
		for _, sym := range intp.calc.Variables() {
			pterm.Info.Println(sym.String())
		}
		return
	}
	if intp.trees {
		tree, err := intp.calc.Tree(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		renderTree(tree)
	}
	x, err := intp.calc.Eval(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Info.Println(fmt.Sprintf("%g", x))
}

// renderTree displays a parse tree on the terminal.
func renderTree(tree *ll.Tree) {
	var list pterm.LeveledList
	tree.Walk(func(depth int, node interface{}) {
		text := ll.LeafString(node)
		if t, ok := node.(*ll.Tree); ok {
			text = t.Rule
		}
		list = append(list, pterm.LeveledListItem{Level: depth, Text: text})
	})
	root := pterm.NewTreeFromLeveledList(list)
	pterm.DefaultTree.WithRoot(root).Render()
}
