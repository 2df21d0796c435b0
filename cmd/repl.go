package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoverse/teq"
	"github.com/gnoverse/teq/check"
	"github.com/gnoverse/teq/syntax"
)

const (
	historyFile = ".teq_history"
	replPrompt  = "teq> "
	replBanner  = "teq REPL. Ctrl+C to cancel input, Ctrl+D to exit. Type :help for commands."
	replHelp    = `
REPL commands:
  :help                            Show this help
  :quit / :exit                    Exit the REPL
  :fact <term> = <term>            Add an equality fact to the premise
  :alias <sym>(<params>) = <term>  Define an alias
  :premise                         Show the current premise
  :expand <term>                   Expand a term's head alias step by step
  :stats <term>                    Show a term's size and literals
  :reset                           Start over with an empty premise

Anything else is a query:
  <term> = <term>                  Decide equality under the premise
  <term>                           Echo the term in canonical form
`
)

var replDoc string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively build a premise and query it",
	Run: func(cmd *cobra.Command, args []string) {
		p := teq.NewPremise()
		if replDoc != "" {
			doc, err := check.LoadDocument(replDoc)
			if err != nil {
				logger.Error("Error loading document", zap.Error(err))
				os.Exit(1)
			}
			p, err = check.BuildPremise(doc.Premise)
			if err != nil {
				logger.Error("Error building premise", zap.Error(err))
				os.Exit(1)
			}
		}
		runRepl(p)
	},
}

func init() {
	replCmd.Flags().StringVarP(&replDoc, "doc", "d", "", "Document whose premise seeds the session")
}

func runRepl(p *teq.Premise) {
	fmt.Println(replBanner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	// Load history (best-effort)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(replPrompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if err != nil {
			// Ctrl+C aborts the current input; let the user start again.
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		// REPL commands (prefixed with ':')
		if strings.HasPrefix(line, ":") {
			if done := replCommand(p, line); done {
				break
			}
			continue
		}

		replQuery(p, line)
	}

	// Persist history (best-effort)
	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}

// replCommand handles :help, :quit, :fact, :alias, :premise, :expand,
// :stats and :reset.
func replCommand(p *teq.Premise, line string) (exit bool) {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case ":help":
		fmt.Print(replHelp)

	case ":quit", ":exit":
		return true

	case ":reset":
		*p = *teq.NewPremise()
		fmt.Println("premise reset.")

	case ":fact":
		rest := strings.TrimSpace(strings.TrimPrefix(line, ":fact"))
		left, right, err := parseEquation(rest)
		if err != nil {
			fmt.Println(err)
			return false
		}
		p.Insert(left, right)

	case ":alias":
		rest := strings.TrimSpace(strings.TrimPrefix(line, ":alias"))
		if err := insertAlias(p, rest); err != nil {
			fmt.Println(err)
		}

	case ":premise":
		printPremise(p)

	case ":expand":
		rest := strings.TrimSpace(strings.TrimPrefix(line, ":expand"))
		term, err := syntax.Parse(rest)
		if err != nil {
			fmt.Println(err)
			return false
		}
		for _, step := range expandChain(p, term, expandSteps) {
			fmt.Println(step)
		}

	case ":stats":
		rest := strings.TrimSpace(strings.TrimPrefix(line, ":stats"))
		term, err := syntax.Parse(rest)
		if err != nil {
			fmt.Println(err)
			return false
		}
		size, literals := termStats(term)
		fmt.Printf("subterms: %d\n", size)
		if len(literals) == 0 {
			fmt.Println("literals: none")
		} else {
			parts := make([]string, len(literals))
			for i, lit := range literals {
				parts[i] = string(lit)
			}
			fmt.Printf("literals: %s\n", strings.Join(parts, ", "))
		}

	default:
		fmt.Println("unknown command. Type :help for help.")
	}
	return false
}

func replQuery(p *teq.Premise, line string) {
	if strings.Contains(line, "=") {
		left, right, err := parseEquation(line)
		if err != nil {
			fmt.Println(err)
			return
		}
		if teq.Equals(left, right, p) {
			fmt.Println(color.GreenString("equal"))
		} else {
			fmt.Println(color.YellowString("unequal"))
		}
		return
	}

	term, err := syntax.Parse(line)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(term)
}

// parseEquation splits "t1 = t2" and parses both sides. The equals sign
// never occurs inside term syntax, so the first one is the separator.
func parseEquation(input string) (teq.Term, teq.Term, error) {
	parts := strings.SplitN(input, "=", 2)
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("expected <term> = <term>, got %q", input)
	}
	left, err := syntax.Parse(parts[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := syntax.Parse(parts[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// insertAlias parses "sym(p1, p2) = term" and registers the alias. The
// head must be a function whose arguments are all literals.
func insertAlias(p *teq.Premise, input string) error {
	parts := strings.SplitN(input, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected <symbol>(<params>) = <term>, got %q", input)
	}

	head, err := syntax.Parse(parts[0])
	if err != nil {
		return err
	}
	fn, ok := head.(*teq.Function)
	if !ok {
		return fmt.Errorf("alias head must be a function term, got %s", head)
	}
	params := make([]teq.Atom, len(fn.Args))
	for i, arg := range fn.Args {
		lit, ok := arg.(teq.Literal)
		if !ok {
			return fmt.Errorf("alias parameter %d must be a literal, got %s", i, arg)
		}
		params[i] = lit.Value
	}

	equivalence, err := syntax.Parse(parts[1])
	if err != nil {
		return err
	}

	if !p.InsertNormalization(fn.Symbol, params, equivalence) {
		return fmt.Errorf("alias %s: defined twice", fn.Symbol)
	}
	return nil
}

// printPremise lists each fact once, smaller side first, then the
// aliases in symbol order.
func printPremise(p *teq.Premise) {
	p.EachEquality(func(key teq.Term, equals []teq.Term) bool {
		for _, equal := range equals {
			if teq.Compare(key, equal) < 0 {
				fmt.Printf("%s = %s\n", key, equal)
			}
		}
		return true
	})
	p.EachNormalization(func(symbol teq.Atom, n teq.Normalization) bool {
		params := make([]string, len(n.Parameters))
		for i, param := range n.Parameters {
			params[i] = string(param)
		}
		fmt.Printf("%s(%s) = %s\n", symbol, strings.Join(params, ", "), n.Equivalence)
		return true
	})
}

// termStats walks term once and reports its subterm count plus the
// distinct literal values in first-appearance order.
func termStats(term teq.Term) (size int, literals []teq.Atom) {
	seen := make(map[teq.Atom]bool)
	teq.Walk(term, teq.VisitorFunc(func(t teq.Term) bool {
		size++
		if lit, ok := t.(teq.Literal); ok && !seen[lit.Value] {
			seen[lit.Value] = true
			literals = append(literals, lit.Value)
		}
		return true
	}))
	return size, literals
}
