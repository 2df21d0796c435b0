package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoverse/teq"
	"github.com/gnoverse/teq/check"
	"github.com/gnoverse/teq/syntax"
)

// expand command flags
var (
	expandDoc   string
	expandSteps int
)

var expandCmd = &cobra.Command{
	Use:   "expand [terms...]",
	Short: "Expand alias terms against a document's premise",
	Long: `Parses each term and, while its head is a known alias, replaces it with
the alias definition. Every step of the chain is printed.
Example) teq expand -d rewrites.teq.yaml 'pair!(b)'`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide terms to expand")
			os.Exit(1)
		}
		runExpand(logger, args, expandDoc, expandSteps)
	},
}

func init() {
	expandCmd.Flags().StringVarP(&expandDoc, "doc", "d", "", "Document whose premise defines the aliases")
	expandCmd.Flags().IntVar(&expandSteps, "steps", 10, "Maximum number of expansion steps per term")
}

func runExpand(logger *zap.Logger, args []string, docPath string, steps int) {
	p := teq.NewPremise()
	if docPath != "" {
		doc, err := check.LoadDocument(docPath)
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

	for i, arg := range args {
		term, err := syntax.Parse(arg)
		if err != nil {
			logger.Error("Error parsing term", zap.String("term", arg), zap.Error(err))
			os.Exit(1)
		}

		if i > 0 {
			fmt.Println()
		}
		chain := expandChain(p, term, steps)
		fmt.Println(chain[0])
		for _, step := range chain[1:] {
			fmt.Printf("= %s\n", step)
		}
	}
}

// expandChain returns term followed by each head expansion, stopping
// when the head is no known alias, the arity does not match, or the
// step limit is reached. The limit bounds self referential aliases.
func expandChain(p *teq.Premise, term teq.Term, steps int) []teq.Term {
	chain := []teq.Term{term}
	for i := 0; i < steps; i++ {
		head, ok := term.(*teq.Normalizable)
		if !ok {
			break
		}
		n, ok := p.Normalization(head.Symbol)
		if !ok {
			break
		}
		expanded, ok := n.Expand(head.Args)
		if !ok {
			break
		}
		term = expanded
		chain = append(chain, term)
	}
	return chain
}
