package cmd

import (
	"fmt"

	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnoverse/teq/check"
)

var initOut string

// initCmd: teq init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example query document",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initExampleDocument(initOut); err != nil {
			logger.Error("Error writing example document", zap.Error(err))
			return
		}
		fmt.Printf("Example document created: %s\n", initOut)
	},
}

func init() {
	initCmd.Flags().StringVarP(&initOut, "output", "o", "example"+check.DocExtension, "Where to write the example document")
}

func initExampleDocument(path string) error {
	d, err := yaml.Marshal(exampleDocument())
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	if err != nil {
		return err
	}

	return nil
}

// exampleDocument shows one fact, one alias, and both query forms. The
// first query holds: pair!(b) expands to f(b, b), which matches
// f(a, a) argument by argument through the fact a = b.
func exampleDocument() check.Document {
	want := true
	return check.Document{
		Name: "example",
		Premise: check.PremiseSpec{
			Facts: []check.FactSpec{
				{Left: "a", Right: "b"},
			},
			Aliases: []check.AliasSpec{
				{Symbol: "pair", Params: []string{"x"}, Equivalence: "f(x, x)"},
			},
		},
		Queries: []check.QuerySpec{
			{Left: "f(a, a)", Right: "pair!(b)", Want: &want},
			{Left: "a", Right: "c"},
		},
	}
}
