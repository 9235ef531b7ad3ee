package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/manaforge/internal/card"
	"github.com/arcanaland/manaforge/internal/markup"
	"github.com/arcanaland/manaforge/internal/pipeline"
)

type parseOptions struct {
	expand bool
	html   bool
	name   string
	cost   string
}

var parseCmd = &cobra.Command{
	Use:   "parse [text]",
	Short: "Show how a piece of card text is parsed",
	Long: `Parse prints the syntax tree of card text markup. With --expand keyword calls are
replaced by their definitions first; with --html the rendered fragment is
printed instead of the tree.

Templates may reference card fields. Only card__name (--name) is available
unless --cost is given, which adds the cost__ fields and card__cost badges.

Examples:
  manaforge parse 'k.blocker()|Another line'
  manaforge parse --expand 'kr.tribute((2DA))'
  manaforge parse --html --name Goblin '<<(1D)>>: ~ attacks.'
  manaforge parse --html --cost '(2DA)' 'kr.complicated(x)'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := parseOptions{}
		opts.expand, _ = cmd.Flags().GetBool("expand")
		opts.html, _ = cmd.Flags().GetBool("html")
		opts.name, _ = cmd.Flags().GetString("name")
		opts.cost, _ = cmd.Flags().GetString("cost")

		p, err := cfg.Pipeline("")
		if err != nil {
			return err
		}

		out, err := parseText(p, args[0], opts)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolP("expand", "e", false, "expand keyword calls")
	parseCmd.Flags().Bool("html", false, "print the rendered HTML fragment")
	parseCmd.Flags().String("name", "CARDNAME", "card name used for ~ in --html output")
	parseCmd.Flags().String("cost", "", "mana cost whose fields templates may reference, e.g. (2DA)")
}

// parseText returns the syntax tree of text, or its HTML rendering
func parseText(p *pipeline.Pipeline, text string, opts parseOptions) (string, error) {
	nodes, err := p.Grammar.Parse(text)
	if err != nil {
		return "", err
	}

	fields := card.Record{card.Name: opts.name}
	if opts.cost != "" {
		fields, err = p.RunUntil(card.Record{card.RawName: opts.name, card.RawCost: opts.cost}, "typeline")
		if err != nil {
			return "", err
		}
	}

	if opts.expand || opts.html {
		nodes, err = p.Renderer.Expander.Expand(nodes, fields)
		if err != nil {
			return "", err
		}
	}

	if !opts.html {
		return markup.Tree(nodes).String(), nil
	}

	out, err := p.Renderer.RenderExpanded(nodes)
	if err != nil {
		return "", err
	}
	out, err = fields.Format(out)
	if err != nil {
		return "", err
	}
	return out + "\n", nil
}
