package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"commentvars/internal/commentscan"
	"commentvars/internal/config"
	"commentvars/internal/diagnostic"
	"commentvars/internal/engine"
	"commentvars/internal/occurrence"
	"commentvars/internal/resolve"
	"commentvars/internal/settings"
	"commentvars/internal/substitute"
)

var dumper = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

// view is the symbol table selected by the settings: the core result or one
// of its variations.
type view struct {
	doc     *config.Document
	core    *engine.Result
	variant *engine.Variant
}

func (v *view) Lookup(key string) (string, bool) {
	if v.variant != nil {
		return v.variant.Lookup(key)
	}

	return v.core.Lookup(key)
}

func (v *view) resolved() resolve.ResolvedMapping {
	if v.variant != nil {
		return v.variant.Resolved
	}

	return v.core.Resolved
}

func (v *view) reverse() resolve.ReverseMapping {
	if v.variant != nil {
		return v.variant.Reverse
	}

	return v.core.Reverse
}

func (v *view) dumpable() any {
	if v.variant != nil {
		return v.variant
	}

	return v.core
}

func (a *app) loadCore(ctx context.Context) (*config.Document, *engine.Result, error) {
	doc, err := config.LoadFile(a.settings.Config)
	if err != nil {
		return nil, nil, err
	}

	a.logger.Debug("loaded document", "path", doc.Path, "variations", len(doc.VariationOrder))

	res, diags, err := engine.New(occurrence.NewYAMLScanner()).ResolveDocument(ctx, doc)
	if err != nil {
		return nil, nil, err
	}

	if err := report(a.errOut, diags); err != nil {
		return nil, nil, err
	}

	return doc, res, nil
}

func (a *app) load(ctx context.Context) (*view, error) {
	doc, res, err := a.loadCore(ctx)
	if err != nil {
		return nil, err
	}

	v := &view{doc: doc, core: res}

	name := a.settings.Variant
	if name == "" {
		return v, nil
	}

	tree, ok := doc.Variations[name]
	if !ok {
		var diags diagnostic.Diagnostics
		diags.AddError(fmt.Sprintf("unknown variation %q", name), suggestVariation(name, doc.VariationOrder)...)

		return nil, report(a.errOut, diags)
	}

	variant, diags := engine.ResolveVariant(res, name, tree)
	if err := report(a.errOut, diags); err != nil {
		return nil, err
	}

	v.variant = variant

	return v, nil
}

func suggestVariation(name string, names []string) []string {
	ranks := fuzzy.RankFindFold(name, names)
	sort.Sort(ranks)

	out := make([]string, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, r.Target)
	}

	return out
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the document and every variation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, res, err := a.loadCore(cmd.Context())
			if err != nil {
				return err
			}

			var diags diagnostic.Diagnostics
			for _, name := range doc.VariationOrder {
				_, vd := engine.ResolveVariant(res, name, doc.Variations[name])
				diags.Merge(vd)

				a.logger.Debug("checked variation", "name", name, "errors", len(vd.Errors()))
			}

			if err := report(a.errOut, diags); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "ok: %d keys, %d aliases, %d composed, %d variations\n",
				len(res.Order), len(res.AliasOrder), len(res.Composed), len(doc.VariationOrder))

			return nil
		},
	}
}

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Print every key with its resolved text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			if a.dump {
				dumper.Fdump(a.out, v.dumpable())
				return nil
			}

			return writeYAML(a.out, map[string]string(v.resolved()))
		},
	}
}

func newReverseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reverse",
		Short: "Print every resolved text with its key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			if a.dump {
				dumper.Fdump(a.out, v.reverse())
				return nil
			}

			return writeYAML(a.out, map[string]string(v.reverse()))
		},
	}
}

func newExpandCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expand",
		Short: "Replace placeholders read from stdin with their text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			text, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			expanded, unknown := substitute.Expand(string(text), v)
			for _, tok := range unknown {
				a.logger.Warn("unknown placeholder left in place", "token", tok)
			}

			_, err = io.WriteString(a.out, expanded)

			return err
		},
	}
}

func newCompressCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compress",
		Short: "Replace text read from stdin with placeholders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			text, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			_, err = io.WriteString(a.out, substitute.Compress(string(text), v.reverse()))

			return err
		},
	}
}

func newUsageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Report placeholders used in Go comments",
		Long: `usage loads the Go packages matching --patterns, lists how often each key
is referenced from comments and warns about placeholders that do not resolve.
Files matching the document's ignores globs are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			usages, err := commentscan.New(".", v.doc.Ignores).LoadPackages(cmd.Context(), a.settings.Patterns...)
			if err != nil {
				return err
			}

			a.logger.Debug("scanned comments", "patterns", strings.Join(a.settings.Patterns, " "), "usages", len(usages))

			if a.dump {
				dumper.Fdump(a.out, usages)
			} else {
				writeTally(a.out, usages, v)
			}

			return report(a.errOut, commentscan.Report(usages, v))
		},
	}

	cmd.Flags().StringSlice(settings.KeyPatterns, settings.Defaults().Patterns, "Go package patterns to scan")

	return cmd
}

func writeTally(w io.Writer, usages []commentscan.Usage, v *view) {
	all := slices.Concat(v.core.Order, v.core.AliasOrder)
	counts := commentscan.Tally(usages)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, key := range all {
		if n := counts[key]; n > 0 {
			fmt.Fprintf(tw, "%s\t%d\n", key, n)
		}
	}

	for _, key := range commentscan.Unused(usages, all) {
		fmt.Fprintf(tw, "%s\tunused\n", key)
	}

	_ = tw.Flush()
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return enc.Close()
}
