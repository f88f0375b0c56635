// Command gqt is an interactive terminal query builder for a GraphQL
// endpoint: it fetches the schema, lets a user assemble an operation field
// by field, and runs it.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shyptr/gqt/config"
	"github.com/shyptr/gqt/persistence"
	"github.com/shyptr/gqt/provider"
	"github.com/shyptr/gqt/query"
	"github.com/shyptr/gqt/tree"
	"github.com/shyptr/gqt/ui"
)

// options layers the flags that aren't part of config.Config onto the
// resolved config used by run.
type options struct {
	cfg   *config.Config
	curl  bool
	list  bool
	clear bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gqt:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: config.FromEnv()}

	cmd := &cobra.Command{
		Use:           "gqt",
		Short:         "Build and run GraphQL queries interactively",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	cfg := opts.cfg
	flags.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "GraphQL endpoint URL (or $GQT_ENDPOINT)")
	flags.BoolVar(&cfg.Insecure, "insecure", cfg.Insecure, "skip TLS certificate verification")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	flags.StringVar(&cfg.StorageURL, "storage", cfg.StorageURL, "gocloud blob URL for saved queries")
	flags.StringVar(&cfg.QueryName, "name", cfg.QueryName, "name of the saved query to load/save (loading defaults to the most recently saved one)")
	flags.BoolVar(&cfg.PrintSchema, "print-schema", false, "print the endpoint's SDL and exit")
	flags.BoolVar(&cfg.Repeat, "repeat", false, "run the most recently saved query without opening the editor")
	flags.BoolVar(&opts.curl, "curl", false, "print the equivalent curl command instead of running the query")
	flags.BoolVar(&opts.list, "list", false, "list saved query names and exit")
	flags.BoolVar(&opts.clear, "clear", false, "delete every saved query in the storage bucket and exit")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	cfg := opts.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(os.Stderr, "", 0)

	store := persistence.NewStore(cfg.StorageURL)
	store.Logger = logger
	defer store.Close()

	if opts.clear {
		return store.Clear(ctx)
	}
	if opts.list {
		return list(ctx, store)
	}

	client, err := provider.Transport(cfg.Insecure, cfg.Timeout)
	if err != nil {
		return err
	}

	schemaProvider := &provider.HTTPSchemaProvider{Endpoint: cfg.Endpoint, Headers: cfg.Headers, Client: client, Logger: logger}
	doc, err := schemaProvider.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch schema: %w", err)
	}

	if cfg.PrintSchema {
		fmt.Println(doc.String())
		return nil
	}

	t, err := tree.Build(doc)
	if err != nil {
		return fmt.Errorf("build tree: %w", err)
	}

	if err := store.Load(ctx, cfg.QueryName, t); err != nil && err != persistence.ErrNoRecentQuery {
		return fmt.Errorf("load saved query: %w", err)
	}

	executor := &provider.HTTPQueryExecutor{Endpoint: cfg.Endpoint, Headers: cfg.Headers, Client: client, Logger: logger}

	if opts.curl {
		q, err := query.Build(t)
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		fmt.Println(curlCommand(cfg.Endpoint, cfg.Headers, q))
		return nil
	}

	if cfg.Repeat {
		return repeat(ctx, t, executor)
	}

	controller := ui.NewController(t, executor, store, cfg.QueryName)
	if _, err := tea.NewProgram(controller).Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return store.Save(ctx, cfg.QueryName, t)
}

func list(ctx context.Context, store *persistence.Store) error {
	names, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list saved queries: %w", err)
	}
	if len(names) == 0 {
		fmt.Println("no saved queries")
		return nil
	}
	for _, n := range names {
		if n == "" {
			n = "<default>"
		}
		fmt.Println(n)
	}
	return nil
}

func repeat(ctx context.Context, t *tree.Tree, executor *provider.HTTPQueryExecutor) error {
	q, err := query.Build(t)
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	data, err := executor.Execute(ctx, q, nil)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// curlCommand reproduces the original's CURL_COMMAND template: a single
// shell-quoted POST carrying the built operation as a JSON body.
func curlCommand(endpoint string, headers map[string]string, q string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "curl -s -X POST %s", shellQuote(endpoint))
	for k, v := range headers {
		fmt.Fprintf(&b, " -H %s", shellQuote(fmt.Sprintf("%s: %s", k, v)))
	}
	b.WriteString(" -H " + shellQuote("Content-Type: application/json"))
	body := fmt.Sprintf(`{"query": %s}`, jsonQuote(q))
	fmt.Fprintf(&b, " -d %s", shellQuote(body))
	return b.String()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func jsonQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
