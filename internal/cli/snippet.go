package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphclip/pkg/blueprint"
	pkgio "github.com/matzehuels/graphclip/pkg/io"
	"github.com/matzehuels/graphclip/pkg/store"
)

// snippetCommand creates the snippet store command.
func (c *CLI) snippetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snippet",
		Aliases: []string{"snippets", "sn"},
		Short:   "Manage stored documents",
		Long: `Snippets are named documents kept in the configured store (--store or the
"store" key of the config file). Documents are validated before they are
stored.`,
	}

	cmd.AddCommand(c.snippetPutCommand())
	cmd.AddCommand(c.snippetGetCommand())
	cmd.AddCommand(c.snippetListCommand())
	cmd.AddCommand(c.snippetRemoveCommand())
	cmd.AddCommand(c.snippetPasteCommand())

	return cmd
}

// withStore opens the store for the duration of fn.
func (c *CLI) withStore(cmd *cobra.Command, fn func(store.Store) error) error {
	st, err := c.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func (c *CLI) snippetPutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "put NAME FILE",
		Short: "Store a document under NAME",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[1])
			if err != nil {
				return err
			}
			doc, err := pkgio.Unmarshal(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			normalized, err := pkgio.Marshal(doc)
			if err != nil {
				return err
			}
			return c.withStore(cmd, func(st store.Store) error {
				if err := st.Put(cmd.Context(), args[0], normalized); err != nil {
					return err
				}
				printSuccess("Stored %s", StyleHighlight.Render(args[0]))
				printStats(doc.NodeCount(), doc.ConnectionCount())
				printNextStep("Fetch it with", fmt.Sprintf("%s snippet get %s", appName, args[0]))
				return nil
			})
		},
	}
}

func (c *CLI) snippetGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Print a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				data, ok, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("snippet %q not found", args[0])
				}
				if output == "" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return err
				}
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) snippetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored documents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				names, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(names) == 0 {
					printInfo("No snippets")
					return nil
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}

func (c *CLI) snippetRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME...",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove stored documents",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				for _, name := range args {
					if err := st.Delete(cmd.Context(), name); err != nil {
						return err
					}
					printSuccess("Removed %s", name)
				}
				return nil
			})
		},
	}
}

// snippetPasteCommand pastes a document into a stored snippet, creating the
// snippet when it does not exist.
func (c *CLI) snippetPasteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paste NAME FILE",
		Short: "Paste a document into a stored snippet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]
			dec, err := c.newDecoder()
			if err != nil {
				return err
			}
			data, err := readInput(cmd, path)
			if err != nil {
				return err
			}
			clip, err := pkgio.Unmarshal(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			return c.withStore(cmd, func(st store.Store) error {
				ctx := cmd.Context()
				g := blueprint.New(name)
				base, ok, err := st.Get(ctx, name)
				if err != nil {
					return err
				}
				if ok {
					doc, err := pkgio.Unmarshal(base)
					if err != nil {
						return fmt.Errorf("snippet %s: %w", name, err)
					}
					if _, err := dec.Restore(g, doc); err != nil {
						return err
					}
				}

				report, err := dec.Paste(g, clip)
				if err != nil {
					return err
				}
				out, err := pkgio.Marshal(pkgio.NewEncoder(c.codecOptions()...).Encode(g))
				if err != nil {
					return err
				}
				if err := st.Put(ctx, name, out); err != nil {
					return err
				}
				printSuccess("Pasted %s into %s", path, StyleHighlight.Render(name))
				printReport(report)
				return nil
			})
		},
	}
}
