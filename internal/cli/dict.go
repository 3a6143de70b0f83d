package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/markercube/pkg/fiducial"
)

// dictCommand creates the dictionary command group.
func (c *CLI) dictCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "List and export marker dictionaries",
	}

	cmd.AddCommand(c.dictListCommand())
	cmd.AddCommand(c.dictExportCommand())

	return cmd
}

// dictListCommand creates the "dict list" subcommand.
func (c *CLI) dictListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in dictionaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			builtins := fiducial.Builtins()
			rows := make([][]string, len(builtins))
			for i, b := range builtins {
				name := b.Name
				if name == fiducial.DefaultDictionary {
					name += " (default)"
				}
				rows[i] = []string{
					name,
					fmt.Sprintf("%dx%d", b.MarkerSize, b.MarkerSize),
					strconv.Itoa(b.Count),
				}
			}
			printTable([]string{"Dictionary", "Bits", "Markers"}, rows)
			printDetail("Other dictionaries load from a codeword table with --dictionary-file")
			return nil
		},
	}
}

// dictExportCommand creates the "dict export" subcommand.
func (c *CLI) dictExportCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "export NAME FILE",
		Short: "Write a built-in dictionary as a YAML codeword table",
		Long: `Export writes the codewords of a built-in dictionary to FILE.

The table can be edited or replaced by another tool's dictionary of the
same layout and passed back with 'generate --dictionary-file'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name, path := args[0], args[1]
			prog := newProgress(loggerFromContext(ctx))

			store, err := newCache(!noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			sp := newSpinner(ctx, c.errOut, "Preparing dictionary "+name)
			sp.start()
			d, err := fiducial.NewCatalogue(store).Lookup(ctx, name)
			sp.stop()
			if err != nil {
				return err
			}
			if err := fiducial.Save(path, d); err != nil {
				return err
			}
			prog.done("Dictionary exported")

			printSuccess("Exported %s", StyleNumber.Render(fmt.Sprintf("%d codewords", d.Len())))
			printKeyValue("Min distance", strconv.Itoa(fiducial.MinDistance(d)))
			printFile(path)
			printNextStep("Generate with it", fmt.Sprintf("%s generate DIR --%s %s", appName, flagDictionaryFile, path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, flagNoCache, false, "do not read or write the dictionary cache")
	return cmd
}
