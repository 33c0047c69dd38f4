package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/smazurov/glyphd/internal/config"
	"github.com/smazurov/glyphd/internal/glyph"
	"github.com/smazurov/glyphd/internal/led"
	"github.com/smazurov/glyphd/internal/logging"
	"github.com/smazurov/glyphd/internal/mapping"
	"github.com/spf13/cobra"
)

// CreateMappingCmd creates the mapping command with its validate and show subcommands.
func CreateMappingCmd() *cobra.Command {
	var mappingFile string
	var model string
	var configFile string

	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Inspect the zone mapping file",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Initialize(config.LoadLoggingConfig(configFile))
		},
	}
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.toml", "Configuration file, read for logging settings")
	cmd.PersistentFlags().StringVarP(&mappingFile, "file", "f", mapping.DefaultPath, "Mapping file")
	cmd.PersistentFlags().StringVarP(&model, "model", "m", string(led.ModelPhone2), "Light array model (20111, 22111, 23111)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the mapping file loads into a valid zone table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return validateMapping(cmd.OutOrStdout(), mappingFile, led.ParseModel(model))
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the mapped zones and their hardware channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showMapping(cmd.OutOrStdout(), mappingFile, led.ParseModel(model))
		},
	}

	cmd.AddCommand(validateCmd, showCmd)
	return cmd
}

func openStore(mappingFile string) (*mapping.Store, error) {
	if _, err := os.Stat(mappingFile); err != nil {
		return nil, fmt.Errorf("mapping file: %w", err)
	}
	store := mapping.NewTOML(mappingFile, logging.GetLogger("mapping"))
	if err := store.Read(); err != nil {
		return nil, err
	}
	return store, nil
}

func validateMapping(w io.Writer, mappingFile string, model led.Model) error {
	store, err := openStore(mappingFile)
	if err != nil {
		return err
	}

	entries, skipped, err := store.Entries(model.ZoneCount())
	if err != nil {
		return err
	}
	if _, err := glyph.NewTable(entries); err != nil {
		return fmt.Errorf("invalid mapping: %w", err)
	}

	for _, zone := range skipped {
		fmt.Fprintf(w, "warning: zone %d does not exist on model %s and is ignored\n", zone, model)
	}
	fmt.Fprintf(w, "%s: %d zones, %d contacts OK\n", mappingFile, len(entries), len(store.File().Contacts))
	return nil
}

func showMapping(w io.Writer, mappingFile string, model led.Model) error {
	store, err := openStore(mappingFile)
	if err != nil {
		return err
	}

	translator := led.NewTranslator(model)
	file := store.File()
	names := make(map[uint64]string, len(file.Contacts))
	for _, c := range file.Contacts {
		names[c.ID] = c.Name
	}

	fmt.Fprintf(w, "%-5s %-7s %-24s %-30s %s\n", "ZONE", "MODE", "CHANNELS", "APPS", "CONTACTS")
	for _, z := range file.Zones {
		mode := "static"
		if z.Pulse {
			mode = "pulse"
		}
		channels := "-"
		if z.Zone < model.ZoneCount() {
			channels = formatChannels(translator.Translate(z.Zone))
		}
		contacts := make([]string, 0, len(z.Contacts))
		for _, id := range z.Contacts {
			if name, ok := names[id]; ok {
				contacts = append(contacts, fmt.Sprintf("%s(%d)", name, id))
			} else {
				contacts = append(contacts, fmt.Sprint(id))
			}
		}
		fmt.Fprintf(w, "%-5d %-7s %-24s %-30s %s\n", z.Zone, mode, channels, strings.Join(z.Apps, ","), strings.Join(contacts, ","))
	}
	return nil
}

// formatChannels renders contiguous channel runs as ranges.
func formatChannels(channels []int) string {
	if len(channels) == 0 {
		return "-"
	}
	first, last := channels[0], channels[len(channels)-1]
	if len(channels) > 1 && last-first == len(channels)-1 {
		return fmt.Sprintf("%d-%d", first, last)
	}
	parts := make([]string, len(channels))
	for i, ch := range channels {
		parts[i] = fmt.Sprint(ch)
	}
	return strings.Join(parts, ",")
}
