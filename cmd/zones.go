package cmd

import (
	"fmt"
	"io"

	"github.com/smazurov/glyphd/internal/led"
	"github.com/spf13/cobra"
)

var knownModels = []led.Model{led.ModelPhone1, led.ModelPhone2, led.ModelPhone2a}

// CreateZonesCmd creates the zones command listing each model's zone layout.
func CreateZonesCmd() *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "zones",
		Short: "Print logical zones and the hardware channels they drive",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			models := knownModels
			if model != "" {
				models = []led.Model{led.ParseModel(model)}
			}
			for _, m := range models {
				printZones(cmd.OutOrStdout(), m)
			}
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", "", "Only print this model")
	return cmd
}

func printZones(w io.Writer, model led.Model) {
	translator := led.NewTranslator(model)
	fmt.Fprintf(w, "model %s: %d zones, %d channels\n", model, model.ZoneCount(), model.ChannelCount())
	for zone := range model.ZoneCount() {
		fmt.Fprintf(w, "  zone %-2d -> %s\n", zone, formatChannels(translator.Translate(zone)))
	}
}
