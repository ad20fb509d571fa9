package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/color-game/palette-api/models"
	"github.com/color-game/palette-api/palette"
)

var (
	generateBase     string
	generateRelation string
	generateCount    int
	generateFormat   string
	formatMode       string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a palette derived from a base color",
	Example: `  palette-api generate --base "#e11d48" --relation triadic --count 6
  palette-api generate --base teal --format name`,
	RunE: func(cmd *cobra.Command, args []string) error {
		relation := models.RelationType(generateRelation)
		if !relation.Valid() {
			return fmt.Errorf("unknown relation %q", generateRelation)
		}

		colors, err := palette.NewGenerator(log.Default()).TryGenerate(generateBase, relation, generateCount)
		if err != nil {
			return err
		}

		for _, formatted := range palette.FormatAll(colors, models.DisplayFormat(generateFormat)) {
			fmt.Fprintln(cmd.OutOrStdout(), formatted)
		}
		return nil
	},
}

var mixCmd = &cobra.Command{
	Use:   "mix <color> [color...]",
	Short: "Print the perceptual average of the valid colors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, ok := palette.MixColors(args)
		if !ok {
			return fmt.Errorf("no valid color in %s", strings.Join(args, ", "))
		}
		fmt.Fprintln(cmd.OutOrStdout(), base)
		return nil
	},
}

var formatCmd = &cobra.Command{
	Use:   "format <color>",
	Short: "Print a color in hex, rgb, hsl or name notation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), palette.Format(args[0], models.DisplayFormat(formatMode)))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateBase, "base", "", "base color (hex, rgb(), hsl() or a color name)")
	generateCmd.Flags().StringVar(&generateRelation, "relation", string(models.Monochromatic), "monochromatic, analogous, complementary, split-complementary or triadic")
	generateCmd.Flags().IntVar(&generateCount, "count", models.DefaultCount, "number of colors")
	generateCmd.Flags().StringVar(&generateFormat, "format", string(models.FormatHex), "output notation: hex, rgb, hsl or name")
	generateCmd.MarkFlagRequired("base")

	formatCmd.Flags().StringVar(&formatMode, "mode", string(models.FormatHex), "hex, rgb, hsl or name")
}
