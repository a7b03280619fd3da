package feedme

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/esteban0203/FMA-2/internal/model"
	"github.com/esteban0203/FMA-2/internal/repository"
	"github.com/esteban0203/FMA-2/internal/service"
)

var settingsYAML bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage allergens, measurement system, and appliances",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(cmd.Context(), func(repo repository.Repository) error {
			s, err := repo.Settings(cmd.Context())
			if err != nil {
				return err
			}
			if settingsYAML {
				return writeSettingsYAML(cmd.OutOrStdout(), s)
			}
			printSettings(cmd.OutOrStdout(), s)
			return nil
		})
	},
}

var settingsAllergenCmd = &cobra.Command{
	Use:   "allergen <name>",
	Short: "Toggle an allergen",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(cmd, func(s model.UserSettings) (model.UserSettings, error) {
			return service.ToggleAllergen(s, args[0])
		})
	},
}

var settingsMeasurementCmd = &cobra.Command{
	Use:   "measurement <metric|imperial>",
	Short: "Set the measurement system",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		system, err := model.ParseMeasurementSystem(args[0])
		if err != nil {
			return err
		}
		return updateSettings(cmd, func(s model.UserSettings) (model.UserSettings, error) {
			return service.SetMeasurementSystem(s, system), nil
		})
	},
}

var settingsApplianceCmd = &cobra.Command{
	Use:   "appliance <id>",
	Short: "Toggle whether an appliance is available",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(cmd, func(s model.UserSettings) (model.UserSettings, error) {
			return service.ToggleAppliance(s, args[0])
		})
	},
}

func updateSettings(cmd *cobra.Command, fn func(model.UserSettings) (model.UserSettings, error)) error {
	return withRepo(cmd.Context(), func(repo repository.Repository) error {
		s, err := service.UpdateSettings(cmd.Context(), repo, fn)
		if err != nil {
			return err
		}
		printSettings(cmd.OutOrStdout(), s)
		return nil
	})
}

func printSettings(w io.Writer, s model.UserSettings) {
	fmt.Fprintf(w, "Allergens: %s\n", service.AllergenSummary(s))
	fmt.Fprintf(w, "Measurement: %s\n", service.MeasurementLabel(s.MeasurementSystem))
	fmt.Fprintln(w, "ID\tAPPLIANCE\tAVAILABLE")
	for _, a := range s.Appliances {
		fmt.Fprintf(w, "%s\t%s\t%t\n", a.ID, a.Name, a.IsAvailable)
	}
}

type settingsDoc struct {
	Allergens         []string        `yaml:"allergens"`
	MeasurementSystem string          `yaml:"measurement_system"`
	Appliances        map[string]bool `yaml:"appliances"`
	Available         []string        `yaml:"available"`
}

func writeSettingsYAML(w io.Writer, s model.UserSettings) error {
	doc := settingsDoc{
		Allergens:         s.Allergens,
		MeasurementSystem: string(s.MeasurementSystem),
		Appliances:        make(map[string]bool, len(s.Appliances)),
		Available:         []string{},
	}
	for _, a := range s.Appliances {
		doc.Appliances[a.ID] = a.IsAvailable
	}
	for _, a := range service.AvailableAppliances(s) {
		doc.Available = append(doc.Available, a.ID)
	}
	b, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsAllergenCmd, settingsMeasurementCmd, settingsApplianceCmd)
	settingsShowCmd.Flags().BoolVar(&settingsYAML, "yaml", false, "Print settings as YAML")
}
