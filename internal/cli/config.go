package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/foundervalue/internal/model"
)

const configHierarchy = `Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (FOUNDERVALUE_*, OPENAI_API_KEY, ANTHROPIC_API_KEY, OLLAMA_BASE_URL)
  3. Config file (~/.foundervalue/config.yaml)
  4. Defaults`

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage foundervalue configuration",
	Long:  "Manage foundervalue configuration files and settings.\n\n" + configHierarchy,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Display the configuration after merging defaults, the config file and environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(loadConfig())
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println("  Current Configuration")
		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println()
		fmt.Println(string(yamlData))
		fmt.Println(configHierarchy)
		fmt.Println()
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.foundervalue/config.yaml with every available option.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configPath := filepath.Join(home, ".foundervalue", "config.yaml")
		if err := writeDefaultConfig(configPath); err != nil {
			return err
		}

		fmt.Printf("✓ Created default configuration: %s\n", configPath)
		fmt.Printf("\nTo view the configuration:\n")
		fmt.Printf("  foundervalue config show\n")
		fmt.Printf("\nTo customize, edit the file with your preferred editor:\n")
		fmt.Printf("  $EDITOR %s\n\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

// writeDefaultConfig creates path with the default configuration; it refuses to overwrite
func writeDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s\nUse 'foundervalue config show' to view it, or delete it first to recreate", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	yamlData, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	header := "# foundervalue configuration file\n#\n"
	for _, line := range []string{
		"Configuration hierarchy (highest to lowest priority):",
		"  1. CLI flags",
		"  2. Environment variables (FOUNDERVALUE_*)",
		"  3. This config file",
		"  4. Built-in defaults",
	} {
		header += "# " + line + "\n"
	}
	footer := "\n# API keys are read from the environment:\n" +
		"#   export OPENAI_API_KEY=sk-...\n" +
		"#   export ANTHROPIC_API_KEY=sk-ant-...\n" +
		"#   export OLLAMA_BASE_URL=http://localhost:11434\n"

	doc := append([]byte(header+"\n"), yamlData...)
	doc = append(doc, footer...)
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return nil
}
