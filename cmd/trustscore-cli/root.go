package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/idlab-discover/TrustScore-cli/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "trustscore-cli",
	Short: "Trust scores for Hugging Face models, datasets and GitHub repositories",
	Long:  longDescription,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
	},

	// When invoked without a subcommand, show help (with banner) instead of
	// printing a plain usage output.
	RunE: func(cmd *cobra.Command, args []string) error {
		initUIAndBanner(cmd)
		return cmd.Help()
	},
}

var cfgFile string
var version = "dev"

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.trustscore-cli.yaml or ./config/defaults.yaml)")

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(scoreCmd, classifyCmd, sizeCmd, historyCmd)
}

func initConfig() {
	// Environment variables override config values, e.g. TRUSTSCORE_SCORE_MODE
	// for score.mode.
	viper.SetEnvPrefix("TRUSTSCORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	bindLegacyEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		err := viper.ReadInConfig()
		cobra.CheckErr(err)
		reportConfig()
		return
	}

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	viper.AddConfigPath("./config")

	// Try .trustscore-cli first
	viper.SetConfigName(".trustscore-cli")
	err = viper.ReadInConfig()

	// If not found, try defaults.yaml
	notFound := &viper.ConfigFileNotFoundError{}
	if err != nil && errors.As(err, notFound) {
		viper.SetConfigName("defaults")
		err = viper.ReadInConfig()
	}

	switch {
	case err != nil && !errors.As(err, notFound):
		cobra.CheckErr(err)
	case err != nil:
		// The config file is optional
	default:
		reportConfig()
	}
}

// bindLegacyEnv keeps the unprefixed variables the scorer has always read.
func bindLegacyEnv() {
	_ = viper.BindEnv("log.file", "TRUSTSCORE_LOG_FILE", "LOG_FILE")
	_ = viper.BindEnv("log.level", "TRUSTSCORE_LOG_LEVEL", "LOG_LEVEL")
	_ = viper.BindEnv("github.token", "TRUSTSCORE_GITHUB_TOKEN", "GITHUB_TOKEN")
	_ = viper.BindEnv("huggingface.token", "TRUSTSCORE_HUGGINGFACE_TOKEN", "HF_TOKEN")
}

func reportConfig() {
	configMsg := ui.Dim.Render("Using config file: ") + ui.Secondary.Render(viper.ConfigFileUsed())
	fmt.Fprintln(os.Stderr, configMsg)
}

const longDescription = "Trust scores for ML artifacts. Classifies Hugging Face model, dataset and GitHub code URLs, scores their metadata on a 0-10 scale and rates how well each artifact fits common deployment hardware."

func initUIAndBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Root().Long = ui.RenderBanner(ui.BannerASCII) + "\n" + longDescription
}
