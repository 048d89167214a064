package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/soloelec/invsheet/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `	 _                 _               _
	(_)_ ____   _____| |__   ___  ___| |_
	| | '_ \ \ / / __| '_ \ / _ \/ _ \ __|
	| | | | \ V /\__ \ | | |  __/  __/ |_
	|_|_| |_|\_/ |___/_| |_|\___|\___|\__|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "invsheet",
	Short: "Inventory sheet manager for Solo Electronique.",
	Long: LOGO + `invsheet keeps the shop inventory sheet in a local database, pulls the
hosted snapshot from GitHub, manages local backups and exports CSV/JSON/report
files, with a full activity log.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.invsheet.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("dbpath", "d", "", "Path to the SQLite db file (default is $HOME/.config/invsheet/invsheet.sqlite)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".invsheet")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.invsheet.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default values for all keys
	viper.SetDefault("remote.owner", "soloelec")
	viper.SetDefault("remote.repo", "inventory-manager")
	viper.SetDefault("remote.branch", "main")
	viper.SetDefault("remote.path", "data/inventory-data.json")
	viper.SetDefault("userid", "anonymous")
	viper.SetDefault("company", "Solo Electronique")
	viper.SetDefault("currency", "DH")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
