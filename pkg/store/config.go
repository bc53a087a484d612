package store

import (
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config exposes the settings persistence needs.
type Config interface {
	BasePath() string
	ActivityPath() string
}

// LoadConfig resolves configuration from a .stockroom file, STOCKROOM_*
// environment variables, or defaults.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.stockroom.db")
	viper.SetConfigName(".stockroom") // .yaml is implicit
	viper.SetEnvPrefix("STOCKROOM")
	viper.AutomaticEnv()

	if override := os.Getenv("STOCKROOM_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}
	activity := viper.GetString("activity")
	if activity == "" {
		activity = path + ".activity.log"
	} else if activity, err = homedir.Expand(activity); err != nil {
		return nil, err
	}
	return &fileConfig{Path: path, Activity: activity}, nil
}

type fileConfig struct {
	Path     string `json:"path"`
	Activity string `json:"activity"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) ActivityPath() string {
	return f.Activity
}
