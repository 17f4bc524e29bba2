package conf

import (
	"fmt"
	"reflect"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/dachuang-plat/dcctl/pkg/log"
)

func init() {
	viper.SetEnvPrefix("DCCTL")
	viper.AutomaticEnv()
}

// LoadConfigFile 从 confDir 读取 config.toml 并反序列化到 cfg。
// 配置文件变更时自动重新解析。
func LoadConfigFile(confDir string, cfg interface{}) error {
	cfgValue := reflect.ValueOf(cfg)
	if cfgValue.Kind() != reflect.Ptr || cfgValue.IsNil() {
		return errors.New("cfg must be a non-nil pointer")
	}

	vCfg := viper.New()
	vCfg.AddConfigPath(confDir)
	vCfg.SetConfigName("config")
	vCfg.SetConfigType("toml")

	if err := vCfg.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}

	// 配置动态改变时，回调函数
	vCfg.WatchConfig()
	vCfg.OnConfigChange(func(e fsnotify.Event) {
		log.GetLogger().Infow("configuration changed, reloading", "file", e.Name)
		if err := vCfg.Unmarshal(cfg); err != nil {
			log.GetLogger().Errorw("failed to unmarshal configuration file", "err", err)
		}
	})
	if err := vCfg.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	return nil
}

func GetString(key string) string {
	return viper.GetString(key)
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}
