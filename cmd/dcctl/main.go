package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dachuang-plat/dcctl/pkg/version"
)

var (
	flagConfDir string
	flagBaseURL string
)

var rootCmd = &cobra.Command{
	Use:   "dcctl",
	Short: "dcctl 大创项目管理平台命令行客户端",
	Long:  "dcctl 大创项目管理平台命令行客户端，支持登录、项目、审核、字典、通知等操作",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	// .env 仅开发期使用，不存在时静默跳过
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&flagConfDir, "config", "", "配置目录（读取其中的 config.toml）")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "覆盖 API 基础地址")

	rootCmd.AddCommand(version.VersionCmd)
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, passwdCmd)
	rootCmd.AddCommand(dictCmd, projectCmd, reviewCmd, notifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
