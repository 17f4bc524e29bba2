package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagEmployeeID string
	flagPassword   string
	flagRole       string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "登录平台并保存本地会话",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		password := flagPassword
		if password == "" {
			password, err = promptPassword("密码: ")
			if err != nil {
				return err
			}
		}
		if err := a.store.Login(cmd.Context(), flagEmployeeID, password, flagRole); err != nil {
			return err
		}
		fmt.Printf("登录成功，角色：%s，默认页面：%s\n", a.store.Role(), a.gate.DefaultRoute(a.store))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "登出并清除本地会话",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.store.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("已登出")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "显示当前登录用户",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireLogin(); err != nil {
			return err
		}
		if err := a.store.FetchProfile(cmd.Context()); err != nil {
			return err
		}
		user := a.store.User()
		fmt.Printf("%s（%s）角色：%s\n", user.Username, user.EmployeeId, a.store.Role())
		if user.College != "" {
			fmt.Printf("学院：%s\n", user.College)
		}
		fmt.Printf("默认页面：%s\n", a.gate.DefaultRoute(a.store))
		return nil
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "修改登录密码",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireLogin(); err != nil {
			return err
		}
		oldPassword, err := promptPassword("旧密码: ")
		if err != nil {
			return err
		}
		newPassword, err := promptPassword("新密码: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("确认新密码: ")
		if err != nil {
			return err
		}
		if err := a.auth.ChangePassword(cmd.Context(), oldPassword, newPassword, confirm); err != nil {
			return err
		}
		fmt.Println("密码已修改")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&flagEmployeeID, "employee-id", "u", "", "学号/工号")
	loginCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "密码（为空时交互输入）")
	loginCmd.Flags().StringVar(&flagRole, "role", "student", "登录角色")
	_ = loginCmd.MarkFlagRequired("employee-id")
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}
	return string(data), nil
}
