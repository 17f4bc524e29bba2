package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "字典管理",
}

var dictListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出全部字典（走本地缓存）",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireLogin(); err != nil {
			return err
		}
		dicts, err := a.cache.All(cmd.Context())
		if err != nil {
			return err
		}
		for code, d := range dicts {
			fmt.Printf("%s\t%s\t%d 项\n", code, d.Name, len(d.Items))
		}
		return nil
	},
}

var dictGetCmd = &cobra.Command{
	Use:   "get <code>",
	Short: "按编码查看单个字典",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireLogin(); err != nil {
			return err
		}
		dict, err := a.dicts.ByCode(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s（%s）\n", dict.Name, dict.Code)
		for _, item := range dict.Items {
			fmt.Printf("  %s\t%s\n", item.Value, item.Label)
		}
		return nil
	},
}

var dictDelItemCmd = &cobra.Command{
	Use:   "del-item <id>",
	Short: "删除字典条目",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireLogin(); err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		if err := a.dicts.DeleteItem(cmd.Context(), id); err != nil {
			return err
		}
		if err := a.cache.Invalidate(); err != nil {
			return err
		}
		fmt.Println("已删除")
		return nil
	},
}

func init() {
	dictCmd.AddCommand(dictListCmd, dictGetCmd, dictDelItemCmd)
}
