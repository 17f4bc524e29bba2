package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var flagNotifyUnread bool

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "站内通知",
}

var notifyListCmd = &cobra.Command{
	Use:   "list",
	Short: "通知列表",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireLogin(); err != nil {
			return err
		}
		params := map[string]string{}
		if flagNotifyUnread {
			params["is_read"] = "false"
		}
		page, err := a.notify.List(cmd.Context(), params)
		if err != nil {
			return err
		}
		for _, n := range page.Results {
			mark := " "
			if !n.IsRead {
				mark = "*"
			}
			fmt.Printf("%s %d\t%s\t%s\n", mark, n.Id, n.CreatedAt, n.Title)
		}
		return nil
	},
}

var notifyReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "标记已读",
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
		return a.notify.MarkRead(cmd.Context(), id)
	},
}

var notifyReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "全部标记已读",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireLogin(); err != nil {
			return err
		}
		return a.notify.MarkAllRead(cmd.Context())
	},
}

func init() {
	notifyListCmd.Flags().BoolVar(&flagNotifyUnread, "unread", false, "只看未读")
	notifyCmd.AddCommand(notifyListCmd, notifyReadCmd, notifyReadAllCmd)
}
