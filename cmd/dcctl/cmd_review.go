package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dachuang-plat/dcctl/internal/model"
)

var (
	flagReviewComment string
	flagReviewScore   int
	flagRejectTarget  string
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "审核操作",
}

var reviewPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "我的待办审核",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireLogin(); err != nil {
			return err
		}
		page, err := a.reviews.Pending(cmd.Context(), nil)
		if err != nil {
			return err
		}
		fmt.Printf("待办 %d 条\n", page.Count)
		for _, r := range page.Results {
			fmt.Printf("%d\t%s\t%s\n", r.Id, r.Stage, r.Title)
		}
		return nil
	},
}

func submitReview(cmd *cobra.Command, idArg, action string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return err
	}
	act := &model.ReviewAction{
		Action:  action,
		Comment: flagReviewComment,
	}
	if cmd.Flags().Changed("score") {
		act.Score = &flagReviewScore
	}
	if action == "reject" {
		act.RejectTarget = flagRejectTarget
	}
	if err := a.reviews.Submit(cmd.Context(), id, act); err != nil {
		return err
	}
	fmt.Println("已提交")
	return nil
}

var reviewApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "审核通过",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return submitReview(cmd, args[0], "approve")
	},
}

var reviewRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "审核驳回",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return submitReview(cmd, args[0], "reject")
	},
}

func init() {
	for _, c := range []*cobra.Command{reviewApproveCmd, reviewRejectCmd} {
		c.Flags().StringVarP(&flagReviewComment, "comment", "c", "", "审核意见")
		c.Flags().IntVar(&flagReviewScore, "score", 0, "评分")
	}
	reviewRejectCmd.Flags().StringVar(&flagRejectTarget, "target", "", "驳回回退节点（空值由服务端按流程配置决定）")
	reviewCmd.AddCommand(reviewPendingCmd, reviewApproveCmd, reviewRejectCmd)
}
