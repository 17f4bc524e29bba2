package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	flagProjectStatus string
	flagProjectPage   string
	flagExportOut     string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "项目管理",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "项目列表（管理端视角）",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireLogin(); err != nil {
			return err
		}
		params := map[string]string{}
		if flagProjectStatus != "" {
			params["status"] = flagProjectStatus
		}
		if flagProjectPage != "" {
			params["page"] = flagProjectPage
		}
		page, err := a.projects.List(cmd.Context(), params)
		if err != nil {
			return err
		}
		fmt.Printf("共 %d 个项目\n", page.Count)
		for _, p := range page.Results {
			fmt.Printf("%d\t%s\t%s\n", p.Id, p.Status, p.Title)
		}
		return nil
	},
}

var projectMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "我参与的项目",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireLogin(); err != nil {
			return err
		}
		projects, err := a.projects.MyProjects(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range projects {
			fmt.Printf("%d\t%s\t%s\n", p.Id, p.Status, p.Title)
		}
		return nil
	},
}

var projectExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "导出项目申报书（服务端生成的文档）",
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
		blob, err := a.projects.ExportDoc(cmd.Context(), id)
		if err != nil {
			return err
		}
		out := flagExportOut
		if out == "" {
			out = fmt.Sprintf("project-%d.docx", id)
		}
		if err := os.WriteFile(out, blob, 0o644); err != nil {
			return err
		}
		fmt.Printf("已导出到 %s（%d 字节）\n", out, len(blob))
		return nil
	},
}

func init() {
	projectListCmd.Flags().StringVar(&flagProjectStatus, "status", "", "按状态过滤")
	projectListCmd.Flags().StringVar(&flagProjectPage, "page", "", "页码")
	projectExportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "输出文件路径")
	projectCmd.AddCommand(projectListCmd, projectMineCmd, projectExportCmd)
}
