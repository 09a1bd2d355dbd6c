package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mlscaffold/internal/app"
)

type newOptions struct {
	Name        string
	Module      string
	AuthorName  string
	AuthorEmail string
	Task        string
	Dir         string
	Force       bool
}

func newNewCommand() *cobra.Command {
	opts := newOptions{}
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a project tree into the target directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNew(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&opts.Module, "module", "", "Module name override (derived from project name by default)")
	cmd.Flags().StringVar(&opts.AuthorName, "author-name", "", "Author name")
	cmd.Flags().StringVar(&opts.AuthorEmail, "author-email", "", "Author email")
	cmd.Flags().StringVar(&opts.Task, "task", "classification", "Task profile: classification, detection or reconstruction")
	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "Target directory")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite previously generated files")
	_ = viper.BindPFlag("project_name", cmd.Flags().Lookup("name"))
	_ = viper.BindPFlag("module_name", cmd.Flags().Lookup("module"))
	_ = viper.BindPFlag("author_name", cmd.Flags().Lookup("author-name"))
	_ = viper.BindPFlag("author_mail", cmd.Flags().Lookup("author-email"))
	return cmd
}

func runNew(ctx context.Context, cmd *cobra.Command, opts newOptions) error {
	service := app.NewService()
	result, err := service.Scaffold(ctx, app.ScaffoldRequest{
		ProjectName: resolveString(cmd, opts.Name, "project_name", "name"),
		ModuleName:  resolveString(cmd, opts.Module, "module_name", "module"),
		AuthorName:  resolveString(cmd, opts.AuthorName, "author_name", "author-name"),
		AuthorEmail: resolveString(cmd, opts.AuthorEmail, "author_mail", "author-email"),
		Task:        opts.Task,
		TargetDir:   opts.Dir,
		Force:       opts.Force,
	})
	if err != nil {
		log.Ctx(ctx).Error().Msg(errorMessage(err))
		return err
	}
	fmt.Printf("scaffolded %s (module %s, task %s)\n", result.ProjectName, result.ModuleName, result.Task)
	for _, file := range result.Report.Results {
		fmt.Printf("  %-8s %s\n", file.Action, file.Path)
	}
	fmt.Printf("%d created, %d replaced, %d skipped\n",
		result.Report.CreatedCount(), result.Report.ReplacedCount(), result.Report.SkippedCount())
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
