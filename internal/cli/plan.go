package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mlscaffold/internal/app"
)

type planOptions struct {
	Name        string
	Module      string
	AuthorName  string
	AuthorEmail string
	Task        string
}

func newPlanCommand() *cobra.Command {
	opts := planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what a run would generate without writing anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&opts.Module, "module", "", "Module name override")
	cmd.Flags().StringVar(&opts.AuthorName, "author-name", "", "Author name")
	cmd.Flags().StringVar(&opts.AuthorEmail, "author-email", "", "Author email")
	cmd.Flags().StringVar(&opts.Task, "task", "classification", "Task profile")
	_ = viper.BindPFlag("project_name", cmd.Flags().Lookup("name"))
	_ = viper.BindPFlag("module_name", cmd.Flags().Lookup("module"))
	_ = viper.BindPFlag("author_name", cmd.Flags().Lookup("author-name"))
	_ = viper.BindPFlag("author_mail", cmd.Flags().Lookup("author-email"))
	return cmd
}

func runPlan(ctx context.Context, cmd *cobra.Command, opts planOptions) error {
	service := app.NewService()
	result, err := service.Plan(ctx, app.PlanRequest{
		ProjectName: resolveString(cmd, opts.Name, "project_name", "name"),
		ModuleName:  resolveString(cmd, opts.Module, "module_name", "module"),
		AuthorName:  resolveString(cmd, opts.AuthorName, "author_name", "author-name"),
		AuthorEmail: resolveString(cmd, opts.AuthorEmail, "author_mail", "author-email"),
		Task:        opts.Task,
	})
	if err != nil {
		log.Ctx(ctx).Error().Msg(errorMessage(err))
		return err
	}
	fmt.Printf("plan for %s (module %s): %d files\n", result.ProjectName, result.ModuleName, len(result.Entries))
	for _, entry := range result.Entries {
		fmt.Printf("  %-18s %6d  %s\n", entry.Mode, entry.Size, entry.Path)
	}
	return nil
}
