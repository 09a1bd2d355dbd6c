package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mlscaffold/internal/app"
)

func newTemplatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the template catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTemplates(cmd.Context())
		},
	}
}

func runTemplates(ctx context.Context) error {
	service := app.NewService()
	result := service.Templates(ctx)
	for _, entry := range result.Entries {
		tasks := "all"
		if len(entry.Tasks) > 0 {
			names := make([]string, 0, len(entry.Tasks))
			for _, task := range entry.Tasks {
				names = append(names, string(task))
			}
			tasks = strings.Join(names, ",")
		}
		fmt.Printf("%-10s %-40s -> %s (%s)\n", entry.Mode, entry.LogicalPath, entry.Destination, tasks)
	}
	return nil
}
