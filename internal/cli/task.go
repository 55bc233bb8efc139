package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/wire"
)

// TaskCmd returns the task command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
		Long: `Manage tasks, optionally linked to a case or a client.

New tasks start in progress. A task past its due date becomes delayed when
"praxis task overdue" runs; "praxis task resume" puts it back in progress.`,
	}
	cmd.AddCommand(taskCreateCmd())
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskShowCmd())
	cmd.AddCommand(taskUpdateCmd())
	cmd.AddCommand(taskCompleteCmd())
	cmd.AddCommand(taskResumeCmd())
	cmd.AddCommand(taskOverdueCmd())
	cmd.AddCommand(taskDeleteCmd())
	return cmd
}

func taskCreateCmd() *cobra.Command {
	var req primary.CreateTaskRequest
	cmd := &cobra.Command{
		Use:   "create [title]",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		Example: `  praxis task create "Protocolar recurso" --case CASE-001 --due 2026-11-03
  praxis task create "Ligar para cliente" --client CLI-002`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			req.Title = args[0]
			task, err := wire.TaskService().CreateTask(ctx, req)
			if err != nil {
				return err
			}
			cmd.Printf("✓ Task %s created: %s\n", task.ID, task.Title)
			if task.DueDate != "" {
				cmd.Printf("  Due: %s\n", task.DueDate)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.CaseID, "case", "", "case ID")
	cmd.Flags().StringVarP(&req.ClientID, "client", "c", "", "client ID")
	cmd.Flags().StringVarP(&req.Description, "description", "d", "", "description")
	cmd.Flags().StringVar(&req.DueDate, "due", "", "due date (YYYY-MM-DD)")
	return cmd
}

func taskListCmd() *cobra.Command {
	var filters primary.TaskFilters
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			_, err = wire.MatterAdapter(cmd.OutOrStdout()).ListTasks(ctx, filters)
			return err
		},
	}
	cmd.Flags().StringVar(&filters.Status, "status", "", "filter by status (in-progress, delayed, completed)")
	cmd.Flags().StringVar(&filters.CaseID, "case", "", "filter by case")
	cmd.Flags().StringVarP(&filters.ClientID, "client", "c", "", "filter by client")
	return cmd
}

func taskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [task-id]",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			task, err := wire.TaskService().GetTask(ctx, args[0])
			if err != nil {
				return err
			}
			cmd.Printf("%s: %s\n", bold(task.ID), task.Title)
			cmd.Printf("  Status:  %s\n", task.StatusLabel)
			if task.Description != "" {
				cmd.Printf("  Notes:   %s\n", task.Description)
			}
			if task.DueDate != "" {
				cmd.Printf("  Due:     %s\n", task.DueDate)
			}
			if task.CaseID != "" {
				cmd.Printf("  Case:    %s\n", task.CaseID)
			}
			if task.ClientID != "" {
				cmd.Printf("  Client:  %s\n", task.ClientID)
			}
			if task.CompletedAt != "" {
				cmd.Printf("  Done:    %s\n", task.CompletedAt)
			}
			return nil
		},
	}
}

func taskUpdateCmd() *cobra.Command {
	var title, description, due string
	cmd := &cobra.Command{
		Use:   "update [task-id]",
		Short: "Update title, description or due date",
		Long: `Update a task. Only the given flags change; pass an empty value to clear
the description or the due date.`,
		Example: `  praxis task update TASK-001 --due 2026-11-03
  praxis task update TASK-001 --description ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			req := taskUpdateRequest(cmd.Flags(), args[0], title, description, due)
			task, err := wire.TaskService().UpdateTask(ctx, req)
			if err != nil {
				return err
			}
			cmd.Printf("✓ Task %s updated\n", task.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&due, "due", "", "new due date (YYYY-MM-DD)")
	return cmd
}

// taskUpdateRequest sets only the fields whose flags were given.
func taskUpdateRequest(flags *pflag.FlagSet, taskID, title, description, due string) primary.UpdateTaskRequest {
	req := primary.UpdateTaskRequest{TaskID: taskID}
	if flags.Changed("title") {
		req.Title = &title
	}
	if flags.Changed("description") {
		req.Description = &description
	}
	if flags.Changed("due") {
		req.DueDate = &due
	}
	return req
}

func taskCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [task-id]",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			if err := wire.TaskService().CompleteTask(ctx, args[0]); err != nil {
				return err
			}
			cmd.Printf("✓ Task %s completed\n", args[0])
			return nil
		},
	}
}

func taskResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume [task-id]",
		Short: "Move a delayed task back to in progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			if err := wire.TaskService().ResumeTask(ctx, args[0]); err != nil {
				return err
			}
			cmd.Printf("✓ Task %s resumed\n", args[0])
			return nil
		},
	}
}

func taskOverdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "Mark past-due tasks as delayed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			_, err = wire.MatterAdapter(cmd.OutOrStdout()).MarkOverdue(ctx)
			return err
		},
	}
}

func taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [task-id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			if err := wire.TaskService().DeleteTask(ctx, args[0]); err != nil {
				return err
			}
			cmd.Printf("✓ Task %s deleted\n", args[0])
			return nil
		},
	}
}
