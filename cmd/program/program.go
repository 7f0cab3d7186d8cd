package program

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/scienceol/piwarmer/internal/config"
	"github.com/scienceol/piwarmer/pkg/core/program/detail"
	"github.com/scienceol/piwarmer/pkg/middleware/logger"
	"github.com/scienceol/piwarmer/pkg/repo"
	"github.com/scienceol/piwarmer/pkg/repo/backend"
	"github.com/spf13/cobra"
)

type storeFactory func() repo.ProgramRepo

func New() *cobra.Command {
	return newCommand(func() repo.ProgramRepo {
		return backend.NewProgramRepo(backend.New())
	})
}

func newCommand(store storeFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "program",
		Short: "Inspect or delete a program on the backend",
	}
	root.AddCommand(newShow(store), newDelete(store))
	return root
}

func newShow(store storeFactory) *cobra.Command {
	var programID string
	cmd := &cobra.Command{
		Use:          "show",
		Short:        "Print the program detail regions",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := load(cmd, store(), programID)
			printPage(cmd.OutOrStdout(), view)
			return nil
		},
	}
	cmd.Flags().StringVar(&programID, "id", "", "program id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newDelete(store storeFactory) *cobra.Command {
	var programID string
	cmd := &cobra.Command{
		Use:          "delete",
		Short:        "Delete a program after confirmation",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := load(cmd, store(), programID)
			printPage(cmd.OutOrStdout(), view)

			location, err := view.OnDeleteClicked(cmd.Context(), prompt(cmd.InOrStdin(), cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			if location == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Not deleted.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted. Continue at %s\n", location)
			return nil
		},
	}
	cmd.Flags().StringVar(&programID, "id", "", "program id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func load(cmd *cobra.Command, store repo.ProgramRepo, programID string) *detail.View {
	view := detail.New(store, programID, detail.WithEscapeHTML(config.Global().View.EscapeHTML))
	if err := view.Initialize(cmd.Context()); err != nil {
		logger.Warnf(cmd.Context(), "program %s detail incomplete: %+v", programID, err)
	}
	return view
}

func printPage(w io.Writer, view *detail.View) {
	page := view.Page()
	fmt.Fprintln(w, page.Title)
	fmt.Fprintln(w, page.DriverName)
	fmt.Fprintln(w, page.Details)
}

// prompt blocks on one line of input; only y or yes accepts.
func prompt(in io.Reader, out io.Writer) func(string) bool {
	return func(message string) bool {
		fmt.Fprintf(out, "%s [y/N] ", message)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}
