package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/tasktimer/internal/output"
)

var errEmptyCategory = errors.New("category name cannot be empty")

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List and manage categories",
	Long: `List the configured categories and any custom ones added with
'categories add'. Configured categories come from the config file and cannot
be removed here.`,
	RunE: runCategoriesList,
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	RunE:  runCategoriesList,
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = e.Close() }()

		name := strings.TrimSpace(args[0])
		if name == "" {
			return errEmptyCategory
		}

		w := cmd.OutOrStdout()
		if slices.Contains(e.categories, name) {
			fmt.Fprintf(w, "Category %q already exists.\n", name)
			return nil
		}
		if _, err := e.db.AddCategory(name); err != nil {
			return err
		}
		logger.Info("category added", "name", name)
		fmt.Fprintf(w, "Added category %q.\n", name)
		return nil
	},
}

var categoriesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a custom category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = e.Close() }()

		name := strings.TrimSpace(args[0])
		if slices.Contains(e.cfg.Categories, name) {
			return fmt.Errorf("cannot remove configured category %q", name)
		}
		if err := e.db.RemoveCategory(name); err != nil {
			return err
		}
		logger.Info("category removed", "name", name)
		fmt.Fprintf(cmd.OutOrStdout(), "Removed category %q. Sessions already recorded under it are kept but skipped by reports.\n", name)
		return nil
	},
}

var categoriesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every custom category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = e.Close() }()

		n, err := e.db.ResetCategories()
		if err != nil {
			return err
		}
		logger.Info("categories reset", "removed", n)
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d custom %s.\n", n, pluralize(int(n), "category", "categories"))
		return nil
	},
}

func init() {
	categoriesCmd.AddCommand(categoriesListCmd, categoriesAddCmd, categoriesRemoveCmd, categoriesResetCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategoriesList(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	if flagJSON {
		return writeJSON(cmd, map[string][]string{
			"configured": e.cfg.Categories,
			"custom":     e.custom,
		})
	}

	tbl := output.NewTable("Category", "Source")
	for _, name := range e.categories {
		source := "config"
		if !slices.Contains(e.cfg.Categories, name) {
			source = "custom"
		}
		tbl.AddRow(name, source)
	}
	return tbl.Fprint(cmd.OutOrStdout())
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
