package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/file"
)

// NewInitStoreCmd creates an empty flat-file user store.
func NewInitStoreCmd(configPath *string) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "init-store",
		Short: "Create an empty users file if none exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				cfg, err := loadConfig(*configPath)
				if err != nil {
					return err
				}
				path = cfg.Store.Path
			}
			created, err := file.Init(path)
			if err != nil {
				return err
			}
			if created {
				log.Printf("created user store at %s", path)
			} else {
				log.Printf("user store %s already exists, left untouched", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "users file (defaults to store.path from config)")
	return cmd
}

// NewCategoriesCmd prints the selectable categories with their provider ids.
func NewCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List quiz categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, label := range domain.Categories {
				id, _ := domain.CategoryID(label)
				fmt.Fprintf(out, "%3d  %s\n", id, label)
			}
			return nil
		},
	}
}
