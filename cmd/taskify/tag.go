package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage the tag registry",
}

// tag add
var tagAddCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Add a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagAdd,
}

var tagAddColor string

// tag list
var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	RunE:  runTagList,
}

var tagListJSON bool

// tag delete
var tagDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete tags and strip them from all tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTagDelete,
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagAddCmd, tagListCmd, tagDeleteCmd)

	tagAddCmd.Flags().StringVar(&tagAddColor, "color", "", "Display color (hex, e.g. #3B82F6)")
	tagListCmd.Flags().BoolVar(&tagListJSON, "json", false, "Output as JSON")
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := a.repo.AddTag(args[0], tagAddColor)
	if err != nil {
		return err
	}

	fmt.Printf("Added tag %s: %s\n", created.ID, created.Label)
	return nil
}

func runTagList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tags := a.repo.Tags()

	if tagListJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tags)
	}

	if len(tags) == 0 {
		fmt.Println("No tags found.")
		return nil
	}

	tasks := a.repo.Tasks()

	headers := []string{"ID", "LABEL", "COLOR", "TASKS"}
	rows := make([][]string, 0, len(tags))
	for _, tag := range tags {
		count := 0
		for _, t := range tasks {
			if t.HasTag(tag.ID) {
				count++
			}
		}
		rows = append(rows, []string{tag.ID, renderTag(tag), tag.Color, fmt.Sprintf("%d", count)})
	}

	fmt.Print(formatTable(headers, rows))
	return nil
}

func runTagDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	for _, id := range args {
		if err := a.repo.DeleteTag(id); err != nil {
			return err
		}
		fmt.Printf("Deleted tag %s\n", id)
	}
	return nil
}
