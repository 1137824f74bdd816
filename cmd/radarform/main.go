package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kjk/radarform/fetch"
	"github.com/kjk/radarform/log"
	"github.com/kjk/radarform/radar"
	"github.com/kjk/radarform/submitstore"
)

var (
	storePath string
	verbose   bool
)

// submission is the record persisted for one form entry
type submission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Ring        string `json:"ring"`
	Quadrant    string `json:"quadrant"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "submissions.json"
	}
	return filepath.Join(home, ".radarform", "submissions.json")
}

func openStore() *submitstore.Store {
	return &submitstore.Store{Path: storePath}
}

var rootCmd = &cobra.Command{
	Use:   "radarform",
	Short: "Technology radar submission tooling",
	Long:  `Look up technologies in historical radar editions and manage the submission store.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Verbose = verbose
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Find the best-matching historical radar entry for a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := radar.Load()
		m, ok := catalog.Lookup(args[0])
		if !ok {
			fmt.Printf("no match for %q\n", args[0])
			return nil
		}
		fmt.Printf("%s (%s, %s) — %s\n", m.Entry.Name, m.Entry.Ring, m.Entry.Quadrant, m.Edition)
		if m.Entry.Description != "" {
			fmt.Printf("  %s\n", m.Entry.Description)
		}
		if m.Similarity < 1 {
			fmt.Printf("  (approximate match, similarity %.2f)\n", m.Similarity)
		}
		return nil
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Append a submission to the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		ring, _ := cmd.Flags().GetString("ring")
		quadrant, _ := cmd.Flags().GetString("quadrant")
		description, _ := cmd.Flags().GetString("description")
		if name == "" {
			return fmt.Errorf("--name is required")
		}

		s := openStore()
		if err := s.CheckWritable(); err != nil {
			return err
		}
		sub := submission{
			ID:          uuid.NewString(),
			Name:        name,
			Ring:        ring,
			Quadrant:    quadrant,
			Description: description,
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.Append(sub); err != nil {
			// the caller must treat this as "write not guaranteed"
			return fmt.Errorf("submission not saved, please retry: %w", err)
		}
		fmt.Printf("saved %s as %s\n", sub.Name, sub.ID)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show stored submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openStore()
		records, err := s.ReadAll()
		if err != nil {
			return err
		}
		for _, d := range records {
			fmt.Printf("%s\n", d)
		}
		fmt.Printf("%d submission(s) in %s\n", len(records), s.Path)
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <url> <dst>",
	Short: "Download a published catalog snapshot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fetch.Snapshot(context.Background(), args[0], args[1])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storePath, "store", defaultStorePath(), "path of the submission store")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	submitCmd.Flags().String("name", "", "technology name")
	submitCmd.Flags().String("ring", "", "suggested ring (Adopt, Trial, Assess, Hold)")
	submitCmd.Flags().String("quadrant", "", "quadrant (Techniques, Tools, Platforms, Languages & Frameworks)")
	submitCmd.Flags().String("description", "", "why this technology should be on the radar")

	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(fetchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
