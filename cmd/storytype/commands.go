package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/storytype/internal/glossary"
	"github.com/verte-zerg/storytype/internal/pronounce"
	"github.com/verte-zerg/storytype/internal/stats"
	"github.com/verte-zerg/storytype/internal/statsui"
	"github.com/verte-zerg/storytype/internal/story"
	"github.com/verte-zerg/storytype/internal/textutil"
)

const (
	defaultCurveWindow  = 5
	defaultWeakTop      = 10
	terminalWidthBackup = 80
	storyTitleWidth     = 40
)

var (
	statsPlain       bool
	statsCurveWindow int
	statsWeakTop     int

	readGlossary bool
	resetYes     bool
)

func newPronounceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pronounce [transcript]",
		Short: "Score a recognized transcript against the current story",
		Long:  "Score a recognized transcript against the current story. Without arguments the transcript is read from stdin.",
		RunE:  runPronounceCmd,
	}
}

func runPronounceCmd(cmd *cobra.Command, args []string) error {
	transcript := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read transcript: %w", err)
		}
		transcript = string(data)
	}

	ctx := context.Background()
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	current, err := a.library.Current(ctx)
	if err != nil {
		return err
	}
	res, ok := pronounce.Score(current.Text, transcript)
	if !ok {
		return fmt.Errorf("transcript is empty")
	}
	if err := a.journal.RecordPronunciation(ctx, res, time.Now()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Score: %d%%\n\n", res.Score); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderWordScores(out, res.WordScores, pronounce.IncorrectThreshold); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(res.IncorrectWords) > 0 {
		if _, err := fmt.Fprintf(out, "\nPractice these words: %s\n", strings.Join(res.IncorrectWords, ", ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Print the current story with its translation",
		Args:  cobra.NoArgs,
		RunE:  runReadCmd,
	}
	cmd.Flags().BoolVar(&readGlossary, "glossary", false, "list glossary entries for the story words")
	return cmd
}

func runReadCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	current, err := a.library.Current(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s\n\n%s\n", current.Title, current.Text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if translation, ok := current.Translation(practiceLang); ok {
		if _, err := fmt.Fprintf(out, "\n[%s] %s\n", practiceLang, translation); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if !readGlossary {
		return nil
	}
	rows := glossaryRows(a.glossary(), practiceLang, current.Text)
	if len(rows) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := (stats.Table{Headers: []string{"Word", practiceLang}, Rows: rows}).Fprint(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func glossaryRows(g glossary.Glossary, lang, text string) [][]string {
	var rows [][]string
	seen := map[string]struct{}{}
	for _, word := range textutil.Words(text) {
		key := textutil.NormalizeKey(word)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if translation, ok := g.Lookup(lang, word); ok {
			rows = append(rows, []string{key, translation})
		}
	}
	return rows
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up a story word in the glossary",
		Args:  cobra.ExactArgs(1),
		RunE:  runLookupCmd,
	}
}

func runLookupCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	g := a.glossary()
	word := args[0]
	out := cmd.OutOrStdout()
	if translation, ok := g.Lookup(practiceLang, word); ok {
		_, err := fmt.Fprintln(out, translation)
		return err
	}
	if suggestion, ok := g.Suggest(practiceLang, word); ok {
		translation, _ := g.Lookup(practiceLang, suggestion)
		_, err := fmt.Fprintf(out, "— (did you mean %q: %s)\n", suggestion, translation)
		return err
	}
	_, err = fmt.Fprintln(out, "—")
	return err
}

func newStoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "story",
		Short: "Manage practice stories",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <file>",
		Short: "Add a story from a YAML or text file and make it current",
		Args:  cobra.ExactArgs(1),
		RunE:  runStoryAddCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored stories, current first",
		Args:  cobra.NoArgs,
		RunE:  runStoryListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "use <id>",
		Short: "Make a stored story current",
		Args:  cobra.ExactArgs(1),
		RunE:  runStoryUseCmd,
	})
	return cmd
}

func runStoryAddCmd(cmd *cobra.Command, args []string) error {
	st, err := story.LoadFile(args[0])
	if err != nil {
		return err
	}
	ctx := context.Background()
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()
	if err := a.library.Add(ctx, st); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", st.Title, st.ID)
	return err
}

func runStoryListCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()
	stories, err := a.library.List(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(stories))
	for i, st := range stories {
		mark := ""
		if i == 0 {
			mark = "*"
		}
		rows = append(rows, []string{mark, st.ID, st.Title, fmt.Sprintf("%d", len(textutil.Words(st.Text)))})
	}
	table := stats.Table{
		Headers: []string{"", "ID", "Title", "Words"},
		Rows:    rows,
		Right:   []int{3},
		MaxCell: storyTitleWidth,
	}
	if err := table.Fprint(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runStoryUseCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()
	st, err := a.library.Select(ctx, args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Current story: %s\n", st.Title)
	return err
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show streak, goals and practice stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the TUI")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().IntVar(&statsWeakTop, "weak-top", defaultWeakTop, "number of weak words to list")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	records := a.journal.Records()
	if !statsPlain && isTerminal(os.Stdout) {
		model := statsui.NewModel(statsui.Profile{
			Records:    records,
			Goals:      a.journal.Goals(),
			Streak:     a.journal.Streak(),
			Completion: a.journal.Completion(),
		})
		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, stats.Summarize(records), a.journal.Streak(), a.journal.Goals()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderCurves(out, records, statsCurveWindow, sparkWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderWeakWords(out, stats.WeakWords(records, statsWeakTop)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// sparkWidth leaves room for the curve label and min/max suffix.
func sparkWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = terminalWidthBackup
	}
	if w := width - 40; w > 10 {
		return w
	}
	return 10
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write all stored data as JSON",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()
	entries, err := a.store.Entries(ctx)
	if err != nil {
		return fmt.Errorf("failed to read entries: %w", err)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete goals, history and streak",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetYes, "yes", false, "confirm deletion")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		return fmt.Errorf("refusing to reset without --yes")
	}
	ctx := context.Background()
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()
	keys, err := a.store.Keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, key := range keys {
		if key == story.KeyStories {
			continue
		}
		if err := a.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
		logErrf("deleted %s\n", key)
	}
	return nil
}
