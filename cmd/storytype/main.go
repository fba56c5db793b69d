// Package main provides the CLI entrypoint for storytype.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/storytype/internal/config"
	"github.com/verte-zerg/storytype/internal/generator"
	"github.com/verte-zerg/storytype/internal/glossary"
	"github.com/verte-zerg/storytype/internal/progress"
	"github.com/verte-zerg/storytype/internal/stats"
	"github.com/verte-zerg/storytype/internal/store"
	"github.com/verte-zerg/storytype/internal/story"
	"github.com/verte-zerg/storytype/internal/tui"
	"github.com/verte-zerg/storytype/internal/wordlist"
)

const (
	defaultLang        = "hi"
	defaultDrillWords  = 25
	defaultDrillFactor = 2.0
)

var (
	practiceLang        string
	practiceDrill       bool
	practiceDrillWords  int
	practiceDrillFactor float64
	practiceWordsFile   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "storytype",
		Short:         "Story reading, typing and pronunciation practice",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&practiceLang, "lang", defaultLang, "translation language code")
	rootCmd.Flags().BoolVar(&practiceDrill, "drill", false, "type a drill of weak pronunciation words")
	rootCmd.Flags().IntVar(&practiceDrillWords, "drill-words", defaultDrillWords, "words per drill")
	rootCmd.Flags().Float64Var(&practiceDrillFactor, "drill-factor", defaultDrillFactor, "weight factor for weak words")
	rootCmd.Flags().StringVar(&practiceWordsFile, "words-file", "", "drill words from a file, one per line")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPronounceCmd())
	rootCmd.AddCommand(newReadCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newStoryCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

// app bundles what every command needs: config, the store and the journal.
type app struct {
	cfg     config.FileConfig
	store   *store.Store
	journal *progress.Journal
	library *story.Library
}

func openApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	journal, err := progress.OpenJournal(ctx, st, progress.JournalConfig{Goals: fileCfg.Goals})
	if err != nil {
		closeStore(st)
		return nil, err
	}
	return &app{
		cfg:     fileCfg,
		store:   st,
		journal: journal,
		library: story.NewLibrary(st),
	}, nil
}

func (a *app) close() {
	closeStore(a.store)
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func (a *app) glossary() glossary.Glossary {
	g := glossary.Default()
	path := config.DefaultGlossaryPath()
	explicit := false
	if a.cfg.Files.Glossary != nil && *a.cfg.Files.Glossary != "" {
		path = config.ExpandHome(*a.cfg.Files.Glossary)
		explicit = true
	}
	if _, err := os.Stat(path); err != nil {
		if explicit || !os.IsNotExist(err) {
			logErrf("glossary %s not loaded: %v\n", path, err)
		}
		return g
	}
	user, err := glossary.LoadFile(path)
	if err != nil {
		logErrf("%v\n", err)
		return g
	}
	g.Merge(user)
	return g
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	applyBoolConfig(cmd, "drill", &practiceDrill, a.cfg.Practice.Drill)
	applyIntConfig(cmd, "drill-words", &practiceDrillWords, a.cfg.Practice.DrillWords)
	applyFloatConfig(cmd, "drill-factor", &practiceDrillFactor, a.cfg.Practice.DrillFactor)
	if err := validatePractice(); err != nil {
		return err
	}

	current, err := a.library.Current(ctx)
	if err != nil {
		return err
	}
	var fileWords []string
	if practiceWordsFile != "" {
		practiceDrill = true
		fileWords, err = wordlist.LoadWords(config.ExpandHome(practiceWordsFile))
		if err != nil {
			return fmt.Errorf("failed to load word list: %w", err)
		}
	}
	next := func() string { return current.Text }
	if practiceDrill {
		next = drillSource(a.journal, current.Text, fileWords)
	}

	model := tui.NewModel(ctx, a.journal, next, tui.WithDrill(generator.New(), practiceDrillWords))
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// drillSource builds drill text. A word list file is drilled uniformly;
// otherwise the weakest pronunciation words are favoured, falling back to the
// story words while there is no pronunciation history.
func drillSource(journal *progress.Journal, text string, fileWords []string) tui.TextSource {
	gen := generator.New()
	vocab := fileWords
	if len(vocab) == 0 {
		vocab = wordlist.FromText(text)
	}
	noticePrinted := false
	return func() string {
		var words []string
		if len(fileWords) == 0 {
			weak := stats.WeakWords(journal.Records(), 0)
			words = gen.GenerateWeighted(weak, practiceDrillWords, practiceDrillFactor)
		}
		if len(words) == 0 {
			if len(fileWords) == 0 && !noticePrinted {
				logErrln("no pronunciation stats available for drills yet; using story words")
				noticePrinted = true
			}
			words = gen.Generate(vocab, practiceDrillWords)
		}
		if len(words) == 0 {
			return text
		}
		return strings.Join(words, " ")
	}
}

func validatePractice() error {
	if practiceDrillWords <= 0 {
		return fmt.Errorf("--drill-words must be > 0")
	}
	if practiceDrillFactor < 0 {
		return fmt.Errorf("--drill-factor must be >= 0")
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
