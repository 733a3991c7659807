package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/zarlcorp/zbook/internal/cli"
	"github.com/zarlcorp/zbook/internal/command"
	"github.com/zarlcorp/zbook/internal/config"
	"github.com/zarlcorp/zbook/internal/display"
	"github.com/zarlcorp/zbook/internal/logger"
	"github.com/zarlcorp/zbook/internal/tui"
)

// state carries flag values and the resources built from them.
type state struct {
	cfgPath   string
	ephemeral bool

	cfg       *config.Config
	log       *slog.Logger
	logCloser io.Closer
}

func newRootCmd(rt *state) *cobra.Command {
	root := &cobra.Command{
		Use:   "zbook",
		Short: "Address book and birthday assistant",
		Long: `zbook keeps contacts with phone numbers and birthdays in an encrypted
local store and tells you whom to congratulate in the coming week.

Run without arguments to start the interactive interface.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rt.setup,
		PersistentPostRun: func(*cobra.Command, []string) { rt.teardown() },
		RunE: func(*cobra.Command, []string) error {
			return rt.runTUI()
		},
	}

	root.PersistentFlags().StringVar(&rt.cfgPath, "config", config.DefaultPath(), "config file")
	root.PersistentFlags().BoolVar(&rt.ephemeral, "ephemeral", false, "keep contacts in memory only")

	root.AddCommand(
		newReplCmd(rt),
		newExecCmd(rt),
		newListCmd(rt),
		newBirthdaysCmd(rt),
		newVersionCmd(),
	)
	return root
}

func newReplCmd(rt *state) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read commands line by line from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := rt.session()
			if err != nil {
				return err
			}
			defer sess.Close()
			return cli.CmdRepl(cmd.Context(), sess, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newExecCmd(rt *state) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command> [args...]",
		Short: "Run one assistant command and save",
		Example: `  zbook exec add Alice 0501234567
  zbook exec add-birthday Alice 15.03.1990`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := rt.session()
			if err != nil {
				return err
			}
			defer sess.Close()
			return cli.CmdExec(sess, args, cmd.OutOrStdout())
		},
	}
}

func newListCmd(rt *state) *cobra.Command {
	var asJSON bool
	c := &cobra.Command{
		Use:   "list",
		Short: "List saved contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := rt.session()
			if err != nil {
				return err
			}
			defer sess.Close()
			return cli.CmdList(sess, asJSON, cmd.OutOrStdout())
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func newBirthdaysCmd(rt *state) *cobra.Command {
	var (
		asJSON bool
		days   int
	)
	c := &cobra.Command{
		Use:   "birthdays",
		Short: "Show upcoming congratulation dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("days") {
				days = rt.cfg.BirthdayWindow
			}
			if days < 0 {
				return fmt.Errorf("--days must not be negative, got %d", days)
			}

			sess, err := rt.session()
			if err != nil {
				return err
			}
			defer sess.Close()
			return cli.CmdBirthdays(sess, days, time.Now(), asJSON, cmd.OutOrStdout())
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	c.Flags().IntVar(&days, "days", 0, "look-ahead in days (default from config)")
	return c
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// overrides the root hook so version needs no config or data dir
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "zbook %s\n", version)
		},
	}
}

func (rt *state) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(rt.cfgPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	rt.cfg = cfg
	rt.log, rt.logCloser = logger.New(cfg.Log)
	slog.SetDefault(rt.log)
	rt.log.Debug("config loaded", "path", rt.cfgPath, "data_dir", cfg.DataDir, "ephemeral", rt.ephemeral)
	return nil
}

func (rt *state) teardown() {
	if rt.logCloser != nil {
		_ = rt.logCloser.Close()
	}
}

func (rt *state) shellOptions() []command.Option {
	return []command.Option{
		command.WithLogger(rt.log),
		command.WithWindow(rt.cfg.BirthdayWindow),
		command.WithTable(display.Table),
	}
}

// session opens the store, prompting for the password, unless running
// ephemeral.
func (rt *state) session() (*cli.Session, error) {
	if rt.ephemeral {
		return cli.NewSession(nil, rt.shellOptions()...)
	}

	st, err := cli.OpenStore(rt.cfg.DataDir)
	if err != nil {
		return nil, err
	}

	sess, err := cli.NewSession(st, rt.shellOptions()...)
	if err != nil {
		st.Close()
		return nil, err
	}
	return sess, nil
}

func (rt *state) runTUI() error {
	var m tui.Model
	if rt.ephemeral {
		m = tui.NewEphemeral(version, rt.shellOptions()...)
	} else {
		m = tui.New(version, rt.cfg.DataDir, cli.IsFirstRun(rt.cfg.DataDir), rt.shellOptions()...)
	}

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(tui.Model); ok {
		fm.Close()
	}

	return nil
}
