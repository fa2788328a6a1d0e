package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/steveyegge/issueview/internal/service"
)

// REPL represents the interactive shell
type REPL struct {
	svc      *service.Service
	rl       *readline.Instance
	ctx      context.Context
	out      io.Writer
	commands map[string]CommandHandler
}

// CommandHandler handles a specific command
type CommandHandler func(args []string) error

// Config holds REPL configuration
type Config struct {
	Service *service.Service

	// Out receives command output (default: os.Stdout)
	Out io.Writer
}

// New creates a new REPL instance
func New(cfg *Config) (*REPL, error) {
	if cfg.Service == nil {
		return nil, fmt.Errorf("service is required")
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	r := &REPL{
		svc:      cfg.Service,
		ctx:      context.Background(),
		out:      out,
		commands: make(map[string]CommandHandler),
	}

	r.registerCommands()

	return r, nil
}

// Run starts the REPL loop
func (r *REPL) Run(ctx context.Context) error {
	r.ctx = ctx

	cyan := color.New(color.FgCyan).SprintFunc()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("issues> "),
		AutoComplete:      newCompleter(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	r.rl = rl

	r.printWelcome()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			} else if err == io.EOF {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := r.processInput(line); err != nil {
			if err == io.EOF {
				return nil
			}
			red := color.New(color.FgRed).SprintFunc()
			fmt.Fprintf(r.out, "%s %v\n", red("Error:"), err)
		}
	}
}

// processInput processes a single line of input
func (r *REPL) processInput(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	if handler, ok := r.commands[parts[0]]; ok {
		return handler(parts[1:])
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(r.out, "%s Unknown command %q. Use 'help' for available commands.\n", yellow("Note:"), parts[0])
	return nil
}

// registerCommands registers all built-in commands
func (r *REPL) registerCommands() {
	r.commands["help"] = r.cmdHelp
	r.commands["?"] = r.cmdHelp
	r.commands["exit"] = r.cmdExit
	r.commands["quit"] = r.cmdExit
	r.commands["status"] = r.cmdStatus
	r.commands["issues"] = r.cmdIssues
	r.commands["count"] = r.cmdCount
	r.commands["keys"] = r.cmdKeys
	r.commands["dump"] = r.cmdDump
	r.commands["clear"] = r.cmdClear
	r.commands["update"] = r.cmdUpdate
	r.commands["start"] = r.cmdStart
	r.commands["stop"] = r.cmdStop
	r.commands["remove"] = r.cmdRemove
}

func newCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("exit"),
		readline.PcItem("status"),
		readline.PcItem("issues"),
		readline.PcItem("count"),
		readline.PcItem("keys"),
		readline.PcItem("dump"),
		readline.PcItem("clear"),
		readline.PcItem("update", readline.PcItem("all")),
		readline.PcItem("start"),
		readline.PcItem("stop"),
		readline.PcItem("remove"),
	)
}

func (r *REPL) printWelcome() {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(r.out, "\n%s\n", cyan("Issue repository shell"))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Type 'help' for available commands, 'exit' to quit")
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdHelp(args []string) error {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(r.out, "\n%s\n\n", cyan("Available Commands:"))

	commands := []struct {
		name string
		desc string
	}{
		{"help, ?", "Show this help message"},
		{"exit, quit", "Exit the shell"},
		{"status", "Show every profile group and its active issue counts"},
		{"issues <parent>", "List active issues of a profile group, most urgent first"},
		{"count <parent>", "Count loggable active issues of a profile group"},
		{"keys <user>", "List issue keys computed for one user"},
		{"dump", "Print the whole repository"},
		{"clear", "Drop every computed list"},
		{"update [user|all]", "Recompute one user, or every user"},
		{"start <profile>", "Mark a managed profile as running"},
		{"stop <profile>", "Mark a managed profile as stopped"},
		{"remove <user>", "Remove a user or managed profile"},
	}
	for _, cmd := range commands {
		fmt.Fprintf(r.out, "  %-20s %s\n", green(cmd.name), cmd.desc)
	}
	fmt.Fprintln(r.out)
	return nil
}

func (r *REPL) cmdExit(args []string) error {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(r.out, "\n%s Goodbye!\n", green("✓"))
	if r.rl != nil {
		r.rl.Close()
	}
	return io.EOF
}

func (r *REPL) cmdIssues(args []string) error {
	parent, err := userArg("issues", args)
	if err != nil {
		return err
	}
	active, err := r.svc.ActiveIssues(r.ctx, parent)
	if err != nil {
		return err
	}
	if len(active) == 0 {
		fmt.Fprintln(r.out, "No active issues")
		return nil
	}
	for _, info := range active {
		fmt.Fprintln(r.out, FormatIssue(info))
	}
	return nil
}

func (r *REPL) cmdCount(args []string) error {
	parent, err := userArg("count", args)
	if err != nil {
		return err
	}
	count, err := r.svc.CountActiveLoggableIssues(r.ctx, parent)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%d loggable active issues\n", count)
	return nil
}

func (r *REPL) cmdKeys(args []string) error {
	userID, err := userArg("keys", args)
	if err != nil {
		return err
	}
	keys, err := r.svc.IssuesForUser(r.ctx, userID)
	if err != nil {
		return err
	}
	for _, key := range keys {
		fmt.Fprintln(r.out, key)
	}
	return nil
}

func (r *REPL) cmdDump(args []string) error {
	return r.svc.Dump(r.ctx, r.out)
}

func (r *REPL) cmdClear(args []string) error {
	if err := r.svc.Clear(r.ctx); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "Cleared all computed issues")
	return nil
}

func (r *REPL) cmdUpdate(args []string) error {
	if len(args) == 0 || args[0] == "all" {
		return r.svc.UpdateAll(r.ctx)
	}
	userID, err := userArg("update", args)
	if err != nil {
		return err
	}
	return r.svc.UpdateIssues(r.ctx, userID)
}

func (r *REPL) cmdStart(args []string) error {
	userID, err := userArg("start", args)
	if err != nil {
		return err
	}
	return r.svc.ProfileStarted(r.ctx, userID)
}

func (r *REPL) cmdStop(args []string) error {
	userID, err := userArg("stop", args)
	if err != nil {
		return err
	}
	return r.svc.ProfileStopped(r.ctx, userID)
}

func (r *REPL) cmdRemove(args []string) error {
	userID, err := userArg("remove", args)
	if err != nil {
		return err
	}
	return r.svc.RemoveProfile(r.ctx, userID)
}

// userArg parses the single user id argument of a command.
func userArg(command string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s <user-id>", command)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid user id: %q", args[0])
	}
	return id, nil
}
