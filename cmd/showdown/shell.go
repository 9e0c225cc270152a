package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
)

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

// ShellCmd runs subcommands from an interactive prompt.
type ShellCmd struct {
	HistoryFile string `help:"Readline history file" default:"${history_file}"`
}

// shellCLI is the command set available at the prompt.
type shellCLI struct {
	Eval    EvalCmd    `cmd:"" help:"Evaluate holdings against a complete board"`
	Odds    OddsCmd    `cmd:"" help:"Estimate win and tie rates"`
	Deal    DealCmd    `cmd:"" help:"Deal showdown rounds"`
	History HistoryCmd `cmd:"" help:"Render a PHH hand history file"`
}

func defaultHistoryFile() string {
	return filepath.Join(os.TempDir(), "showdown_history")
}

func (cmd *ShellCmd) Run(ctx context.Context, g *Globals) error {
	parser, err := newShellParser(ctx, g)
	if err != nil {
		return err
	}

	completer := readline.NewPrefixCompleter()
	for _, node := range parser.Model.Children {
		completer.Children = append(completer.Children, readline.PcItem(node.Name))
	}
	completer.Children = append(completer.Children, readline.PcItem("help"), readline.PcItem("quit"))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptStyle.Render("showdown> "),
		HistoryFile:     cmd.HistoryFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := runShellLine(parser, g.stdout(), line)
		if err != nil {
			fmt.Fprintln(g.stdout(), redCardStyle.Render("error: "+err.Error()))
		}
		if quit || ctx.Err() != nil {
			return nil
		}
	}
}

// newShellParser builds a kong parser whose --help and errors never exit.
func newShellParser(ctx context.Context, g *Globals) (*kong.Kong, error) {
	return kong.New(&shellCLI{},
		kong.Name(""),
		kong.Exit(func(int) {}),
		kong.Writers(g.stdout(), g.stdout()),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Bind(g),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
}

// runShellLine runs one prompt line and reports whether the user asked to quit.
func runShellLine(parser *kong.Kong, w io.Writer, line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}

	switch args[0] {
	case "quit", "exit":
		return true, nil
	case "help", "?":
		for _, node := range parser.Model.Children {
			fmt.Fprintf(w, "  %-8s %s\n", node.Name, dimStyle.Render(node.Help))
		}
		fmt.Fprintf(w, "  %-8s %s\n", "quit", dimStyle.Render("Leave the shell"))
		return false, nil
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return false, err
	}
	return false, kctx.Run()
}
