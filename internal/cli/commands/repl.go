package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

const (
	replPrompt         = "rsc> "
	replContinuePrompt = "...> "
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive shell",
		Long: `Start an interactive shell that formats and type-checks each input.

Every line is parsed as a program. The canonical form of each top-level
expression is printed together with its type. A line ending in an open
brace continues on the next line until the braces balance.`,
		Example: `  rsc repl
  rsc> 1 + 2 * 3
  1 + 2 * 3 : int`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     cmdCtx.Cfg.REPL.HistoryFile,
		AutoComplete:    newREPLCompleter(cmdCtx),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           readline.NewCancelableStdin(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r := cmdCtx.Renderer
	r.Println(r.Styles().Header.Render("rsc interactive shell"))
	r.Println(r.Styles().Muted.Render("Type .help for commands, .quit to exit"))
	r.Println()

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		if buf.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ".") {
			if quit := handleREPLCommand(cmdCtx, strings.TrimSpace(line)); quit {
				break
			}
			continue
		}

		buf.WriteString(line)
		buf.WriteString("\n")
		if braceDepth(buf.String()) > 0 {
			rl.SetPrompt(replContinuePrompt)
			continue
		}
		rl.SetPrompt(replPrompt)

		evalLine(cmdCtx, buf.String())
		buf.Reset()
	}

	return nil
}

// evalLine resolves src and prints each top-level expression with its type,
// followed by syntax and type errors.
func evalLine(cmdCtx *CommandContext, src string) {
	r := cmdCtx.Renderer
	if strings.TrimSpace(src) == "" {
		return
	}

	analysis, err := cmdCtx.Engine.Resolve("<repl>", src, cmdCtx.Env)
	if err != nil {
		r.Error(err.Error())
	}
	if analysis == nil {
		return
	}

	for _, row := range analysis.TopLevel() {
		r.Printf("%s %s %s\n", row.Text, r.Styles().Muted.Render(":"), r.Styles().Bold.Render(row.Type))
	}
	for _, d := range analysis.Diagnostics() {
		r.Error(fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message))
	}
}

// handleREPLCommand runs a dot-command and reports whether the shell should
// exit.
func handleREPLCommand(cmdCtx *CommandContext, line string) bool {
	r := cmdCtx.Renderer
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	rest := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Writer())

	case ".fmt":
		if rest == "" {
			r.Error("usage: .fmt <source>")
			return false
		}
		doc, err := cmdCtx.Engine.Format("<repl>", rest)
		if err != nil {
			r.Error(err.Error())
		}
		if doc != nil {
			if err := r.Document(doc); err != nil {
				r.Error(err.Error())
			}
		}

	case ".globals":
		printGlobals(cmdCtx)

	default:
		r.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", command))
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .fmt <source>   Print the formatted document for source
  .globals        List the typed global names
  .quit / .exit   Exit the shell

Tips:
  - Each input is type-checked as a whole program
  - Open braces continue the input on the next line
  - Tab completes keywords, dot-commands and global names
`
	_, _ = fmt.Fprintln(w, help)
}

func printGlobals(cmdCtx *CommandContext) {
	r := cmdCtx.Renderer
	globals := cmdCtx.Cfg.Globals
	if len(globals) == 0 {
		r.Println(r.Styles().Muted.Render("(no globals)"))
		return
	}
	names := make([]string, 0, len(globals))
	for name := range globals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.Printf("%s : %s\n", name, globals[name])
	}
}

// newREPLCompleter completes dot-commands, keywords and global names.
func newREPLCompleter(cmdCtx *CommandContext) *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".help"),
		readline.PcItem(".fmt"),
		readline.PcItem(".globals"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	}
	for _, kw := range []string{"func", "if", "else", "while", "return", "rec", "true", "false"} {
		items = append(items, readline.PcItem(kw))
	}
	for _, name := range []string{"int", "bool"} {
		items = append(items, readline.PcItem(name))
	}
	for name := range cmdCtx.Cfg.Globals {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

// braceDepth counts unclosed braces and parentheses in src.
func braceDepth(src string) int {
	depth := 0
	for _, c := range src {
		switch c {
		case '{', '(':
			depth++
		case '}', ')':
			depth--
		}
	}
	return depth
}
