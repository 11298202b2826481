package main

import (
	"flag"
	"fmt"

	"github.com/elmtooling/elm-json-go/internal/clierr"
)

type completionsCommand struct{}

func (c *completionsCommand) Name() string     { return "completions" }
func (c *completionsCommand) Args() string     { return "SHELL" }
func (c *completionsCommand) ShortHelp() string { return "Generates completion scripts for your shell" }
func (c *completionsCommand) LongHelp() string {
	return "Prints a static completion script for the given shell (bash, fish, or\n" +
		"zsh) to stdout."
}

func (c *completionsCommand) Register(fs *flag.FlagSet) {}

func (c *completionsCommand) Run(ctx *runContext, args []string) error {
	if len(args) != 1 {
		return clierr.New(clierr.Unknown, "completions requires exactly one SHELL argument (bash, fish, or zsh)")
	}

	script, ok := completionScripts[args[0]]
	if !ok {
		return clierr.New(clierr.Unknown, fmt.Sprintf("unsupported shell %q (expected bash, fish, or zsh)", args[0]))
	}
	fmt.Fprint(ctx.stdout, script)
	return nil
}

var completionScripts = map[string]string{
	"bash": `_elmjson_complete() {
    local cur prev
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    if [ "$COMP_CWORD" -eq 1 ]; then
        COMPREPLY=($(compgen -W "solve install uninstall upgrade tree new completions" -- "$cur"))
    fi
}
complete -F _elmjson_complete elmjson
`,
	"fish": `complete -c elmjson -n "__fish_use_subcommand" -a "solve install uninstall upgrade tree new completions"
`,
	"zsh": `#compdef elmjson
_elmjson() {
    local -a subcommands
    subcommands=(
        'solve:figure out a solution given the version constraints'
        'install:install a package'
        'uninstall:uninstall a package'
        'upgrade:bring your dependencies up to date'
        'tree:list entire dependency graph as a tree'
        'new:create a new elm.json file'
        'completions:generate completion scripts'
    )
    _describe 'command' subcommands
}
_elmjson
`,
}
