// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/pesto-garden/pestoctl/internal/meta"
)

const bashCompletionScript = `# bash completion for pestoctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_pestoctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "download filter diff build-markdown completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --empty-value --local -l --output -o --padding --sort -s --titles -t --tldr"

    case "$cmd" in
    download)
      local opts="$common --access-key --server-url --parse-content --cache"
            ;;
        filter)
      local opts="$common --filter -f --exclude -e"
            ;;
        diff)
      local opts="--access-key --server-url --parse-content --cache --diff-filter --color -c --tldr"
            ;;
        build-markdown)
      local opts="--file-name --template --annotations --front-matter --front-matter-fields --aliases -a --defaults -d --overrides -o --dry-run --force --parse-content --tldr"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

  # If current token starts with '-', offer flags
  if [[ "$cur" == -* ]]; then
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
  fi

  # Otherwise complete file and directory names for dump and output
  # positionals
  COMPREPLY=( $(compgen -f -- "$cur") )
  return 0
}

complete -F _pestoctl pestoctl
`

const zshCompletionScript = `#compdef pestoctl

_pestoctl() {
  local -a cmds
  cmds=(
    'download:download a database dump'
    'filter:filter documents from a dump'
    'diff:compare two database dumps'
    'build-markdown:build markdown posts from a database dump'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '--empty-value[placeholder for empty values]:value'
  '(-l --local)'{-l,--local}'[show local timestamps]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--padding[column padding]:padding'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'pestoctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    download)
      _arguments -C \
        $common \
        '--access-key[access key]:key' \
        '--server-url[server URL]:url' \
        '--parse-content[parse the content field]' \
        '--cache[use the local cache]' \
        ':DATABASE:'
      ;;
    filter)
      _arguments -C \
        $common \
        '*'{-f,--filter}'[keep matching documents]:predicate' \
        '*'{-e,--exclude}'[drop matching documents]:predicate' \
        '::INPUT:_files'
      ;;
    diff)
      _arguments -C \
        '--access-key[access key]:key' \
        '--server-url[server URL]:url' \
        '--parse-content[parse the content field]' \
        '--cache[use the local cache]' \
        '--diff-filter[fields to drop before comparing]:fields' \
        '(-c --color)'{-c,--color}'[enable colored diff]' \
        '--tldr[show tldr page]' \
        ':A:_files' \
        ':B:_files'
      ;;
    build-markdown)
      _arguments -C \
        '--file-name[file name pattern]:pattern' \
        '--template[custom template path]:template:_files' \
        '--annotations[keep @annotations]' \
        '--front-matter[expose front_matter to the template]' \
        '--front-matter-fields[fields for front_matter]:fields' \
        '*'{-a,--aliases}'[alias key=other]:assignment' \
        '*'{-d,--defaults}'[default key=value]:assignment' \
        '*'{-o,--overrides}'[override key=value]:assignment' \
        '--dry-run[skip writes]' \
        '--force[overwrite existing files]' \
        '--parse-content[parse the content field]' \
        '--tldr[show tldr page]' \
        ':INPUT:_files' \
        ':OUTPUT_DIR:_directories'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _pestoctl pestoctl pestoctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: pestoctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "pestoctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
