package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagNumber
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long  string   // --output
	Short string   // -o (empty if none)
	Type  flagType // completion type
	Desc  string   // help text
	Exts  []string // for file flags, without dots
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Exts  []string // extensions of positional file arguments
	Words []string // fixed positional words
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Exts  []string
	IsDir bool
}

// flagCompletionMeta maps command/flag to completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"annotate/config": {Exts: []string{"yaml", "yml"}},
	"replay/config":   {Exts: []string{"yaml", "yml"}},
	"render/config":   {Exts: []string{"yaml", "yml"}},
	"annotate/output": {IsDir: true},
	"replay/output":   {IsDir: true},
	"render/output":   {Exts: []string{"png"}},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(cmd string, fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "float64":
			fd.Type = flagNumber
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[cmd+"/"+f.Name]; ok {
			switch {
			case len(meta.Exts) > 0:
				fd.Type = flagFile
				fd.Exts = meta.Exts
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:  "annotate",
			Desc:  "Draw on a PDF in the terminal",
			Flags: extractFlagsFromFlagSet("annotate", newAnnotateFlagSet("annotate", &annotateFlags{})),
			Exts:  []string{"pdf"},
		},
		{
			Name:  "replay",
			Desc:  "Apply a scripted drawing session to a PDF",
			Flags: extractFlagsFromFlagSet("replay", newAnnotateFlagSet("replay", &annotateFlags{})),
			Exts:  []string{"yaml", "yml", "pdf"},
		},
		{
			Name:  "render",
			Desc:  "Write one page of a PDF as PNG",
			Flags: extractFlagsFromFlagSet("render", newRenderFlagSet(&renderFlags{})),
			Exts:  []string{"pdf"},
		},
		{
			Name:  "completion",
			Desc:  "Generate shell completion script",
			Words: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command", Words: []string{"annotate", "replay", "render", "completion", "version"}},
	}
}

// GenerateCompletion writes shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w, getCommands())
	case ShellZsh:
		return generateZsh(w, getCommands())
	case ShellFish:
		return generateFish(w, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// bashGlob returns a compgen -X filter keeping only exts.
func bashGlob(exts []string) string {
	if len(exts) == 1 {
		return "!*." + exts[0]
	}
	return "!*.@(" + strings.Join(exts, "|") + ")"
}

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# bash completion for pdfannotate\n")
	b.WriteString("_pdfannotate() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", commandNames(cmds))
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		var words []string
		var values []string
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
			names := "--" + f.Long
			if f.Short != "" {
				words = append(words, "-"+f.Short)
				names += "|-" + f.Short
			}
			switch f.Type {
			case flagFile:
				values = append(values, fmt.Sprintf("        %s) COMPREPLY=( $(compgen -f -X '%s' -- \"$cur\") ); return ;;\n", names, bashGlob(f.Exts)))
			case flagDir:
				values = append(values, fmt.Sprintf("        %s) COMPREPLY=( $(compgen -d -- \"$cur\") ); return ;;\n", names))
			case flagString, flagNumber:
				values = append(values, fmt.Sprintf("        %s) return ;;\n", names))
			}
		}
		if len(values) > 0 {
			b.WriteString("        case \"$prev\" in\n")
			for _, v := range values {
				b.WriteString("    " + v)
			}
			b.WriteString("        esac\n")
		}
		if len(words) > 0 {
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(words, " "))
			b.WriteString("            return\n        fi\n")
		}
		switch {
		case len(c.Exts) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -f -X '%s' -- \"$cur\") )\n", bashGlob(c.Exts))
		case len(c.Words) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(c.Words, " "))
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n}\n")
	b.WriteString("complete -o filenames -F _pdfannotate pdfannotate\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes characters _arguments treats specially in descriptions.
func zshEscape(s string) string {
	return strings.NewReplacer("[", "\\[", "]", "\\]", "'", "'\\''", ":", "\\:").Replace(s)
}

func zshAction(f flagDef) string {
	switch f.Type {
	case flagFile:
		return fmt.Sprintf(":file:_files -g \"*.(%s)\"", strings.Join(f.Exts, "|"))
	case flagDir:
		return ":directory:_files -/"
	case flagString, flagNumber:
		return ":value: "
	}
	return ""
}

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("#compdef pdfannotate\n\n")
	b.WriteString("_pdfannotate() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    local cmd=\"${words[2]}\"\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments")
		for _, f := range c.Flags {
			desc := zshEscape(f.Desc)
			action := zshAction(f)
			if f.Short != "" {
				fmt.Fprintf(&b, " \\\n            '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
			} else {
				fmt.Fprintf(&b, " \\\n            '--%s[%s]%s'", f.Long, desc, action)
			}
		}
		switch {
		case len(c.Exts) > 0:
			fmt.Fprintf(&b, " \\\n            '*:file:_files -g \"*.(%s)\"'", strings.Join(c.Exts, "|"))
		case len(c.Words) > 0:
			fmt.Fprintf(&b, " \\\n            '1:argument:(%s)'", strings.Join(c.Words, " "))
		}
		b.WriteString("\n        ;;\n")
	}
	b.WriteString("    esac\n}\n\n")
	b.WriteString("compdef _pdfannotate pdfannotate\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# fish completion for pdfannotate\n")
	b.WriteString("complete -c pdfannotate -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c pdfannotate -n __fish_use_subcommand -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}
	for _, c := range cmds {
		cond := fmt.Sprintf("-n '__fish_seen_subcommand_from %s'", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c pdfannotate %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -d " + fishQuote(f.Desc)
			switch f.Type {
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -r -a '(__fish_complete_directories)'"
			case flagString, flagNumber:
				line += " -r"
			}
			b.WriteString(line + "\n")
		}
		for _, ext := range c.Exts {
			fmt.Fprintf(&b, "complete -c pdfannotate %s -a '(__fish_complete_suffix .%s)'\n", cond, ext)
		}
		if len(c.Words) > 0 {
			fmt.Fprintf(&b, "complete -c pdfannotate %s -a %s\n", cond, fishQuote(strings.Join(c.Words, " ")))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfannotate completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(pdfannotate completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(pdfannotate completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    pdfannotate completion fish > ~/.config/fish/completions/pdfannotate.fish")
}
