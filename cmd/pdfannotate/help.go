package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfannotate <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  annotate    Draw on a PDF in the terminal")
	fmt.Fprintln(w, "  replay      Apply a scripted drawing session to a PDF")
	fmt.Fprintln(w, "  render      Write one page of a PDF as PNG")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pdfannotate help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path")
	fmt.Fprintln(w, "      --scale <f>       Zoom factor (0-8, default 1.5)")
	fmt.Fprintln(w, "  -q, --quiet           Only show warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose         Debug logging")
}

func printEnvironment(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PDFANNOTATE_CONFIG      Config file name or path")
	fmt.Fprintln(w, "  PDFANNOTATE_SCALE       Zoom factor")
	fmt.Fprintln(w, "  PDFANNOTATE_OUTPUT_DIR  Directory for annotated.pdf")
}

// printAnnotateUsage prints usage for the annotate command.
func printAnnotateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfannotate annotate [file.pdf] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Open a PDF in the terminal and draw on its pages with the mouse.")
	fmt.Fprintln(w, "Press s to save annotated.pdf, ? for all keys.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>    Directory for annotated.pdf (default: cwd)")
	printCommonFlags(w)
	printEnvironment(w)
}

// printReplayUsage prints usage for the replay command.
func printReplayUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfannotate replay <script.yaml> [file.pdf] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run pointer, touch, navigation and save steps from a YAML script.")
	fmt.Fprintln(w, "The file argument overrides the script's input. A script without a")
	fmt.Fprintln(w, "save step is saved once at the end.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>    Directory for annotated.pdf (default: cwd)")
	printCommonFlags(w)
	printEnvironment(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfannotate render <file.pdf> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write one page as a PNG image.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -p, --page <n>        Page to render (default 1)")
	fmt.Fprintln(w, "  -o, --output <file>   Output PNG (default: <name>-p<n>.png)")
	printCommonFlags(w)
	printEnvironment(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "annotate":
		printAnnotateUsage(env.Stdout)
	case "replay":
		printReplayUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: pdfannotate version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: pdfannotate help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
