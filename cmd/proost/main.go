// Command proost is the kernel's REPL and batch-file driver.
//
// Grounded on the teacher's cmd/orizon-repl/main.go for the flag layout,
// signal handling, and history bookkeeping, and on the original
// proost/src/main.rs for two behaviors the teacher's REPL doesn't need:
// running non-interactively over file arguments instead of opening a
// prompt, and treating a line as a comment (skip, don't even add to
// history) when its first non-whitespace characters are "//".
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/asm-nop/proost-go/internal/cli"
	"github.com/asm-nop/proost-go/internal/kernelapi"
)

const toolName = "proost"

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version information")
		showHelp    = flag.Bool("help", false, "print usage information")
		jsonOutput  = flag.Bool("json", false, "emit -version output as JSON")
		debug       = flag.Bool("debug", false, "enable debug logging")
		noPrompt    = flag.Bool("no-prompt", false, "suppress the interactive prompt string")
		eval        = flag.String("eval", "", "evaluate a single line of input and exit")
		configFile  = flag.String("config", "", "path to a JSON config file (history file, max history, color)")
		historyFile = flag.String("history", "", "path to the REPL history file (overrides the config file)")
		maxHistory  = flag.Int("max-history", 0, "maximum number of history entries kept (overrides the config file)")
	)
	flag.Parse()

	if *showVersion {
		cli.PrintVersion(toolName, *jsonOutput)
		return
	}
	if *showHelp {
		printUsage()
		return
	}

	cfg, err := cli.LoadConfig(*configFile)
	if err != nil {
		cli.ExitWithError("loading config: %v", err)
	}
	if *historyFile != "" {
		cfg.HistoryFile = *historyFile
	}
	if *maxHistory != 0 {
		cfg.MaxHistory = *maxHistory
	}

	log := cli.NewLogger(!*noPrompt, *debug)
	k := kernelapi.New()

	// Files given on the command line are imported and the process exits,
	// exactly as the original proost binary treats its `files` argument:
	// there is no prompt to open once the work is already described.
	if files := flag.Args(); len(files) > 0 {
		for _, f := range files {
			if err := runFile(k, f, log); err != nil {
				cli.ExitWithError("%v", err)
			}
		}
		return
	}

	if *eval != "" {
		reportLine(k, *eval, log)
		return
	}

	r := newREPL(k, log, cfg.HistoryFile, cfg.MaxHistory)
	r.loadHistory()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		r.saveHistory()
		fmt.Println("\nGoodbye!")
		os.Exit(0)
	}()

	if !*noPrompt {
		info := cli.GetVersionInfo()
		fmt.Printf("%s v%s -- a small universe-polymorphic kernel\n", toolName, info.Version)
		fmt.Println(`Type ":help" for a list of commands, ":quit" to exit.`)
	}
	r.run(*noPrompt)
	r.saveHistory()

	if *configFile != "" {
		if err := cfg.SaveConfig(*configFile); err != nil {
			log.Warn("failed to save config: %v", err)
		}
	}
}

func printUsage() {
	fmt.Printf("Usage: %s [flags] [files...]\n\n", toolName)
	fmt.Println("With no files, proost opens an interactive prompt. Each file argument")
	fmt.Println("is imported in order and the process exits without opening a prompt.")
	fmt.Println()
	flag.PrintDefaults()
}

func runFile(k *kernelapi.Kernel, path string, log *cli.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	log.Info("importing %s", path)
	results, err := k.RunSource(path, string(data))
	for _, r := range results {
		fmt.Println(r.Text)
	}
	return err
}

// reportLine runs one line of source through the kernel and prints its
// result or error the way a REPL turn would.
func reportLine(k *kernelapi.Kernel, line string, log *cli.Logger) {
	results, err := k.RunSource("", line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		log.Debug("full error: %#v", err)
		return
	}
	for _, r := range results {
		fmt.Println(r.Text)
	}
}

// isCommand reports whether input, after skipping leading whitespace, is
// non-empty and is not a "//"-prefixed comment line. Ported from the
// original proost binary's is_command predicate.
func isCommand(input string) bool {
	trimmed := strings.TrimLeft(input, " \t\r\n")
	if trimmed == "" {
		return false
	}
	return !strings.HasPrefix(trimmed, "//")
}

// repl is an interactive session over a kernel: input lines are either
// ":"-prefixed REPL commands or kernel source handed to RunSource.
type repl struct {
	k           *kernelapi.Kernel
	log         *cli.Logger
	historyFile string
	maxHistory  int
	history     []string
	watcher     *fsnotify.Watcher
	scanner     *bufio.Scanner
}

func newREPL(k *kernelapi.Kernel, log *cli.Logger, historyFile string, maxHistory int) *repl {
	return &repl{
		k:           k,
		log:         log,
		historyFile: historyFile,
		maxHistory:  maxHistory,
		scanner:     bufio.NewScanner(os.Stdin),
	}
}

func (r *repl) run(noPrompt bool) {
	for {
		if !noPrompt {
			fmt.Print("proost» ")
		}
		if !r.scanner.Scan() {
			break
		}
		line := r.scanner.Text()
		if !isCommand(line) {
			continue
		}
		r.addHistory(line)

		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			if r.handleCommand(strings.TrimSpace(line)) {
				return
			}
			continue
		}
		reportLine(r.k, line, r.log)
	}
}

// handleCommand dispatches a ":"-prefixed REPL-only command. It returns
// true when the REPL should stop.
func (r *repl) handleCommand(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case ":help", ":h":
		r.printHelp()
	case ":quit", ":q", ":exit":
		fmt.Println("Goodbye!")
		return true
	case ":clear", ":c":
		fmt.Print("\033[H\033[2J")
	case ":history":
		for i, h := range r.history {
			fmt.Printf("%4d  %s\n", i+1, h)
		}
	case ":debug":
		if len(args) == 1 && args[0] == "on" {
			r.log.DebugMode = true
		} else if len(args) == 1 && args[0] == "off" {
			r.log.DebugMode = false
		} else {
			fmt.Println("usage: :debug on|off")
		}
	case ":load":
		if len(args) != 1 {
			fmt.Println("usage: :load <file>")
			break
		}
		if err := runFile(r.k, args[0], r.log); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	case ":watch":
		if len(args) != 1 {
			fmt.Println("usage: :watch <file>")
			break
		}
		r.watchFile(args[0])
	case ":save":
		path := r.historyFile
		if len(args) == 1 {
			path = args[0]
		}
		if err := r.writeHistory(path); err != nil {
			fmt.Fprintf(os.Stderr, "error saving history: %v\n", err)
		}
	default:
		fmt.Printf("unknown command %q, try :help\n", cmd)
	}
	return false
}

func (r *repl) printHelp() {
	fmt.Println(`Commands:
  :help, :h             show this message
  :quit, :q, :exit      leave the REPL
  :clear, :c            clear the screen
  :history              show input history
  :debug on|off         toggle debug logging
  :load <file>          import a file into the current session
  :watch <file>         re-import a file every time it changes on disk
  :save [file]          write history to file (default: the history file)

Anything else is handed to the kernel as source: def/check/eval/search/import.`)
}

// watchFile re-imports path every time fsnotify reports a write to it,
// until the REPL exits. Grounded on the teacher's fsnotify-backed
// watcher, trimmed from its general Event/WatchOp abstraction (built for
// a whole virtual filesystem) down to one watched path reacting one way.
func (r *repl) watchFile(path string) {
	if r.watcher == nil {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error starting watcher: %v\n", err)
			return
		}
		r.watcher = w
		go func() {
			for {
				select {
				case event, ok := <-r.watcher.Events:
					if !ok {
						return
					}
					if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
						fmt.Printf("\n%s changed, reimporting...\n", event.Name)
						if err := runFile(r.k, event.Name, r.log); err != nil {
							fmt.Fprintf(os.Stderr, "error: %v\n", err)
						}
					}
				case err, ok := <-r.watcher.Errors:
					if !ok {
						return
					}
					r.log.Warn("watch error: %v", err)
				}
			}
		}()
	}
	if err := r.watcher.Add(path); err != nil {
		fmt.Fprintf(os.Stderr, "error watching %s: %v\n", path, err)
		return
	}
	fmt.Printf("watching %s\n", path)
}

func (r *repl) addHistory(line string) {
	r.history = append(r.history, line)
	if len(r.history) > r.maxHistory {
		r.history = r.history[len(r.history)-r.maxHistory:]
	}
}

func (r *repl) loadHistory() {
	data, err := os.ReadFile(r.historyFile)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			r.history = append(r.history, line)
		}
	}
}

func (r *repl) saveHistory() {
	if err := r.writeHistory(r.historyFile); err != nil {
		r.log.Warn("failed to save history: %v", err)
	}
}

func (r *repl) writeHistory(path string) error {
	return os.WriteFile(path, []byte(strings.Join(r.history, "\n")+"\n"), 0o644)
}
