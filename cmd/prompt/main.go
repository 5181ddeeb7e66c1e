package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/executor"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/models"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/setup"
	"github.com/povarna/generative-ai-agents/prompt-agent/internal/setup/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	listModels := flag.Bool("models", false, "List foundation models and exit")
	provider := flag.String("provider", "", "Provider filter for -models, e.g. Anthropic")
	modality := flag.String("output-modality", "", "Output modality filter for -models: TEXT, IMAGE or EMBEDDING")
	flag.Parse()

	envErr := godotenv.Load()
	log.Logger = logger.New(os.Getenv("LOG_LEVEL"))
	appLogger := log.Logger

	if envErr != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := setup.LoadConfig()

	deps, err := setup.Wire(ctx, cfg, &appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Close()

	if *listModels {
		filter := models.ModelFilter{Provider: *provider, OutputModality: *modality}
		if err := printModels(ctx, os.Stdout, deps.Executor, filter); err != nil {
			log.Fatal().Err(err).Msg("Failed to list foundation models")
		}
		return
	}

	session := executor.NewSession(deps.Executor)
	runShell(ctx, os.Stdin, os.Stdout, session)
}

// runShell submits every non-empty line. Lines typed while a submission is running are rejected.
// Only this loop writes to out; submissions hand their text back over a channel.
func runShell(ctx context.Context, in io.Reader, out io.Writer, session *executor.Session) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	replies := make(chan string, 1)
	pending := false
	fmt.Fprint(out, "> ")

	for {
		select {
		case <-ctx.Done():
			return
		case reply := <-replies:
			pending = false
			fmt.Fprint(out, reply)
			fmt.Fprint(out, "> ")
		case line, ok := <-lines:
			if !ok {
				if pending {
					select {
					case reply := <-replies:
						fmt.Fprint(out, reply)
					case <-ctx.Done():
					}
				}
				return
			}

			prompt := strings.TrimSpace(line)
			if prompt == "" {
				fmt.Fprint(out, "> ")
				continue
			}

			if pending || session.Busy() {
				fmt.Fprintln(out, executor.ErrInFlight.Error())
				continue
			}

			pending = true
			go func() {
				replies <- submit(ctx, session, prompt)
			}()
		}
	}
}

// submit runs one prompt and returns the text to show for it.
func submit(ctx context.Context, session *executor.Session, prompt string) string {
	var b strings.Builder

	result, err := session.Submit(ctx, prompt)
	if errors.Is(err, executor.ErrInFlight) {
		fmt.Fprintln(&b, err.Error())
		return b.String()
	}
	if err != nil {
		fmt.Fprintf(&b, "error: %v\n", err)
		if previous := session.Output(); previous != "" {
			fmt.Fprintf(&b, "last answer:\n%s\n", previous)
		}
		return b.String()
	}

	fmt.Fprintln(&b, result.Text)
	fmt.Fprintf(&b, "(%s, %d attempt(s), %s)\n", result.Variant, result.Attempts, result.Duration.Round(time.Millisecond))
	return b.String()
}

func printModels(ctx context.Context, out io.Writer, exec *executor.Executor, filter models.ModelFilter) error {
	list, err := exec.ListModels(ctx, filter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL ID\tPROVIDER\tNAME\tOUTPUT")
	for _, model := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", model.ID, model.Provider, model.Name, strings.Join(model.OutputModalities, ","))
	}
	return w.Flush()
}
