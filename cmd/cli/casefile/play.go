package casefile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/myrjola/caseclosed/internal/game"
	"github.com/spf13/cobra"
)

var playBackend string

func init() {
	Play.Flags().StringVar(&playBackend, "backend", "openai",
		"generation backend: openai, gemini or fake")
}

var Play = &cobra.Command{
	Use:     "play",
	GroupID: "casefile",
	Short:   "Play in the terminal",
	Long:    "Generates a case and runs the interrogation loop in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		pipeline, err := newPipeline(ctx, playBackend)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Play error: %v\n", err)
			return
		}

		engine := game.NewEngine(pipeline, newLogger())

		fmt.Println("Generating the case...")
		session := engine.Start(ctx)
		if session.InitFailed {
			_, _ = fmt.Fprintln(os.Stderr, session.InitError)
			return
		}

		printCase(session)
		play(ctx, engine, session)
	},
}

func printCase(session *game.Session) {
	c := session.Case
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Victim: %s\nTime:   %s\nPlace:  %s\nCause:  %s\n", c.Victim, c.Time, c.Place, c.Cause)
	fmt.Println(c.Context)
	fmt.Println("--------------------------------------------------")
	fmt.Println("Suspects:")
	for i, s := range c.Suspects {
		fmt.Printf("  %d. %s (%s)\n", i+1, s.Name, s.Role)
	}
	fmt.Println()
	fmt.Println(`Type "<number> <question>" to interrogate, "accuse <number>" to end the case, or "quit".`)
}

func play(ctx context.Context, engine *game.Engine, session *game.Session) {
	scanner := bufio.NewScanner(os.Stdin)
	for !session.GameOver {
		fmt.Printf("[%d questions left] > ", session.RemainingQuestions)
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "quit" {
			return
		}

		if rest, ok := strings.CutPrefix(input, "accuse "); ok {
			suspect, found := suspectByIndex(session, rest)
			if !found {
				fmt.Println("No such suspect.")
				continue
			}
			session.Accuse(suspect)
			continue
		}

		number, question, found := strings.Cut(input, " ")
		if !found {
			fmt.Println("I didn't catch that.")
			continue
		}
		suspect, ok := suspectByIndex(session, number)
		if !ok {
			fmt.Println("No such suspect.")
			continue
		}

		if session.RemainingQuestions == 0 {
			fmt.Println("You are out of questions. Time to accuse someone.")
			continue
		}

		before := session.RemainingQuestions
		engine.Ask(ctx, session, suspect, question)
		if session.RemainingQuestions == before {
			continue
		}
		turns := session.Histories[suspect]
		fmt.Println("--------------------------------------------------")
		fmt.Printf("%s: %s\n", suspect, turns[len(turns)-1].Answer)
		fmt.Println("--------------------------------------------------")
	}

	if session.Outcome != nil {
		fmt.Println()
		fmt.Println(session.Outcome.Epilogue)
	}
}

func suspectByIndex(session *game.Session, raw string) (string, bool) {
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || index < 1 || index > len(session.Case.Suspects) {
		return "", false
	}
	return session.Case.Suspects[index-1].Name, true
}
