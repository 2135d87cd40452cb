package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/MartijnWelker/wizard/internal/engine"
)

// wizard-sim drives full bot games through the rules engine and renders the
// score progression. Useful for eyeballing rule changes without a client.
func main() {
	players := flag.Int("players", 4, "number of bots (3-6)")
	games := flag.Int("games", 1, "number of games to simulate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "shuffle seed")
	quiet := flag.Bool("quiet", false, "only print final results")
	flag.Parse()

	if *players < engine.MinPlayers || *players > engine.MaxPlayers {
		fmt.Fprintf(os.Stderr, "players must be between %d and %d\n", engine.MinPlayers, engine.MaxPlayers)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *games; i++ {
		runGame(i+1, *players, rng, *quiet)
	}
}

var botNames = []string{"Gandalf", "Morgana", "Merlin", "Circe", "Radagast", "Baba Yaga"}

func runGame(n, players int, rng *rand.Rand, quiet bool) {
	shuffle := func(deck []engine.Card) []engine.Card {
		rng.Shuffle(len(deck), func(i, j int) {
			deck[i], deck[j] = deck[j], deck[i]
		})
		return deck
	}

	g := engine.NewGame(shuffle)
	ids := make([]uuid.UUID, players)
	for i := range ids {
		ids[i] = uuid.New()
		if err := g.Join(ids[i], botNames[i]); err != nil {
			pterm.Fatal.Printfln("join failed: %v", err)
		}
	}
	if err := g.Start(); err != nil {
		pterm.Fatal.Printfln("start failed: %v", err)
	}

	lastRound := 0
	for g.State() != engine.StateWinner {
		if !quiet && g.Round() != lastRound && g.State() == engine.StateGuess {
			lastRound = g.Round()
			pterm.DefaultSection.Printfln("Game %d — round %d", n, lastRound)
		}
		if err := g.AutoPlay(); err != nil {
			pterm.Fatal.Printfln("auto-play failed in %s: %v", g.State(), err)
		}
		if !quiet && g.State() == engine.StateRoundDone {
			printScoreboard(g)
		}
	}

	printResult(n, g)
}

// printScoreboard renders the running totals after a finished round.
func printScoreboard(g *engine.Game) {
	view := g.View(uuid.Nil)

	rows := pterm.TableData{{"Player", "Bid", "Won", "Total"}}
	for _, total := range view.TotalPoints {
		rows = append(rows, []string{
			total.Nickname,
			fmt.Sprint(pointsFor(view.Guesses, total.Nickname)),
			fmt.Sprint(pointsFor(view.WinsThisRound, total.Nickname)),
			fmt.Sprint(total.Points),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		pterm.Warning.Printfln("render failed: %v", err)
	}
}

func printResult(n int, g *engine.Game) {
	view := g.View(uuid.Nil)

	result := pterm.Sprintfln("Winner(s): %v", view.Winners)
	for _, total := range view.TotalPoints {
		result += pterm.Sprintfln("  %-10s %d", total.Nickname, total.Points)
	}
	pterm.DefaultBox.
		WithTitle(pterm.LightGreen(fmt.Sprintf("| GAME %d OVER |", n))).
		WithTitleTopCenter().
		WithHorizontalPadding(4).
		Println(result)
}

func pointsFor(entries []engine.NicknamePoints, nickname string) int {
	for _, e := range entries {
		if e.Nickname == nickname {
			return e.Points
		}
	}
	return 0
}
