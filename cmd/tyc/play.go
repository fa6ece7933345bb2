package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tycoon/internal/api"
	cl "tycoon/internal/cli"
	"tycoon/internal/game"
	"tycoon/internal/leaderboard"

	"github.com/spf13/cobra"
)

// newPlayCmd runs a whole game locally without a server.
func newPlayCmd() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a full offline game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := promptOptional("Founder name")
			if err != nil {
				return err
			}

			var engine *game.Engine
			if seed != 0 {
				engine = game.NewEngineSeeded(nil, seed)
			} else {
				engine = game.NewEngine(nil)
			}
			company := engine.CreateCompany(name)
			printSuccess(fmt.Sprintf("Welcome to St. Gallen, %s! Survive 12 months without going under.", company.OwnerName))

			for !engine.IsGameOver(company) {
				renderState(localState(engine, company))

				ids := make([]string, 0, 8)
				for _, a := range game.AvailableActions(company) {
					ids = append(ids, string(a.ID))
				}
				action, err := promptChoice("Action", ids, ids[len(ids)-1])
				if err != nil {
					return err
				}

				turn, err := engine.RunTurn(company, game.ActionType(action))
				if err != nil {
					if errors.Is(err, game.ErrInsufficientFunds) || errors.Is(err, game.ErrInvalidAction) {
						printError(err.Error())
						continue
					}
					return err
				}
				renderTurn(turn)

				if turn.Pending != nil {
					turn, err = resolveLocalEvent(engine, company, turn.Pending)
					if err != nil {
						return err
					}
					renderTurn(turn)
				}
			}

			renderGameOver(company)
			if err := archiveRun(company); err != nil {
				printWarn(fmt.Sprintf("could not save this run locally: %v", err))
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "fixed random seed for a reproducible game")
	return cmd
}

func resolveLocalEvent(engine *game.Engine, company *game.Company, prompt *game.EventPrompt) (game.TurnResult, error) {
	renderPendingEvent(prompt)
	ids := make([]string, 0, len(prompt.Options))
	for _, opt := range prompt.Options {
		ids = append(ids, opt.ID)
	}
	for {
		choice, err := promptChoice("Your answer", ids, ids[0])
		if err != nil {
			return game.TurnResult{}, err
		}
		turn, err := engine.ResolveEvent(company, prompt, choice)
		if errors.Is(err, game.ErrInvalidChoice) {
			printWarn("That is not one of the options.")
			continue
		}
		return turn, err
	}
}

func localState(engine *game.Engine, company *game.Company) api.GameState {
	return api.GameState{
		Company:  company,
		Actions:  game.AvailableActions(company),
		GameOver: engine.IsGameOver(company),
		Score:    company.Score(),
	}
}

func archiveRun(c *game.Company) error {
	return cl.ArchiveRun(leaderboard.Entry{
		PlayerName:     c.OwnerName,
		FinalBalance:   c.Balance,
		FinalCustomers: c.Customers,
		MonthsSurvived: c.MonthsSurvived,
		FinalScore:     c.Score(),
		CreatedAt:      time.Now(),
	})
}

func renderGameOver(c *game.Company) {
	accent.Println("\n== FINAL REPORT ==")
	fmt.Printf("Founder:          %s\n", c.OwnerName)
	fmt.Printf("Months survived:  %d\n", c.MonthsSurvived)
	fmt.Printf("Final balance:    %s\n", formatCHF(c.Balance))
	fmt.Printf("Final customers:  %d\n", c.Customers)
	fmt.Printf("Final score:      %d\n", c.Score())

	switch {
	case c.IsBankrupt:
		printError("The company declared bankruptcy. Zurich was not impressed.")
	case c.Balance < game.BankruptcyFloor:
		printError("Debt swallowed the company. The banks of St. Gallen say goodbye.")
	default:
		printSuccess("Your startup survived the year! Olma Bratwurst for everyone!")
	}

	if len(c.History) > 0 {
		accent.Println("\n== COMPANY HISTORY ==")
		for _, line := range c.History {
			fmt.Println(strings.TrimSpace(line))
		}
	}
}
