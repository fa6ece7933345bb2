package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"tycoon/internal/api"
	"tycoon/internal/game"
	"tycoon/internal/leaderboard"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptOptional(label string) (string, error) {
	fmt.Printf("%s: ", label)
	text, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func formatCHF(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := fmt.Sprintf("%d", amount)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return sign + strings.Join(parts, "'") + " CHF"
}

func renderState(state api.GameState) {
	c := state.Company
	accent.Printf("\n== %s's STARTUP — MONTH %d/%d ==\n", c.OwnerName, c.Month, game.MaxMonths)
	fmt.Printf("Balance:     %s\n", formatCHF(c.Balance))
	fmt.Printf("Customers:   %d\n", c.Customers)
	fmt.Printf("Employees:   %d\n", c.Employees)
	fmt.Printf("Reputation:  %.1f\n", c.Reputation)
	fmt.Printf("Quality:     %.1f\n", c.ProductQuality)
	if len(c.Loans) > 0 {
		fmt.Printf("Loan debt:   %s (%d CHF/month)\n", formatCHF(c.TotalLoanDebt()), c.MonthlyLoanPayments())
	}
	if c.MarketingBoost > 0 {
		printInfo(fmt.Sprintf("Marketing boost active for %d more uses.", c.MarketingBoost))
	}
	fmt.Printf("Score:       %d\n", state.Score)

	if state.GameOver {
		if c.IsBankrupt || c.Balance < game.BankruptcyFloor {
			printError("GAME OVER — the company went under.")
		} else {
			printSuccess("YEAR COMPLETE — the company survived all 12 months!")
		}
		return
	}

	if state.Pending != nil {
		renderPendingEvent(state.Pending)
		return
	}

	accent.Println("\nAvailable actions:")
	for _, a := range state.Actions {
		cost := "free"
		if a.Cost > 0 {
			cost = formatCHF(a.Cost)
		}
		fmt.Printf("  %-12s %-26s %10s  %s\n", a.ID, a.Name, cost, a.Description)
	}
	fmt.Println()
}

func renderPendingEvent(p *game.EventPrompt) {
	warn.Printf("\n!! %s !!\n", p.Title)
	fmt.Println(p.Body)
	for _, opt := range p.Options {
		fmt.Printf("  [%s] %s\n", opt.ID, opt.Label)
	}
	printInfo("Answer with: tyc choose <option>")
	fmt.Println()
}

func renderTurn(turn game.TurnResult) {
	if turn.ActionResult != "" {
		printInfo(turn.ActionResult)
	}
	if turn.EventResult != "" {
		warn.Println(turn.EventResult)
	}
	if turn.Finance != nil {
		f := turn.Finance
		fmt.Printf("Revenue %s, expenses %s", formatCHF(f.Revenue), formatCHF(f.Expenses))
		if f.LoanPayments > 0 {
			fmt.Printf(", loan payments %s", formatCHF(f.LoanPayments))
		}
		if f.NetIncome >= 0 {
			success.Printf("  net +%s\n", formatCHF(f.NetIncome))
		} else {
			danger.Printf("  net %s\n", formatCHF(f.NetIncome))
		}
	}
}

func renderBoard(entries []leaderboard.Entry) {
	accent.Println("\n== ST. GALLEN HALL OF FAME ==")
	if len(entries) == 0 {
		printInfo("No companies survived the year yet. Be the first!")
		return
	}
	fmt.Printf("%-4s %-20s %14s %10s %8s %10s\n", "#", "FOUNDER", "BALANCE", "CUSTOMERS", "MONTHS", "SCORE")
	for i, e := range entries {
		fmt.Printf("%-4d %-20s %14s %10d %8d %10d\n",
			i+1,
			truncate(e.PlayerName, 20),
			formatCHF(e.FinalBalance),
			e.FinalCustomers,
			e.MonthsSurvived,
			e.FinalScore,
		)
	}
	fmt.Println()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
