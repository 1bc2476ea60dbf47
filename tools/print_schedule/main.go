package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/retireplan/spendgo/internal/calculation"
	"github.com/retireplan/spendgo/internal/config"
	"github.com/retireplan/spendgo/internal/domain"
)

// Usage: print_schedule [plan.yaml]
//
// With a plan file, dumps every scenario it defines. Without one, dumps
// two built-in scenarios with hand-checkable numbers.
func main() {
	ce := calculation.NewCalculationEngine()

	if len(os.Args) > 1 {
		plan, err := config.NewInputParser().LoadFromFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "load plan: %v\n", err)
			os.Exit(1)
		}
		for i, scenario := range plan.ToScenarios() {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("Scenario %q:\n", scenario.Name)
			printSchedule(ce, scenario)
		}
		return
	}

	fmt.Println("Zero-inflation schedule (hand-checkable):")
	printSchedule(ce, flatScenario())

	fmt.Println("\n3% inflation, survivor at offset 10:")
	printSchedule(ce, inflatedScenario())
}

func printSchedule(ce *calculation.CalculationEngine, scenario *domain.Scenario) {
	schedule, err := ce.RunScenario(context.Background(), scenario)
	if err != nil {
		panic(err)
	}

	for _, yr := range schedule.Years {
		marker := ""
		if yr.SurvivorAdjusted {
			marker = " *"
		}
		fmt.Printf("%d off=%-2d %-6s real=%-9s nominal=%-24s final=%s%s\n",
			yr.CalendarYear, yr.YearOffset, yr.Phase,
			yr.RealPhaseAmount.String(), yr.NominalAmount.String(),
			yr.FinalAmount.String(), marker)
	}

	fmt.Printf("total=%s first=%s final=%s\n",
		schedule.TotalSpending().String(),
		schedule.FirstYearSpending().String(),
		schedule.FinalYearSpending().String())
}

func flatScenario() *domain.Scenario {
	return &domain.Scenario{
		Name:         "flat",
		HorizonYears: 20,
		Config: domain.SpendingConfig{
			TargetSpend:     decimal.NewFromInt(120000),
			GoGoPercent:     decimal.NewFromInt(100),
			SlowGoPercent:   decimal.NewFromInt(80),
			NoGoPercent:     decimal.NewFromInt(70),
			GoGoYears:       10,
			SlowGoYears:     6,
			SurvivorPercent: decimal.NewFromInt(70),
			InflationRate:   decimal.Zero,
			StartYear:       2025,
		},
	}
}

func inflatedScenario() *domain.Scenario {
	s := flatScenario()
	s.Name = "inflated"
	s.Config.InflationRate = decimal.NewFromFloat(0.03)
	s.Survivor = &domain.SurvivorEvent{DeathYearOffset: 10}
	return s
}
