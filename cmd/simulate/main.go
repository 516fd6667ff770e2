package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/users-revenue-simulator/internal/config"
	"github.com/vfg2006/users-revenue-simulator/internal/domain"
	"github.com/vfg2006/users-revenue-simulator/internal/usecases/simulating"
	"github.com/vfg2006/users-revenue-simulator/pkg/utils"
)

var Cmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simula usuários ativos e receita diária de um jogo",
	Long: "Executa os modelos de aquisição, retenção e receita para um período e imprime " +
		"as séries diárias em json, yaml ou tabela.",
	SilenceUsage: true,
	RunE:         run,
}

var args struct {
	startDate string
	endDate   string
	format    string
	verbose   bool
	params    domain.SimulationParameters
}

func init() {
	args.params = domain.DefaultSimulationParameters()

	flags := Cmd.Flags()
	flags.StringVar(&args.startDate, "start-date", "", "data inicial (YYYY-MM-DD), padrão SIMULATION_DEFAULT_START_DATE")
	flags.StringVar(&args.endDate, "end-date", "", "data final (YYYY-MM-DD), padrão SIMULATION_DEFAULT_END_DATE")
	flags.StringVarP(&args.format, "format", "o", formatTable, "formato de saída: json, yaml ou table")
	flags.BoolVarP(&args.verbose, "verbose", "v", false, "exibe logs de depuração")

	flags.Float64Var(&args.params.InitialUserCount, "initial-users", args.params.InitialUserCount, "usuários no primeiro dia")
	flags.Float64Var(&args.params.AcquisitionCost, "acquisition-cost", args.params.AcquisitionCost, "custo por usuário adquirido")
	flags.Float64Var(&args.params.MonthlyBudget, "monthly-budget", args.params.MonthlyBudget, "orçamento de aquisição aplicado a cada dia")
	flags.Float64Var(&args.params.OrganicSpinoff, "organic-spinoff", args.params.OrganicSpinoff, "usuários extras por usuário")
	flags.Float64Var(&args.params.DecayFirstDay, "decay-first-day", args.params.DecayFirstDay, "retenção no primeiro dia (0,1]")
	flags.Float64Var(&args.params.DecayFirstWeek, "decay-first-week", args.params.DecayFirstWeek, "retenção na primeira semana (0,1]")
	flags.Float64Var(&args.params.DecayFirstMonth, "decay-first-month", args.params.DecayFirstMonth, "retenção no primeiro mês (0,1]")
	flags.Float64Var(&args.params.ARPDAU, "arpdau", args.params.ARPDAU, "receita média por usuário ativo por dia")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if err := Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, argv []string) error {
	logrus.SetLevel(logrus.WarnLevel)
	if args.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if !isSupportedFormat(args.format) {
		return fmt.Errorf("formato inválido %q: use json, yaml ou table", args.format)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("erro ao carregar configuração: %w", err)
	}

	service := simulating.NewService(cfg)
	defaults := service.Defaults()

	startDate, err := utils.ParseDate(args.startDate, defaults.DateRange.Start)
	if err != nil {
		return fmt.Errorf("start-date inválida: %w", err)
	}

	endDate, err := utils.ParseDate(args.endDate, defaults.DateRange.End)
	if err != nil {
		return fmt.Errorf("end-date inválida: %w", err)
	}

	result, err := service.Simulate(context.Background(), domain.NewDateRange(startDate, endDate), args.params)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), args.format, result)
}
