package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/optionscout/wheelscreener/src/marketdata"
	"github.com/optionscout/wheelscreener/src/optionmodels"
	"github.com/optionscout/wheelscreener/src/service"
	"github.com/optionscout/wheelscreener/src/utils"
)

type RunArgs struct {
	Symbol      string
	Side        string
	BuyingPower float64
	ConfigPath  string
	CSVPath     string
}

var runCmd = &cobra.Command{
	Use:   "screen --symbol AAPL --side put --buying-power 25000",
	Short: "Screen an option chain for wheel-strategy candidates",
	Run: func(cmd *cobra.Command, args []string) {
		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			log.Fatalf("error getting symbol: %v", err)
		}

		side, err := cmd.Flags().GetString("side")
		if err != nil {
			log.Fatalf("error getting side: %v", err)
		}

		buyingPower, err := cmd.Flags().GetFloat64("buying-power")
		if err != nil {
			log.Fatalf("error getting buying-power: %v", err)
		}

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		csvPath, err := cmd.Flags().GetString("csv")
		if err != nil {
			log.Fatalf("error getting csv: %v", err)
		}

		if err := Run(RunArgs{
			Symbol:      strings.ToUpper(symbol),
			Side:        side,
			BuyingPower: buyingPower,
			ConfigPath:  configPath,
			CSVPath:     csvPath,
		}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run(args RunArgs) error {
	if err := utils.InitEnvironmentVariables(); err != nil {
		log.Warnf("Run: %v", err)
	}

	tradierURL := os.Getenv("TRADIER_API_URL")
	tradierToken := os.Getenv("TRADIER_BEARER_TOKEN")
	if tradierURL == "" || tradierToken == "" {
		return fmt.Errorf("Run: missing TRADIER_API_URL or TRADIER_BEARER_TOKEN environment variable")
	}

	var polygonClient *marketdata.PolygonClient
	if apiKey := os.Getenv("POLYGON_API_KEY"); apiKey != "" {
		polygonClient = marketdata.NewPolygonClient(apiKey)
	}

	provider := marketdata.NewCompositeProvider(marketdata.NewTradierClient(tradierURL, tradierToken), polygonClient)

	svc := service.NewWheelService(provider)
	if args.ConfigPath != "" {
		if err := svc.LoadConfig(args.ConfigPath); err != nil {
			return fmt.Errorf("Run: %w", err)
		}
	}

	ctx := context.Background()

	var result optionmodels.ScreenResult
	switch args.Side {
	case "put":
		params := svc.PutParams(args.Symbol)
		if args.BuyingPower > 0 {
			params.BuyingPowerLimit = args.BuyingPower
		}

		var err error
		result, err = svc.ScreenPuts(ctx, args.Symbol, params)
		if err != nil {
			return fmt.Errorf("Run: %w", err)
		}
	case "call":
		var err error
		result, err = svc.ScreenCalls(ctx, args.Symbol, svc.CallParams(args.Symbol))
		if err != nil {
			return fmt.Errorf("Run: %w", err)
		}
	default:
		return fmt.Errorf("Run: invalid side %q, expected put or call", args.Side)
	}

	printResult(result)

	if args.CSVPath != "" && result.Status == optionmodels.StatusFound {
		if err := exportCSV(result, args.CSVPath); err != nil {
			return fmt.Errorf("Run: %w", err)
		}
	}

	return nil
}

func printResult(result optionmodels.ScreenResult) {
	p := message.NewPrinter(language.English)

	fmt.Printf("%s %ss @ %s: %s\n", result.Symbol, result.OptionType, p.Sprintf("$%.2f", result.UnderlyingPrice), result.Status)

	if result.UpperVolatilityBand != nil {
		if result.UpperVolatilityBand.Fallback {
			fmt.Printf("upper volatility band (fallback): %s\n", p.Sprintf("$%.2f", result.UpperVolatilityBand.Upper))
		} else {
			fmt.Printf("upper volatility band: %s\n", p.Sprintf("$%.2f", result.UpperVolatilityBand.Upper))
		}
	}

	if result.Status != optionmodels.StatusFound {
		fmt.Printf("skipped: %d contracts\n", result.Skipped.Total())
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"", "Strike", "Exp", "DTE", "Mid", "Delta", "IV", "P(assign)", "Risk", "Ann. Return", "Premium"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for i, c := range result.Candidates() {
		rank := "alt"
		if i == 0 {
			rank = "best"
		}

		table.Append([]string{
			rank,
			p.Sprintf("$%.2f", c.Quote.Strike),
			c.Quote.Expiration.Format("2006-01-02"),
			fmt.Sprintf("%d", c.DaysToExpiry),
			p.Sprintf("$%.2f", c.MidPrice),
			fmt.Sprintf("%.3f", c.Delta()),
			fmt.Sprintf("%.1f%%", c.ImpliedVol*100),
			fmt.Sprintf("%.1f%%", c.AssignmentProbability*100),
			string(c.RiskBand),
			fmt.Sprintf("%.1f%%", c.AnnualizedReturnPct),
			p.Sprintf("$%.0f", c.PremiumIncome),
		})
	}

	table.Render()

	fmt.Printf("skipped: %d contracts\n", result.Skipped.Total())
}

func exportCSV(result optionmodels.ScreenResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("exportCSV: failed to create %s: %w", path, err)
	}

	defer file.Close()

	records := make([]optionmodels.CandidateRecord, 0, 1+len(result.Alternatives))
	for _, c := range result.Candidates() {
		records = append(records, c.ToRecord())
	}

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return fmt.Errorf("exportCSV: error marshalling file: %v", err)
	}

	log.Infof("Exported %d candidates to %s", len(records), path)

	return nil
}

func main() {
	runCmd.PersistentFlags().String("symbol", "", "Underlying symbol to screen")
	runCmd.PersistentFlags().String("side", "put", "Pipeline to run: put (cash-secured put) or call (covered call)")
	runCmd.PersistentFlags().Float64("buying-power", 0, "Buying-power limit for cash-secured puts")
	runCmd.PersistentFlags().String("config", "", "Path to per-symbol screener config YAML")
	runCmd.PersistentFlags().String("csv", "", "Export ranked candidates to this CSV file")

	runCmd.MarkPersistentFlagRequired("symbol")

	if err := runCmd.Execute(); err != nil {
		log.Fatalf("error executing command: %v", err)
	}
}
