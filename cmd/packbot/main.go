// packbot — Packing Plan Executor & Replay
//
// Consumes an optimized 2-D packing plan and either replays it
// deterministically for statistics and exports, or hands it to an external
// tool-calling model that must execute it action by action.
//
// Build:
//   go build -o packbot ./cmd/packbot
//
// Replay a plan and export reports:
//   packbot -plan optimized_plan.json -pdf report.pdf -xlsx replay.xlsx
//
// Execute a plan through a model (requires PACKBOT_API_KEY):
//   packbot -plan optimized_plan.json -mode agent

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/agent"
	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/config"
	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/executor"
	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/export"
	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/model"
	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/modelopenai"
	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/plan"
	"github.com/RavinduPabasara/EC-inventory-optimizer/internal/replay"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "packbot:", err)
		os.Exit(1)
	}
}

func run() error {
	planPath := flag.String("plan", "optimized_plan.json", "path to the packing plan JSON")
	mode := flag.String("mode", "replay", "execution mode: replay or agent")
	pdfPath := flag.String("pdf", "", "write a PDF layout report to this path")
	labelsPath := flag.String("labels", "", "write QR pick labels PDF to this path")
	xlsxPath := flag.String("xlsx", "", "write the replay workbook to this path")
	dxfPath := flag.String("dxf", "", "write a DXF layout to this path")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.LogLevel)

	p, err := plan.Load(*planPath)
	if err != nil {
		return err
	}
	logger.Info("plan loaded", "path", *planPath, "bins", len(p.Bins), "items", p.TotalItems(), "value", p.TotalValue())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "replay":
		if err := runReplay(p); err != nil {
			return err
		}
	case "agent":
		if err := runAgent(ctx, cfg, logger, p); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown mode %q: want replay or agent", *mode)
	}

	return runExports(p, *pdfPath, *labelsPath, *xlsxPath, *dxfPath, logger)
}

// runReplay drives the deterministic replay and prints the per-step log and
// shape analysis.
func runReplay(p model.PackingPlan) error {
	snapshots, state, err := replay.Run(p)
	if err != nil {
		return err
	}

	for _, snap := range snapshots {
		fmt.Printf("step %3d: %-16s -> bin %d | items %2d | area %7.1f | value $%7.2f | %5.1f%%\n",
			snap.Step, snap.ItemID, snap.BinID, snap.ItemsIn, snap.AreaIn, snap.ValueIn, snap.Progress*100)
	}

	fmt.Println("\n=== Packing Analysis by Shape ===")
	for _, st := range model.AnalyzeShapes(p) {
		fmt.Printf("%ss: %d items | $%.2f value | %.1f actual (%.0f%% of bounding box)\n",
			st.Shape, st.Count, st.TotalValue, st.ActualArea, st.Efficiency())
	}

	fmt.Printf("\nPlaced %d/%d items, packed value $%.2f, unpacked $%.2f\n",
		state.PlacedCount(), p.TotalItems(), state.PackedValue(), state.UnpackedValue())
	return nil
}

// runAgent executes the plan through an external tool-calling model.
func runAgent(ctx context.Context, cfg config.Config, logger *slog.Logger, p model.PackingPlan) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("agent mode requires PACKBOT_API_KEY (or OPENAI_API_KEY)")
	}

	adapter, err := modelopenai.New(modelopenai.Config{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		BaseURL:    cfg.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
	})
	if err != nil {
		return err
	}

	state := executor.NewState(p)
	loop, err := agent.NewLoop(adapter, state, cfg.MaxTurns, logger)
	if err != nil {
		return err
	}

	result, err := loop.Run(ctx, p)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case agent.OutcomeCompleted:
		fmt.Printf("\nAGENT: %s\n", result.FinalMessage)
	case agent.OutcomeBudgetExceeded:
		fmt.Printf("\nRun incomplete: turn budget of %d exhausted after %d tool calls.\n",
			cfg.MaxTurns, result.ToolCalls)
	}

	fmt.Printf("Placed %d/%d items over %d turns, packed value $%.2f, unpacked $%.2f\n",
		state.PlacedCount(), p.TotalItems(), result.Turns, state.PackedValue(), state.UnpackedValue())
	return nil
}

// runExports writes whichever export files were requested.
func runExports(p model.PackingPlan, pdfPath, labelsPath, xlsxPath, dxfPath string, logger *slog.Logger) error {
	if pdfPath != "" {
		if err := export.ExportPDF(pdfPath, p); err != nil {
			return fmt.Errorf("export pdf: %w", err)
		}
		logger.Info("wrote layout report", "path", pdfPath)
	}
	if labelsPath != "" {
		if err := export.ExportLabels(labelsPath, p); err != nil {
			return fmt.Errorf("export labels: %w", err)
		}
		logger.Info("wrote pick labels", "path", labelsPath)
	}
	if xlsxPath != "" {
		snapshots, _, err := replay.Run(p)
		if err != nil {
			return fmt.Errorf("export workbook: %w", err)
		}
		if err := export.ExportWorkbook(xlsxPath, p, snapshots); err != nil {
			return fmt.Errorf("export workbook: %w", err)
		}
		logger.Info("wrote replay workbook", "path", xlsxPath)
	}
	if dxfPath != "" {
		if err := export.ExportDXF(dxfPath, p); err != nil {
			return fmt.Errorf("export dxf: %w", err)
		}
		logger.Info("wrote dxf layout", "path", dxfPath)
	}
	return nil
}
