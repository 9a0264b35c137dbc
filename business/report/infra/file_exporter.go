package infra

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fd1az/eclesiar-analyzer/business/report/app"
	"github.com/fd1az/eclesiar-analyzer/business/report/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
	"github.com/fd1az/eclesiar-analyzer/internal/logger"
)

// Export formats.
const (
	FormatTXT = "txt"
	FormatCSV = "csv"
)

const fileTimestamp = "20060102_150405"

var csvHeader = []string{
	"kind", "path", "from_currency", "to_currency", "buy_rate", "sell_rate",
	"profit_percentage", "net_profit_percentage", "max_amount", "estimated_profit_gold",
	"risk_score", "confidence", "volume_score", "liquidity_score", "execution_time_estimate",
}

// FileExporter writes every report to dir in the configured formats.
type FileExporter struct {
	dir     string
	formats []string
	logger  logger.LoggerInterface
}

// NewFileExporter creates an exporter. Unknown formats are rejected.
func NewFileExporter(dir string, formats []string, log logger.LoggerInterface) (*FileExporter, error) {
	norm := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != FormatTXT && f != FormatCSV {
			return nil, apperror.New(apperror.CodeInvalidParameter, apperror.WithContextf("export format %q", f))
		}
		norm = append(norm, f)
	}
	return &FileExporter{dir: dir, formats: norm, logger: log}, nil
}

// Start creates the export directory.
func (e *FileExporter) Start(ctx context.Context) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return apperror.Internal(apperror.CodeExportFailed, e.dir, err)
	}
	return nil
}

// Report writes the files for one report and returns the first failure.
func (e *FileExporter) Report(ctx context.Context, r *domain.Report) error {
	paths, err := e.Export(r)
	for _, p := range paths {
		e.logger.Info(ctx, "report exported", "path", p)
	}
	return err
}

// Export writes the configured formats and returns the paths written.
// The txt format produces an arbitrage and a production file.
func (e *FileExporter) Export(r *domain.Report) ([]string, error) {
	ts := r.GeneratedAt.Format(fileTimestamp)

	var written []string
	for _, f := range e.formats {
		switch f {
		case FormatCSV:
			p := filepath.Join(e.dir, fmt.Sprintf("arbitrage_report_%s.csv", ts))
			if err := writeFile(p, func(f *os.File) error { return writeArbitrageCSV(f, r) }); err != nil {
				return written, err
			}
			written = append(written, p)
		case FormatTXT:
			p := filepath.Join(e.dir, fmt.Sprintf("arbitrage_report_%s.txt", ts))
			if err := writeFile(p, func(f *os.File) error { writeArbitrageText(f, r); return nil }); err != nil {
				return written, err
			}
			written = append(written, p)

			p = filepath.Join(e.dir, fmt.Sprintf("production_report_%s.txt", ts))
			if err := writeFile(p, func(f *os.File) error { writeProductionText(f, r); return nil }); err != nil {
				return written, err
			}
			written = append(written, p)
		}
	}
	return written, nil
}

// Status is ignored.
func (e *FileExporter) Status(context.Context, app.Status) {}

// Stop is a no-op.
func (e *FileExporter) Stop() error { return nil }

func writeFile(path string, fill func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return apperror.Internal(apperror.CodeExportFailed, path, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		return apperror.Internal(apperror.CodeExportFailed, path, err)
	}
	if err := f.Close(); err != nil {
		return apperror.Internal(apperror.CodeExportFailed, path, err)
	}
	return nil
}

func writeArbitrageCSV(f *os.File, r *domain.Report) error {
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, o := range r.Opportunities {
		row := []string{
			string(o.Kind),
			o.PathString(),
			string(o.From()),
			string(o.To()),
			o.BuyRate.StringFixed(6),
			o.SellRate.StringFixed(6),
			o.Profit.GrossPct.StringFixed(2),
			o.Profit.NetPct.StringFixed(2),
			o.MaxAmountGold.StringFixed(2),
			o.EstimatedProfitGold.StringFixed(6),
			fmt.Sprintf("%.3f", o.Scores.Risk),
			fmt.Sprintf("%.3f", o.Scores.Confidence),
			fmt.Sprintf("%.3f", o.Scores.Volume),
			fmt.Sprintf("%.3f", o.Scores.Liquidity),
			fmt.Sprintf("%.0f", o.ExecutionTime.Seconds()),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
