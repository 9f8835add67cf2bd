package excel

import (
	"context"

	"github.com/xuri/excelize/v2"

	"crooksbayes/domain/core"
	"crooksbayes/domain/estimator"
	apperrors "crooksbayes/internal/errors"
)

// TraceExporter writes run results to an .xlsx workbook with a Trace sheet
// (per-sample convergence) and a Posterior sheet (final density on the
// grid). It implements ports.TraceExporterPort.
type TraceExporter struct{}

// NewTraceExporter creates a workbook exporter
func NewTraceExporter() *TraceExporter {
	return &TraceExporter{}
}

// Export writes the run result to path
func (e *TraceExporter) Export(ctx context.Context, path string, runID core.RunID, result *estimator.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeTraceSheet(f, runID, result); err != nil {
		return apperrors.ExportFailed(path, err)
	}
	if err := e.writePosteriorSheet(f, result); err != nil {
		return apperrors.ExportFailed(path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.ExportFailed(path, err)
	}
	return nil
}

func (e *TraceExporter) writeTraceSheet(f *excelize.File, runID core.RunID, result *estimator.Result) error {
	sheet := "Trace"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headers := []interface{}{"sample", "posterior_mean", "posterior_stddev"}
	if err := e.writeRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i := range result.MeanTrace {
		row := []interface{}{i + 1, result.MeanTrace[i], result.StdDevTrace[i]}
		if err := e.writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	// Final estimate summary in a side column.
	if err := f.SetCellValue(sheet, "E1", "run_id"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "F1", runID.String()); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "E2", "final_mean"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "F2", result.FinalMean); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "E3", "final_stddev"); err != nil {
		return err
	}
	return f.SetCellValue(sheet, "F3", result.FinalStdDev)
}

func (e *TraceExporter) writePosteriorSheet(f *excelize.File, result *estimator.Result) error {
	sheet := "Posterior"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := e.writeRow(f, sheet, 1, []interface{}{"delta_g", "density"}); err != nil {
		return err
	}
	for i := range result.Grid {
		row := []interface{}{result.Grid[i], result.Posterior[i]}
		if err := e.writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (e *TraceExporter) writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
