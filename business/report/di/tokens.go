// Package di contains dependency injection tokens for the report context.
package di

import (
	"github.com/fd1az/eclesiar-analyzer/business/report/app"
	"github.com/fd1az/eclesiar-analyzer/business/report/infra"
	"github.com/fd1az/eclesiar-analyzer/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Runner   = di.NewToken[*app.Runner]("report.Runner")
	Analyzer = di.NewToken[*app.Analyzer]("report.Analyzer")
)

// Private dependency tokens - internal to report module
var (
	FileExporter = di.NewToken[*infra.FileExporter]("report:fileExporter")
	Reporters    = di.NewToken[[]app.Reporter]("report:reporters")
)

func GetRunner(c di.ServiceRegistry) *app.Runner {
	return di.GetToken(c, Runner)
}

func GetAnalyzer(c di.ServiceRegistry) *app.Analyzer {
	return di.GetToken(c, Analyzer)
}

func GetFileExporter(c di.ServiceRegistry) *infra.FileExporter {
	return di.GetToken(c, FileExporter)
}

func GetReporters(c di.ServiceRegistry) []app.Reporter {
	return di.GetToken(c, Reporters)
}
