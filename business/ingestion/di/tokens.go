// Package di contains dependency injection tokens for the ingestion context.
package di

import (
	"github.com/fd1az/eclesiar-analyzer/business/ingestion/app"
	"github.com/fd1az/eclesiar-analyzer/business/ingestion/infra/eclesiar"
	"github.com/fd1az/eclesiar-analyzer/business/ingestion/infra/sqlite"
	"github.com/fd1az/eclesiar-analyzer/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Collector = di.NewToken[*app.Collector]("ingestion.Collector")
	Store     = di.NewToken[*sqlite.Store]("ingestion.Store")
)

// Private dependency tokens - internal to ingestion module
var (
	Client = di.NewToken[*eclesiar.Client]("ingestion:client")
	Source = di.NewToken[*eclesiar.Source]("ingestion:source")
)

func GetCollector(c di.ServiceRegistry) *app.Collector {
	return di.GetToken(c, Collector)
}

func GetStore(c di.ServiceRegistry) *sqlite.Store {
	return di.GetToken(c, Store)
}

func GetClient(c di.ServiceRegistry) *eclesiar.Client {
	return di.GetToken(c, Client)
}

func GetSource(c di.ServiceRegistry) *eclesiar.Source {
	return di.GetToken(c, Source)
}
