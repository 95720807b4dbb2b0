package storage

import "recruit-scraper/export"

// TableStorage defines the interface for persisting a flattened record batch
type TableStorage interface {
	SaveTable(name string, table *export.Table) error
	Close() error
}
