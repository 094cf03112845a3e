// Package repomanager is the persistence mode selector. Open decides once, at
// startup, whether the stores live in PostgreSQL or in process memory, and
// returns a RepositoryManager vending the matching repositories.
package repomanager

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/users"
)

// Mode names the selected backing store.
type Mode string

const (
	ModeDatabase Mode = "database"
	ModeMemory   Mode = "memory"
)

const (
	TableUsers = "users"
	TableTasks = "tasks"
)

// DescribableTables are the tables Describe answers for.
var DescribableTables = []string{TableUsers, TableTasks}

// RepositoryManager vends the repositories of one persistence mode and
// reports on the backing store.
type RepositoryManager interface {
	Mode() Mode
	Users() users.Repository
	Tasks() tasks.Repository

	// Info lists databases and tables of the backing store.
	Info(ctx context.Context) (*models.StoreInfo, error)
	// Describe lists the columns of table, which must be one of
	// DescribableTables; anything else yields common.ErrNotFound.
	Describe(ctx context.Context, table string) (*models.TableDescription, error)

	Close() error
}

func checkDescribable(table string) error {
	if !slices.Contains(DescribableTables, table) {
		return common.ErrNotFound
	}
	return nil
}
