package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/users"
)

// MemoryRepositoryManager holds the in-memory stores used when no database is
// reachable.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
	tasks *tasks.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users: users.NewMemoryRepository(),
		tasks: tasks.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Mode() Mode              { return ModeMemory }
func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }
func (m *MemoryRepositoryManager) Tasks() tasks.Repository { return m.tasks }
func (m *MemoryRepositoryManager) Close() error            { return nil }

func (m *MemoryRepositoryManager) Info(_ context.Context) (*models.StoreInfo, error) {
	return &models.StoreInfo{
		Databases: []string{},
		Tables:    []string{"users (in-memory)", "tasks (in-memory)"},
		Status:    "Using in-memory stores",
	}, nil
}

// Describe returns the schema the in-memory records mirror, which is the
// schema the migrations create.
func (m *MemoryRepositoryManager) Describe(_ context.Context, table string) (*models.TableDescription, error) {
	if err := checkDescribable(table); err != nil {
		return nil, err
	}
	cols := memorySchema[table]
	return &models.TableDescription{Table: table, Columns: append([]models.Column(nil), cols...)}, nil
}

func def(s string) *string { return &s }

var memorySchema = map[string][]models.Column{
	TableUsers: {
		{Field: "id", Type: "bigint", Null: "NO", Key: "PRI", Default: def("nextval('users_id_seq'::regclass)"), Extra: "auto_increment"},
		{Field: "email", Type: "character varying(255)", Null: "NO", Key: "UNI"},
		{Field: "phone", Type: "character varying(20)", Null: "NO", Default: def("''::character varying")},
		{Field: "password_digest", Type: "character varying(255)", Null: "NO"},
		{Field: "token", Type: "character varying(255)", Null: "YES"},
		{Field: "created_at", Type: "timestamp with time zone", Null: "NO", Default: def("now()")},
		{Field: "updated_at", Type: "timestamp with time zone", Null: "NO", Default: def("now()")},
	},
	TableTasks: {
		{Field: "id", Type: "bigint", Null: "NO", Key: "PRI", Default: def("nextval('tasks_id_seq'::regclass)"), Extra: "auto_increment"},
		{Field: "user_id", Type: "bigint", Null: "NO", Key: "MUL"},
		{Field: "title", Type: "character varying(255)", Null: "NO"},
		{Field: "description", Type: "text", Null: "NO", Default: def("''::text")},
		{Field: "category", Type: "character varying(100)", Null: "NO", Default: def("'Other'::character varying")},
		{Field: "priority", Type: "character varying(20)", Null: "NO", Default: def("'Medium'::character varying")},
		{Field: "due_date", Type: "date", Null: "YES"},
		{Field: "completed", Type: "smallint", Null: "NO", Default: def("0")},
		{Field: "created_at", Type: "timestamp with time zone", Null: "NO", Default: def("now()")},
		{Field: "updated_at", Type: "timestamp with time zone", Null: "NO", Default: def("now()")},
	},
}
