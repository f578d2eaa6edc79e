package jsonfile

import (
	"path/filepath"

	"taskboard/internal/adapter/database/memory"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
)

const (
	UsersFile = "users.json"
	ListsFile = "lists.json"
	TodosFile = "todos.json"
)

// open loads a collection file into a memory store that writes the whole
// collection back on every change.
func open[T memory.Record](path string) (*memory.Store[T], error) {
	file := NewFile[T](path)

	items, err := file.Load()

	if err != nil {
		return nil, err
	}

	return memory.NewStore(items, file.Save), nil
}

func NewListRepository(path string) (port.ListRepository, error) {
	store, err := open[domain.List](path)

	if err != nil {
		return nil, err
	}

	return memory.NewListRepository(store), nil
}

func NewTodoRepository(path string) (port.TodoRepository, error) {
	store, err := open[domain.Todo](path)

	if err != nil {
		return nil, err
	}

	return memory.NewTodoRepository(store), nil
}

func NewUserRepository(path string) (port.UserRepository, error) {
	store, err := open[domain.User](path)

	if err != nil {
		return nil, err
	}

	return memory.NewUserRepository(store), nil
}

// PathIn returns the default location of a collection file in dataDir.
func PathIn(dataDir string, name string) string {
	return filepath.Join(dataDir, name)
}
