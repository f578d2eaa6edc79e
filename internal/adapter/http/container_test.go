package http

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"

	"taskboard/internal/adapter/database"
	"taskboard/pkg/auth"
	"taskboard/pkg/config"
)

func openMemory(t *testing.T) *database.Repositories {
	repos, err := database.Open(context.Background(), config.StorageConfig{Driver: "memory"}, database.Options{})

	if err != nil {
		t.Fatalf("open memory storage: %v", err)
	}

	return repos
}

func TestNewContainer_TodosService(t *testing.T) {
	RegisterTestingT(t)

	c := NewContainer(config.ServiceTodos, ContainerDeps{Repositories: openMemory(t)})

	Expect(c.ListHandler).ToNot(BeNil())
	Expect(c.TodoHandler).ToNot(BeNil())
	Expect(c.UserHandler).To(BeNil())
	Expect(c.Handlers().Health).ToNot(BeNil())
	Expect(c.Close()).To(Succeed())
}

func TestNewContainer_UsersService(t *testing.T) {
	RegisterTestingT(t)

	c := NewContainer(config.ServiceUsers, ContainerDeps{
		Repositories: openMemory(t),
		JWT:          auth.NewJWT("secret"),
	})

	Expect(c.UserHandler).ToNot(BeNil())
	Expect(c.ListHandler).To(BeNil())
	Expect(c.TodoHandler).To(BeNil())
	Expect(c.Close()).To(Succeed())
}
