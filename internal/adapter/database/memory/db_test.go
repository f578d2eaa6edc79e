package memory

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"

	"taskboard/internal/core/domain"
)

func TestStore_MutateUnknownID(t *testing.T) {
	RegisterTestingT(t)

	store := NewStore[domain.List](nil, nil)

	_, ok, err := store.Mutate("missing", func(l *domain.List) { l.Name = "x" })

	Expect(err).To(BeNil())
	Expect(ok).To(BeFalse())
}

func TestStore_PersisterFailureKeepsPreviousState(t *testing.T) {
	RegisterTestingT(t)

	failing := false
	store := NewStore[domain.List](nil, func(items []domain.List) error {
		if failing {
			return errors.New("disk full")
		}
		return nil
	})

	Expect(store.Insert(domain.List{ID: "1", Name: "To Do", Priority: 1})).To(Succeed())

	failing = true

	Expect(store.Insert(domain.List{ID: "2", Name: "Done", Priority: 2})).ToNot(Succeed())
	_, _, err := store.Mutate("1", func(l *domain.List) { l.Priority = 9 })
	Expect(err).To(MatchError("disk full"))

	list, ok := store.Get("1")

	Expect(ok).To(BeTrue())
	Expect(list.Priority).To(Equal(1))
	Expect(store.Len()).To(Equal(1))
}

func TestStore_FilterReturnsCopies(t *testing.T) {
	RegisterTestingT(t)

	store := NewStore([]domain.Todo{{ID: "1", ListID: "a", Priority: 1}}, nil)

	items := store.Filter(nil)
	items[0].Priority = 42

	todo, _ := store.Get("1")
	Expect(todo.Priority).To(Equal(1))
}
