package cart

import "jivuma/internal/domain"

// Command is the closed set of cart mutations. Each variant carries
// only its own payload; the reducer matches them exhaustively.
type Command interface {
	isCommand()
}

// Add puts one unit of a product in the cart. If a line for the product
// already exists its quantity goes up by one; no second line is created.
type Add struct {
	Product domain.Product
}

// Remove deletes the line with the given product id. Absent ids are a
// no-op, not an error.
type Remove struct {
	ID int64
}

// SetQuantity replaces a line's quantity. A quantity <= 0 removes the
// line; a missing id leaves the cart untouched.
type SetQuantity struct {
	ID       int64
	Quantity int
}

// Clear empties the cart.
type Clear struct{}

// Load replaces the cart wholesale. It is the hydrate path used once at
// startup and is the only command that skips the persistence write.
type Load struct {
	Entries []domain.Entry
}

func (Add) isCommand()         {}
func (Remove) isCommand()      {}
func (SetQuantity) isCommand() {}
func (Clear) isCommand()       {}
func (Load) isCommand()        {}

// reduce computes the next entry list for a command. Pure: the input
// slice is never mutated.
func reduce(entries []domain.Entry, cmd Command) []domain.Entry {
	switch c := cmd.(type) {
	case Add:
		next := make([]domain.Entry, len(entries))
		copy(next, entries)
		for i := range next {
			if next[i].ID == c.Product.ID {
				next[i].Quantity++
				return next
			}
		}
		return append(next, domain.Entry{Product: c.Product, Quantity: 1})

	case Remove:
		return without(entries, c.ID)

	case SetQuantity:
		if c.Quantity <= 0 {
			return without(entries, c.ID)
		}
		next := make([]domain.Entry, len(entries))
		copy(next, entries)
		for i := range next {
			if next[i].ID == c.ID {
				next[i].Quantity = c.Quantity
			}
		}
		return next

	case Clear:
		return []domain.Entry{}

	case Load:
		next := make([]domain.Entry, len(c.Entries))
		copy(next, c.Entries)
		return next
	}
	return entries
}

func without(entries []domain.Entry, id int64) []domain.Entry {
	next := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	return next
}
