package bot

// Store exposes catalog retrieval for HTTP handlers.
type Store interface {
	List() []Bot
	FindByID(id string) (Bot, bool)
	ListByCategory(category string) []Bot
	Categories() []string
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Bot
}

// NewMemoryStore validates the supplied catalog and returns a store preloaded
// with it.
func NewMemoryStore(items []Bot) (*MemoryStore, error) {
	if err := Validate(items); err != nil {
		return nil, err
	}
	return &MemoryStore{items: append([]Bot(nil), items...)}, nil
}

// List returns the catalog in declaration order.
func (s *MemoryStore) List() []Bot {
	return append([]Bot(nil), s.items...)
}

// FindByID looks up a bot by identifier.
func (s *MemoryStore) FindByID(id string) (Bot, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Bot{}, false
}

// ListByCategory returns the bots of one category. An empty category lists
// everything.
func (s *MemoryStore) ListByCategory(category string) []Bot {
	if category == "" {
		return s.List()
	}
	out := make([]Bot, 0, len(s.items))
	for _, item := range s.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (s *MemoryStore) Categories() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, item := range s.items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		out = append(out, item.Category)
	}
	return out
}
