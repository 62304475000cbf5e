package school

import (
	"context"
	"errors"
	"sync"
)

const DefaultPageSize = 10

// ErrBusy is returned by mutating Panel operations while a previous mutation
// has not settled yet, so a double submit cannot issue duplicate calls.
var ErrBusy = errors.New("a previous request is still in flight")

// PanelConfig parameterizes a Panel by resource name, API operations and
// search fields. All three entity panels share this one abstraction.
type PanelConfig[T Record] struct {
	Resource string // plural resource name, eg. "students"
	PageSize int

	// Match reports whether a record matches a search term. The search is
	// client-side only and never sent to the API.
	Match func(rec T, term string) bool

	FetchAll func(ctx context.Context) ([]T, error)
	Create   func(ctx context.Context, rec T) (T, error)
	Update   func(ctx context.Context, rec T) (T, error)
	Delete   func(ctx context.Context, id int) error
}

// Panel owns the in-memory collection of one entity type: it is the only
// source of truth between fetches. Mutations are reconciled against the
// server response and never applied optimistically.
type Panel[T Record] struct {
	cfg PanelConfig[T]

	mu      sync.Mutex
	items   []T
	loaded  bool
	loading bool
	busy    bool
	banner  string
	term    string
	page    int
}

func NewPanel[T Record](cfg PanelConfig[T]) *Panel[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return &Panel[T]{cfg: cfg, page: 1}
}

func (p *Panel[T]) Resource() string { return p.cfg.Resource }

// Fetch replaces the whole collection with the API's and clears any prior
// error banner. On failure the collection is left untouched.
func (p *Panel[T]) Fetch(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	items, err := p.cfg.FetchAll(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.banner = err.Error()
		return err
	}
	p.replace(items)
	return nil
}

// Load fetches the collection without committing it; the Dashboard uses it
// for its all-or-nothing refresh.
func (p *Panel[T]) Load(ctx context.Context) ([]T, error) {
	return p.cfg.FetchAll(ctx)
}

// Replace commits a collection previously obtained with Load.
func (p *Panel[T]) Replace(items []T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replace(items)
}

func (p *Panel[T]) replace(items []T) {
	p.items = items
	p.loaded = true
	p.banner = ""
}

// Create posts a new record (id omitted on the wire) and appends the
// server-assigned one to the collection.
func (p *Panel[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := p.begin(); err != nil {
		return zero, err
	}

	created, err := p.cfg.Create(ctx, rec)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = false
	if err != nil {
		p.banner = err.Error()
		return zero, err
	}
	p.items = append(p.items, created)
	p.banner = ""
	return created, nil
}

// Update puts the full record and then refetches the whole collection; one
// reconciliation strategy for all panels. Should the refetch itself fail,
// the server's returned record is substituted in place so the table still
// reflects it.
func (p *Panel[T]) Update(ctx context.Context, rec T) error {
	if err := p.begin(); err != nil {
		return err
	}

	updated, err := p.cfg.Update(ctx, rec)
	if err != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.busy = false
		p.banner = err.Error()
		return err
	}

	items, ferr := p.cfg.FetchAll(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = false
	if ferr != nil {
		for i, it := range p.items {
			if it.RecordID() == updated.RecordID() {
				p.items[i] = updated
				break
			}
		}
		p.banner = ferr.Error()
		return nil
	}
	p.replace(items)
	return nil
}

// Remove deletes the record by id and splices it out of the collection.
// Interactive confirmation happens at the UI layer; Remove is only called
// once the user confirmed.
func (p *Panel[T]) Remove(ctx context.Context, id int) error {
	if err := p.begin(); err != nil {
		return err
	}

	err := p.cfg.Delete(ctx, id)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = false
	if err != nil {
		p.banner = err.Error()
		return err
	}
	kept := p.items[:0]
	for _, it := range p.items {
		if it.RecordID() != id {
			kept = append(kept, it)
		}
	}
	p.items = kept
	p.banner = ""
	return nil
}

func (p *Panel[T]) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.busy {
		return ErrBusy
	}
	p.busy = true
	return nil
}

// SetSearch filters the visible rows; changing the term resets pagination to
// the first page.
func (p *Panel[T]) SetSearch(term string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if term != p.term {
		p.term = term
		p.page = 1
	}
}

func (p *Panel[T]) SetPage(page int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if page < 1 {
		page = 1
	}
	p.page = page
}

func (p *Panel[T]) Search() string { return p.getStr(&p.term) }
func (p *Panel[T]) Banner() string { return p.getStr(&p.banner) }

func (p *Panel[T]) getStr(fld *string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return *fld
}

// Busy reports whether a mutation is still in flight; the UI disables its
// submit controls while it is.
func (p *Panel[T]) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

func (p *Panel[T]) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

func (p *Panel[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Count is the size of the full collection, ignoring any search filter.
func (p *Panel[T]) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// Get returns the record with the given id, for edit forms.
func (p *Panel[T]) Get(id int) (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, it := range p.items {
		if it.RecordID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Filtered returns the records matching the current search term.
func (p *Panel[T]) Filtered() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filtered()
}

func (p *Panel[T]) filtered() []T {
	if p.term == "" {
		return append([]T(nil), p.items...)
	}
	matched := make([]T, 0, len(p.items))
	for _, it := range p.items {
		if p.cfg.Match(it, p.term) {
			matched = append(matched, it)
		}
	}
	return matched
}

// PageInfo describes the pagination state of the filtered collection.
type PageInfo struct {
	Page     int
	Pages    int
	PageSize int
	Total    int
}

// Visible returns the filtered records of the current page.
func (p *Panel[T]) Visible() ([]T, PageInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	matched := p.filtered()
	size := p.cfg.PageSize
	pages := (len(matched) + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	page := p.page
	if page > pages {
		page = pages
	}

	lo := (page - 1) * size
	hi := lo + size
	if hi > len(matched) {
		hi = len(matched)
	}
	info := PageInfo{Page: page, Pages: pages, PageSize: size, Total: len(matched)}
	return matched[lo:hi], info
}
