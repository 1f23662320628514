package reconcile

import (
	"context"
	"net/url"

	"netbox-sync/core/netbox"
)

// fakeAPI is a scripted NetBox API. Lookups answer from stubbed result sets
// keyed by path and query; creates hand out sequential ids and record every
// call so tests can assert on ordering and payloads.
type fakeAPI struct {
	objects map[string][]netbox.Object
	listErr error

	// failCreate, when set, can veto individual create calls.
	failCreate func(path string, payload any) error

	nextID   int
	lists    []string
	creates  []string
	payloads []any
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		objects: make(map[string][]netbox.Object),
		nextID:  100,
	}
}

func listKey(path string, query url.Values) string {
	return path + "?" + query.Encode()
}

// stub registers the result set for one exact list query.
func (f *fakeAPI) stub(path string, query url.Values, objs ...netbox.Object) {
	f.objects[listKey(path, query)] = objs
}

func (f *fakeAPI) List(_ context.Context, path string, query url.Values) ([]netbox.Object, error) {
	key := listKey(path, query)
	f.lists = append(f.lists, key)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.objects[key], nil
}

func (f *fakeAPI) Create(_ context.Context, path string, payload any) (*netbox.Object, error) {
	if f.failCreate != nil {
		if err := f.failCreate(path, payload); err != nil {
			return nil, err
		}
	}
	f.creates = append(f.creates, path)
	f.payloads = append(f.payloads, payload)
	f.nextID++
	return &netbox.Object{ID: f.nextID}, nil
}

// countLists returns how many list calls hit the given key.
func (f *fakeAPI) countLists(path string, query url.Values) int {
	key := listKey(path, query)
	n := 0
	for _, k := range f.lists {
		if k == key {
			n++
		}
	}
	return n
}
