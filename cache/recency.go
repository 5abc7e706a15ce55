package cache

import "container/list"

// recencyIndex tracks access order with a doubly-linked list so eviction can
// find the entry with the oldest lastAccessedAt in O(1). The list is touched
// at exactly the points lastAccessedAt is written (insert, overwrite, hit), so
// list order and timestamp order agree; ties are broken by list position.
type recencyIndex struct {
	order *list.List
	items map[string]*list.Element
}

func newRecencyIndex() *recencyIndex {
	return &recencyIndex{
		order: list.New(),
		items: make(map[string]*list.Element),
	}
}

func (r *recencyIndex) touch(key string) {
	if elem, ok := r.items[key]; ok {
		r.order.MoveToFront(elem)
		return
	}
	r.items[key] = r.order.PushFront(key)
}

// oldest returns the least recently accessed key without removing it.
func (r *recencyIndex) oldest() (string, bool) {
	elem := r.order.Back()
	if elem == nil {
		return "", false
	}
	return elem.Value.(string), true
}

func (r *recencyIndex) remove(key string) {
	if elem, ok := r.items[key]; ok {
		r.order.Remove(elem)
		delete(r.items, key)
	}
}

func (r *recencyIndex) reset() {
	r.order.Init()
	r.items = make(map[string]*list.Element)
}
